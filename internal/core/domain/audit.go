package domain

import "time"

// AuditEntry records one mutating action taken through the gateway.
type AuditEntry struct {
	Actor     string    `json:"actor" bson:"actor"`
	Role      string    `json:"role" bson:"role"`
	Action    string    `json:"action" bson:"action"`
	Entity    string    `json:"entity" bson:"entity"`
	EntityID  string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Succeeded bool      `json:"succeeded" bson:"succeeded"`
	Message   string    `json:"message,omitempty" bson:"message,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

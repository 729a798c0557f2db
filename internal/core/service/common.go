package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

// fetchList loads a whole collection. A body of the wrong shape is an error,
// never an empty list.
func fetchList(ctx context.Context, backend ports.Backend, token, collection string, table *mapping.Table) ([]mapping.Record, error) {
	resp, err := backend.Do(ctx, http.MethodGet, collection, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table.Entity, err)
	}
	recs, err := table.ToCanonicalList(resp)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table.Entity, err)
	}
	return recs, nil
}

// single maps a one-record response. Empty bodies are allowed for writes
// (nil record); anything else that is not an object is a shape error.
func single(table *mapping.Table, resp any) (mapping.Record, error) {
	if resp == nil {
		return nil, nil
	}
	rec := table.ToCanonical(resp)
	if rec == nil {
		return nil, fmt.Errorf("%s: %w", table.Entity, domain.ErrUnexpectedShape)
	}
	return rec, nil
}

// authorize fails with ErrForbidden unless actor may perform a.
func authorize(actor domain.Actor, a domain.Action) error {
	if actor.Token == "" {
		return domain.ErrUnauthenticated
	}
	if !actor.Role.Allows(a) {
		return fmt.Errorf("%s: %w", a, domain.ErrForbidden)
	}
	return nil
}

type auditor struct {
	pub ports.AuditPublisher
}

func (a auditor) record(actor domain.Actor, action domain.Action, entity string, id int64, err error) {
	if a.pub == nil {
		return
	}
	entry := domain.AuditEntry{
		Actor:     actor.Username,
		Role:      actor.Role.String(),
		Action:    string(action),
		Entity:    entity,
		Succeeded: err == nil,
		Timestamp: time.Now().UTC(),
	}
	if id != 0 {
		entry.EntityID = strconv.FormatInt(id, 10)
	}
	if err != nil {
		entry.Message = err.Error()
	}
	a.pub.Publish(entry)
}

func recordID(rec mapping.Record) int64 {
	id, _ := rec["id"].(int64)
	return id
}

func boolField(rec mapping.Record, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

func floatField(rec mapping.Record, key string) float64 {
	f, _ := rec[key].(float64)
	return f
}

func refField(rec mapping.Record, key string) int64 {
	id, _ := rec[key].(int64)
	return id
}

func stringField(rec mapping.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

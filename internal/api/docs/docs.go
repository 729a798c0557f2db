// Package docs holds the OpenAPI document served at /swagger. Regenerate
// with: swag init -g internal/api/router.go -o internal/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.Identity"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current identity",
                "parameters": [
                    {"type": "string", "description": "Session ID (or condo_session cookie)", "name": "X-Session-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.Identity"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/nav": {
            "get": {
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Navigation menu",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.menuResponse"}}}
            }
        },
        "/nav/{view}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Evaluate a navigation",
                "parameters": [
                    {"type": "string", "description": "View name (e.g. households, fees, home)", "name": "view", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/access.Decision"}}}
            }
        },
        "/v1/dashboard/summary": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardSummary"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/fees/summary": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Fee collection summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.FeeSummary"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/fees/{id}/status": {
            "patch": {
                "security": [{"SessionAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fees"],
                "summary": "Set fee status",
                "parameters": [
                    {"type": "integer", "description": "Fee ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.feeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/payments/{id}/verify": {
            "patch": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Verify payment",
                "parameters": [
                    {"type": "integer", "description": "Payment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/households/{id}/activate": {
            "put": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["households"],
                "summary": "Activate household",
                "parameters": [
                    {"type": "integer", "description": "Household ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/households/{id}/balance": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["households"],
                "summary": "Household balance",
                "parameters": [
                    {"type": "integer", "description": "Household ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HouseholdBalance"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/audit": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Recent audit entries",
                "parameters": [
                    {"type": "string", "description": "Entity filter (household, fee, ...)", "name": "entity", "in": "query"},
                    {"type": "integer", "description": "Max entries (default 50, max 200)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AuditEntry"}}}
                }
            }
        },
        "/v1/{resource}": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "List a collection",
                "parameters": [
                    {"type": "string", "description": "households | persons | temporary-residence | fees | payments | vehicles | utility-services", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"SessionAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Create a record",
                "parameters": [
                    {"type": "string", "description": "Collection name", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "Replay protection key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Canonical record", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/{resource}/{id}": {
            "get": {
                "security": [{"SessionAuth": []}],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get a record",
                "parameters": [
                    {"type": "string", "description": "Collection name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            },
            "put": {
                "security": [{"SessionAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Update a record",
                "parameters": [
                    {"type": "string", "description": "Collection name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "Canonical record", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            },
            "delete": {
                "security": [{"SessionAuth": []}],
                "tags": ["resources"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "description": "Collection name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handler.feeStatusRequest": {
            "type": "object",
            "required": ["active"],
            "properties": {"active": {"type": "boolean"}}
        },
        "handler.listResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"type": "object"}}, "total": {"type": "integer"}}
        },
        "handler.menuResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "role": {"type": "string"},
                "home": {"type": "string"},
                "views": {"type": "array", "items": {"type": "string"}},
                "actions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "access.Decision": {
            "type": "object",
            "properties": {"outcome": {"type": "string", "enum": ["render", "redirect", "login"]}, "view": {"type": "string"}}
        },
        "ports.Identity": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"},
                "role": {"type": "string"},
                "home": {"type": "string"},
                "capabilities": {"type": "array", "items": {"type": "string"}},
                "actions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "fullName": {"type": "string"}, "role": {"type": "string"}}
        },
        "domain.AuditEntry": {
            "type": "object",
            "properties": {
                "actor": {"type": "string"},
                "role": {"type": "string"},
                "action": {"type": "string"},
                "entity": {"type": "string"},
                "entity_id": {"type": "string"},
                "succeeded": {"type": "boolean"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.FeeSummary": {
            "type": "object",
            "properties": {
                "feeId": {"type": "integer"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "active": {"type": "boolean"},
                "amount": {"type": "string"},
                "expected": {"type": "string"},
                "collected": {"type": "string"},
                "outstanding": {"type": "string"},
                "payments": {"type": "integer"},
                "verified": {"type": "integer"},
                "payingHouseholds": {"type": "integer"},
                "collectionRate": {"type": "string"}
            }
        },
        "domain.HouseholdBalance": {
            "type": "object",
            "properties": {
                "householdId": {"type": "integer"},
                "fees": {"type": "array", "items": {"type": "object"}},
                "totalDue": {"type": "string"},
                "totalPaid": {"type": "string"},
                "outstanding": {"type": "string"},
                "pendingPayments": {"type": "integer"}
            }
        },
        "domain.DashboardSummary": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "households": {"$ref": "#/definitions/domain.HouseholdStats"},
                "fees": {"$ref": "#/definitions/domain.FeeStats"}
            }
        },
        "domain.HouseholdStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "active": {"type": "integer"},
                "persons": {"type": "integer"}
            }
        },
        "domain.FeeStats": {
            "type": "object",
            "properties": {
                "fees": {"type": "integer"},
                "activeFees": {"type": "integer"},
                "mandatoryFees": {"type": "integer"},
                "payments": {"type": "integer"},
                "verifiedPayments": {"type": "integer"},
                "pendingPayments": {"type": "integer"},
                "collected": {"type": "string"},
                "pendingAmount": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionAuth": {
            "type": "apiKey",
            "name": "X-Session-ID",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Condo Admin Gateway API",
	Description:      "Session, access control and record normalization in front of the residential community backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

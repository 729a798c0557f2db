package ports

import (
	"context"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditPublisher hands entries off for asynchronous persistence. Publish
// must not block the request path on storage.
type AuditPublisher interface {
	Publish(entry domain.AuditEntry)
}

// IdempotencyGuard claims a request key once. Claim returns false when the
// key was already claimed within the guard's retention window; Release
// frees a key whose request failed so the client can retry it.
type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// AuditReader lists recent audit entries, newest first. An empty entity
// matches every entity.
type AuditReader interface {
	Recent(ctx context.Context, entity string, limit int) ([]domain.AuditEntry, error)
}

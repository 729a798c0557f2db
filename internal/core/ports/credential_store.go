package ports

import (
	"context"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// CredentialStore persists credentials per session key. Load returns
// domain.ErrNotFound when nothing is stored under key.
type CredentialStore interface {
	Load(ctx context.Context, key string) (*domain.Credential, error)
	Save(ctx context.Context, key string, cred *domain.Credential) error
	Delete(ctx context.Context, key string) error
}

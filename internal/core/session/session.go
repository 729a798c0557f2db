package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

// Session binds one client's credential slot in a CredentialStore. It keeps
// no role state of its own: every query re-reads the store and resolves the
// role again, so a logout or re-login is visible on the next check.
type Session struct {
	store ports.CredentialStore
	key   string
}

// New returns a Session reading and writing credentials under key.
func New(store ports.CredentialStore, key string) *Session {
	return &Session{store: store, key: key}
}

// Key returns the storage key the session is bound to.
func (s *Session) Key() string { return s.key }

// Login stores cred as the active credential, replacing any previous one.
func (s *Session) Login(ctx context.Context, cred domain.Credential) error {
	if cred.Token == "" {
		return fmt.Errorf("login: empty token: %w", domain.ErrInvalidCredentials)
	}
	if err := s.store.Save(ctx, s.key, &cred); err != nil {
		return fmt.Errorf("login: save credential: %w", err)
	}
	return nil
}

// Logout clears the active credential. Logging out twice is not an error.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Credential returns the stored credential or domain.ErrUnauthenticated.
func (s *Session) Credential(ctx context.Context) (*domain.Credential, error) {
	if s == nil || s.store == nil || s.key == "" {
		return nil, domain.ErrUnauthenticated
	}
	cred, err := s.store.Load(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && (cred == nil || cred.Token == "")) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	return cred, nil
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *Session) Token(ctx context.Context) string {
	cred, err := s.Credential(ctx)
	if err != nil {
		return ""
	}
	return cred.Token
}

// Authenticated reports whether a credential is present. Store failures
// count as unauthenticated.
func (s *Session) Authenticated(ctx context.Context) bool {
	_, err := s.Credential(ctx)
	return err == nil
}

// Role resolves the current role, RoleNone on any failure.
func (s *Session) Role(ctx context.Context) domain.Role {
	cred, err := s.Credential(ctx)
	if err != nil {
		return domain.RoleNone
	}
	return ResolveRole(cred)
}

func (s *Session) Can(ctx context.Context, c domain.Capability) bool {
	return s.Role(ctx).Has(c)
}

func (s *Session) Allowed(ctx context.Context, a domain.Action) bool {
	return s.Role(ctx).Allows(a)
}

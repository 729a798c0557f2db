package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/session"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService logs users in against the backend and keeps their credential
// in a CredentialStore keyed by session ID.
type AuthService struct {
	backend ports.Backend
	store   ports.CredentialStore
	log     zerolog.Logger
	newID   func() string
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithSessionIDs replaces the random session ID source. The CLI uses it to
// key credentials by profile name.
func WithSessionIDs(next func() string) AuthOption {
	return func(s *AuthService) { s.newID = next }
}

func NewAuthService(backend ports.Backend, store ports.CredentialStore, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{backend: backend, store: store, log: log, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login always opens a fresh session. A credential stored under
// previousID is revoked once the new one is saved.
func (s *AuthService) Login(ctx context.Context, previousID, username, password string) (*ports.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.backend.Do(ctx, http.MethodPost, pathLogin, "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrForbidden) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	cred, err := credentialFrom(resp)
	if err != nil {
		return nil, err
	}
	if cred.User == nil {
		cred.User = &domain.User{Username: username}
	}

	sessionID := s.newID()
	sess := session.New(s.store, sessionID)
	if err := sess.Login(ctx, *cred); err != nil {
		return nil, err
	}
	if previousID != "" && previousID != sessionID {
		if err := session.New(s.store, previousID).Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("previous session not revoked")
		}
	}

	role := session.ResolveRole(cred)
	s.log.Info().
		Str("username", cred.User.Username).
		Str("role", role.String()).
		Msg("user logged in")

	return identity(sessionID, cred, role), nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return session.New(s.store, sessionID).Logout(ctx)
}

func (s *AuthService) WhoAmI(ctx context.Context, sessionID string) (*ports.Identity, error) {
	cred, err := session.New(s.store, sessionID).Credential(ctx)
	if err != nil {
		return nil, err
	}
	return identity(sessionID, cred, session.ResolveRole(cred)), nil
}

func identity(sessionID string, cred *domain.Credential, role domain.Role) *ports.Identity {
	return &ports.Identity{
		SessionID:    sessionID,
		User:         cred.User,
		Role:         role,
		Home:         access.HomeFor(role),
		Capabilities: role.Capabilities(),
		Actions:      role.AllowedActions(),
	}
}

// credentialFrom accepts the login answers the backend has used over time:
// a bare token string, {token, user}, or a flat {token|accessToken, id,
// username, role} object.
func credentialFrom(resp any) (*domain.Credential, error) {
	switch v := resp.(type) {
	case string:
		tok := strings.TrimSpace(v)
		if tok == "" {
			return nil, fmt.Errorf("login response: %w", domain.ErrUnexpectedShape)
		}
		return &domain.Credential{Token: tok}, nil
	case map[string]any:
		tok := firstString(v, "token", "accessToken", "jwt")
		if tok == "" {
			return nil, fmt.Errorf("login response without token: %w", domain.ErrUnexpectedShape)
		}
		cred := &domain.Credential{Token: tok}
		if u, ok := v["user"].(map[string]any); ok {
			cred.User = userFrom(u)
		} else if _, ok := v["username"]; ok {
			cred.User = userFrom(v)
		}
		return cred, nil
	default:
		return nil, fmt.Errorf("login response: %w", domain.ErrUnexpectedShape)
	}
}

func userFrom(m map[string]any) *domain.User {
	u := &domain.User{
		Username: firstString(m, "username", "tenDangNhap"),
		FullName: firstString(m, "fullName", "hoTen"),
		RawRole:  firstString(m, "role", "vaiTro"),
	}
	switch id := m["id"].(type) {
	case int64:
		u.ID = id
	case float64:
		u.ID = int64(id)
	}
	if u.RawRole == "" {
		// Spring-style authorities list, highest precedence wins.
		if roles, ok := m["roles"].([]any); ok {
			names := make([]string, 0, len(roles))
			for _, r := range roles {
				if s, ok := r.(string); ok {
					names = append(names, s)
				}
			}
			if r := domain.HighestRole(names); r != domain.RoleNone {
				u.RawRole = r.String()
			}
		}
	}
	return u
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.CredentialStore = (*CredentialStore)(nil)

const defaultSessionTTL = 8 * time.Hour

// CredentialStore keeps gateway sessions in Redis. Session IDs are hashed
// before use as keys so a keyspace dump does not leak live session IDs.
// Key format: session:<blake2b-256(session id)>
type CredentialStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCredentialStore wraps client. A zero ttl uses defaultSessionTTL.
func NewCredentialStore(client *redis.Client, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CredentialStore{client: client, ttl: ttl}
}

func (s *CredentialStore) Load(ctx context.Context, key string) (*domain.Credential, error) {
	raw, err := s.client.Get(ctx, sessionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var cred domain.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &cred, nil
}

// Save stores cred and restarts the session's expiry.
func (s *CredentialStore) Save(ctx context.Context, key string, cred *domain.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return "session:" + hex.EncodeToString(sum[:])
}

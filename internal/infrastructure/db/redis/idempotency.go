package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.IdempotencyGuard = (*IdempotencyGuard)(nil)

const idempotencyTTL = 24 * time.Hour

// IdempotencyGuard remembers Idempotency-Key values of create requests.
// Key format: idem:<scope>:<key>
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyGuard wraps client. A zero ttl uses idempotencyTTL.
func NewIdempotencyGuard(client *redis.Client, ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = idempotencyTTL
	}
	return &IdempotencyGuard{client: client, ttl: ttl}
}

// Claim atomically records key. It reports false when key was already seen.
func (g *IdempotencyGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, idempotencyKey(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim: %w", err)
	}
	return ok, nil
}

// Release forgets key.
func (g *IdempotencyGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, idempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(key string) string {
	return "idem:" + key
}

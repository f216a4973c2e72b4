package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceCache implements ports.NonceCache: a bounded fast-path replay
// filter in front of the durable nonce uniqueness constraint. Entries
// expire; a miss here proves nothing and a hit saves a database lookup.
type NonceCache struct {
	client *goredis.Client
	prefix string
}

// NewNonceCache creates a new Redis-backed nonce cache.
func NewNonceCache(client *goredis.Client) *NonceCache {
	return &NonceCache{
		client: client,
		prefix: "nonce:",
	}
}

// Seen reports whether the nonce is present in the cache.
func (c *NonceCache) Seen(ctx context.Context, nonce string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+nonce).Result()
	if err != nil {
		return false, fmt.Errorf("redis nonce lookup: %w", err)
	}
	return n > 0, nil
}

// MarkSeen records a durably committed nonce with the given TTL.
func (c *NonceCache) MarkSeen(ctx context.Context, nonce string, ttl time.Duration) error {
	_, err := c.client.SetArgs(ctx, c.prefix+nonce, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("redis nonce set: %w", err)
	}
	return nil
}

// Package cache records the checksum of finished generation runs keyed by
// a hash of their parameters. Only the checksum is stored, not the
// metadata record.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"worldgen-engine/internal/worldgen/params"
)

// Cache wraps a Redis client with the params-hash -> checksum mapping. The
// generation API logs a cache hit but still runs the full pipeline.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a Cache bound to addr. The connection is lazy; callers should
// call Ping to verify connectivity before relying on it.
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies the Redis connection is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Key derives a stable cache key from a parameter set.
func Key(p params.GenerationParams) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return "worldgen:params:" + hex.EncodeToString(sum[:]), nil
}

// GetChecksum returns the cached checksum for a params key, if present.
func (c *Cache) GetChecksum(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// PutChecksum stores a params key -> checksum mapping with the cache's
// configured TTL.
func (c *Cache) PutChecksum(ctx context.Context, key, checksum string) error {
	return c.client.Set(ctx, key, checksum, c.ttl).Err()
}

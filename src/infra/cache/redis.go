// Package cache provides the Redis-backed capacity snapshot cache.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tradefair/src/core/ports"
	"tradefair/src/infra/config"
)

const snapshotKey = "tradefair:capacity_snapshot"

// SnapshotCache stores the serialized capacity snapshot under a single
// key with a short TTL. Writes after an allocation or release go through
// Invalidate so readers never see a stale snapshot for longer than the TTL.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Info("redis connection established", "addr", cfg.Addr)
	return &SnapshotCache{
		client: client,
		ttl:    cfg.SnapshotTTL,
		log:    log,
	}, nil
}

var _ ports.SnapshotCache = (*SnapshotCache)(nil)

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *SnapshotCache) Get(ctx context.Context) ([]byte, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores the snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, snapshotKey, payload, c.ttl).Err()
}

// Invalidate drops the cached snapshot.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey).Err()
}

// Close releases the underlying connection.
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}

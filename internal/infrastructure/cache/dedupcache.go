// Package cache holds the redis-backed send-dedup store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dedupKeyPrefix namespaces the dedup keys in the shared redis instance.
const dedupKeyPrefix = "deskflow:msg_dedup:"

// DedupCache suppresses repeated ticket-transition messages within a TTL.
// The TTL bounds memory: entries expire on their own, there is no cleanup
// job and no unbounded growth.
type DedupCache struct {
	client *redis.Client
}

func NewDedupCache(client *redis.Client) *DedupCache {
	return &DedupCache{client: client}
}

// MarkSent records a send atomically and reports whether the key was
// already marked within the TTL. SETNX makes the check-and-set race-free
// across processes.
func (c *DedupCache) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	set, err := c.client.SetNX(ctx, dedupKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message sent: %w", err)
	}

	// set == false means the key already existed: suppress.
	return !set, nil
}

// Clear removes a key, re-arming the next send.
func (c *DedupCache) Clear(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, dedupKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to clear dedup key: %w", err)
	}
	return nil
}

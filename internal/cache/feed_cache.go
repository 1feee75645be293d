// Package cache holds the read-through cache in front of the feed query.
package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// feedKey is the single logical key for the whole feed. The cache is binary
// hit-or-miss: no per-post or per-page partitioning.
const feedKey = "post:all"

// FeedCache stores one serialized feed snapshot with no expiry. An entry
// lives until a feed-visible mutation invalidates it.
type FeedCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// RedisFeedCache implements FeedCache on Redis. A nil client degrades to a
// cache-less mode: every Get misses, Set and Invalidate are no-ops.
type RedisFeedCache struct {
	client *redis.Client
}

// NewRedisFeedCache creates a new RedisFeedCache
func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{client: client}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *RedisFeedCache) Get(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, feedKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Set stores the snapshot under the feed key with no TTL. Concurrent fills
// are last-writer-wins; both writers computed from the same store state.
func (c *RedisFeedCache) Set(ctx context.Context, payload []byte) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, feedKey, payload, 0).Err()
}

// Invalidate unconditionally removes the cached entry. It must run inside
// every mutation that changes feed-visible content, before that mutation's
// result is returned to the caller.
func (c *RedisFeedCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, feedKey).Err()
}

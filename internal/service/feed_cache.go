package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/dto"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"github.com/wallfeed/wallfeed/pkg/redis"
)

// FeedCache keeps serialized feed pages in Redis for a short TTL and is
// flushed whole on any post write. Cache failures only cost the cache:
// reads fall through to the store, writes proceed.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

func feedCacheKey(params constants.FeedParams) string {
	return fmt.Sprintf("%s%d:%d:%s:%d",
		constants.CacheKeyFeed, params.Limit, params.Offset, params.Sort, params.UserID)
}

// Get returns the cached page for the given feed parameters, or nil on
// a miss.
func (c *FeedCache) Get(ctx context.Context, params constants.FeedParams) []dto.PostResponse {
	if c == nil || !c.client.IsEnabled() {
		return nil
	}

	key := feedCacheKey(params)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		logger.WarnWithContext(ctx, "Feed cache read failed").
			String("cache_key", key).
			Err(err).
			Log()
		return nil
	}
	if data == nil {
		return nil
	}

	var posts []dto.PostResponse
	if err := json.Unmarshal(data, &posts); err != nil {
		logger.WarnWithContext(ctx, "Feed cache entry corrupt, dropping").
			String("cache_key", key).
			Err(err).
			Log()
		return nil
	}

	logger.DebugWithContext(ctx, "Feed cache hit").
		String("cache_key", key).
		Int("post_count", len(posts)).
		Log()

	return posts
}

// Put stores a feed page under the parameter key
func (c *FeedCache) Put(ctx context.Context, params constants.FeedParams, posts []dto.PostResponse) {
	if c == nil || !c.client.IsEnabled() {
		return
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return
	}

	key := feedCacheKey(params)
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		logger.WarnWithContext(ctx, "Feed cache write failed").
			String("cache_key", key).
			Err(err).
			Log()
	}
}

// Invalidate flushes every cached feed page. Called on post create,
// update and delete.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if c == nil || !c.client.IsEnabled() {
		return
	}

	if err := c.client.DeleteByPrefix(ctx, constants.CacheKeyFeed); err != nil {
		logger.WarnWithContext(ctx, "Feed cache invalidation failed").
			Err(err).
			Log()
	}
}

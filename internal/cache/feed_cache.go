package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"twitterclone/internal/repository"
)

// FeedCache keeps rendered home feeds in redis for a short TTL. Entries
// are dropped by the feed-invalidation worker when a followed user posts.
type FeedCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewFeedCache(client *redisv9.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &FeedCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *FeedCache) GetFeed(ctx context.Context, userID uint) ([]repository.FeedEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.feedKey(userID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get feed failed: %w", err)
	}

	var entries []repository.FeedEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached feed failed: %w", err)
	}
	return entries, true, nil
}

func (c *FeedCache) SetFeed(ctx context.Context, userID uint, entries []repository.FeedEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal feed cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.feedKey(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set feed failed: %w", err)
	}
	return nil
}

func (c *FeedCache) DeleteFeed(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.feedKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete feed failed: %w", err)
	}
	return nil
}

func (c *FeedCache) feedKey(userID uint) string {
	return fmt.Sprintf("tweet:feed:%d", userID)
}

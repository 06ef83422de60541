package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/algo-tracker/internal/domain"
)

const (
	problemsKeyPrefix = "problems:"
	tagsKeyPrefix     = "problem_tags:"
)

// ProblemCache keeps per-user problem lists and tag aggregations in Redis.
// Cache failures degrade to misses; the database stays authoritative.
type ProblemCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProblemCache builds a cache over the given client. A nil client yields a
// cache that always misses.
func NewProblemCache(client *redis.Client, ttlSeconds int, logger *zap.Logger) *ProblemCache {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &ProblemCache{client: client, ttl: time.Duration(ttlSeconds) * time.Second, logger: logger}
}

// GetProblems returns the cached list for the user, if present.
func (c *ProblemCache) GetProblems(ctx context.Context, userID string) ([]domain.ProblemEntry, bool) {
	var entries []domain.ProblemEntry
	if !c.get(ctx, problemsKeyPrefix+userID, &entries) {
		return nil, false
	}
	return entries, true
}

// SetProblems stores the user's problem list.
func (c *ProblemCache) SetProblems(ctx context.Context, userID string, entries []domain.ProblemEntry) {
	c.set(ctx, problemsKeyPrefix+userID, entries)
}

// GetTags returns the cached tag aggregation for the user, if present.
func (c *ProblemCache) GetTags(ctx context.Context, userID string) ([]string, bool) {
	var tags []string
	if !c.get(ctx, tagsKeyPrefix+userID, &tags) {
		return nil, false
	}
	return tags, true
}

// SetTags stores the user's tag aggregation.
func (c *ProblemCache) SetTags(ctx context.Context, userID string, tags []string) {
	c.set(ctx, tagsKeyPrefix+userID, tags)
}

// Invalidate drops all cached data for the user. Called on every write to the
// problem collection.
func (c *ProblemCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, problemsKeyPrefix+userID, tagsKeyPrefix+userID).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (c *ProblemCache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *ProblemCache) set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

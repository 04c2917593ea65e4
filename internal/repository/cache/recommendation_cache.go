// Package cache stores per-candidate recommendation lists in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	redispkg "go-jobboard-backend/pkg/redis"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recommendations:candidate:"

type recommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache returns a Redis-backed cache, or a no-op cache when client is nil
func NewRecommendationCache(client *redis.Client, ttl time.Duration) domain.RecommendationCache {
	if client == nil {
		return noopCache{}
	}
	return &recommendationCache{client: client, ttl: ttl}
}

func key(candidateID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, candidateID)
}

func (c *recommendationCache) Get(ctx context.Context, candidateID int64) ([]domain.JobMatchResult, bool, error) {
	var results []domain.JobMatchResult
	err := redispkg.GetJSON(ctx, c.client, key(candidateID), &results)
	if errors.Is(err, redispkg.ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (c *recommendationCache) Set(ctx context.Context, candidateID int64, results []domain.JobMatchResult) error {
	return redispkg.SetJSON(ctx, c.client, key(candidateID), results, c.ttl)
}

func (c *recommendationCache) Invalidate(ctx context.Context, candidateID int64) error {
	return c.client.Del(ctx, key(candidateID)).Err()
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) ([]domain.JobMatchResult, bool, error) {
	return nil, false, nil
}
func (noopCache) Set(context.Context, int64, []domain.JobMatchResult) error { return nil }
func (noopCache) Invalidate(context.Context, int64) error                   { return nil }

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCacheWhenRedisMissing(t *testing.T) {
	c := NewRecommendationCache(nil, time.Minute)
	_, ok := c.(noopCache)
	require.True(t, ok)

	results, hit, err := c.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, results)
	assert.NoError(t, c.Set(context.Background(), 1, nil))
	assert.NoError(t, c.Invalidate(context.Background(), 1))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "recommendations:candidate:42", key(42))
}

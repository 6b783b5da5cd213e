package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

func TestResortCache_SetGetInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := NewResortCache(rdb, time.Minute)
	ctx := context.Background()

	_, ok := c.GetAll(ctx)
	assert.False(t, ok)

	c.SetAll(ctx, []domain.Resort{{ID: 1, ResortName: "Lagoon"}})
	assert.Equal(t, time.Minute, mr.TTL(resortsKey))

	resorts, ok := c.GetAll(ctx)
	require.True(t, ok)
	require.Len(t, resorts, 1)
	assert.Equal(t, "Lagoon", resorts[0].ResortName)

	c.Invalidate(ctx)
	_, ok = c.GetAll(ctx)
	assert.False(t, ok)

	c.SetAll(ctx, []domain.Resort{})
	mr.FastForward(2 * time.Minute)
	_, ok = c.GetAll(ctx)
	assert.False(t, ok)
}

func TestResortCache_UnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewResortCache(rdb, time.Minute)
	ctx := context.Background()

	c.SetAll(ctx, []domain.Resort{{ID: 1, ResortName: "Lagoon"}})
	c.Invalidate(ctx)

	resorts, ok := c.GetAll(ctx)
	assert.False(t, ok)
	assert.Nil(t, resorts)
}

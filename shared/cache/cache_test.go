package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsMocks "hotelbook/infras/metrics/mocks"
	otelMocks "hotelbook/infras/otel/mocks"
	"hotelbook/shared/cache"
)

type roomView struct {
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, otelMocks.NewOtel(), metricsMocks.NewMetrics()), mr
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:1", roomView{Number: "101", Floor: 1}, 60))

	var got roomView
	require.NoError(t, c.Get(ctx, "room:1", &got))
	assert.Equal(t, roomView{Number: "101", Floor: 1}, got)
	assert.Equal(t, 60*time.Second, mr.TTL("room:1"))

	require.NoError(t, c.Save(ctx, "hotel:name", "Demo Hotel", 60))

	var name string
	require.NoError(t, c.Get(ctx, "hotel:name", &name))
	assert.Equal(t, "Demo Hotel", name)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newCache(t)

	var got roomView
	err := c.Get(context.Background(), "room:404", &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"room:available:1:a", "room:available:1:b", "room:2"} {
		require.NoError(t, c.Save(ctx, key, "x", 60))
	}

	require.NoError(t, c.Clear(ctx, "room:available:*"))
	assert.False(t, mr.Exists("room:available:1:a"))
	assert.False(t, mr.Exists("room:available:1:b"))
	assert.True(t, mr.Exists("room:2"))

	require.NoError(t, c.Clear(ctx, "nothing:*"))

	require.NoError(t, c.Delete(ctx, "room:2"))
	assert.False(t, mr.Exists("room:2"))
}

func TestRedisCache_Incr(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := c.Incr(ctx, "ratelimit:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1"))

	mr.FastForward(time.Minute)

	count, err := c.Incr(ctx, "ratelimit:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	_, err := c.Incr(context.Background(), "ratelimit:x", time.Minute)
	assert.Error(t, err)
}

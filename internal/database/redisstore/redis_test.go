package redisstore

import (
	"context"
	"os"
	"testing"

	databaseerrors "rocketcart/internal/database"
	"rocketcart/pkg/lib/logger/slogdiscard"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "@RocketShoes:cart:test"

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestGet_NotFound(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, testKey)

	storage := New(slogdiscard.NewDiscardLogger(), client)

	_, err := storage.Get(ctx, testKey)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
}

func TestSetThenGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, testKey)
	defer client.Del(ctx, testKey)

	storage := New(slogdiscard.NewDiscardLogger(), client)

	require.NoError(t, storage.Set(ctx, testKey, `[{"id":1,"amount":1}]`))
	require.NoError(t, storage.Set(ctx, testKey, `[{"id":1,"amount":3}]`))

	value, err := storage.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"amount":3}]`, value)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, slogdiscard.NewDiscardLogger(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

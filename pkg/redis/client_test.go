package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := client
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = client.Close()
		client = prev
	})
	return mr
}

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestInitWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	prev := client
	t.Cleanup(func() { client = prev })

	require.NoError(t, Init("redis://"+mr.Addr(), ""))
	assert.NotNil(t, GetClient())
	assert.NoError(t, Close())
	assert.Nil(t, GetClient())
}

func TestHelpersBeforeInit(t *testing.T) {
	prev := client
	client = nil
	t.Cleanup(func() { client = prev })

	ctx := context.Background()
	assert.ErrorIs(t, Set(ctx, "k", "v", time.Second), ErrNotInitialized)
	_, err := Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, Del(ctx, "k"), ErrNotInitialized)
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, Close())
}

func TestBasicOps(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "ride:1", "v", time.Minute))
	got, err := Get(ctx, "ride:1")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	ok, err := SetNX(ctx, "ride:1", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "ride:1"))
	assert.False(t, mr.Exists("ride:1"))

	_, err = Get(ctx, "ride:1")
	assert.True(t, IsNil(err))
}

func TestBasicOpsWithUnreachableRedis(t *testing.T) {
	prev := client
	t.Cleanup(func() { client = prev })
	SetClient(goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, IsNil(err))
}

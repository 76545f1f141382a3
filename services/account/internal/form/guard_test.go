package form

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGuard_StaleTokenDoesNotRelease(t *testing.T) {
	ctx := context.Background()
	guard := NewLocalGuard()

	first, ok, err := guard.Acquire(ctx, "sign-up:ann@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	guard.Release(ctx, "sign-up:ann@example.com", first)
	second, ok, err := guard.Acquire(ctx, "sign-up:ann@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	// a late release from the first holder leaves the second in place
	guard.Release(ctx, "sign-up:ann@example.com", first)
	_, ok, err = guard.Acquire(ctx, "sign-up:ann@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	guard.Release(ctx, "sign-up:ann@example.com", second)
	_, ok, err = guard.Acquire(ctx, "sign-up:ann@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalGuard_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	guard := NewLocalGuard()

	_, ok, _ := guard.Acquire(ctx, "sign-in:a@example.com")
	assert.True(t, ok)
	_, ok, _ = guard.Acquire(ctx, "sign-in:b@example.com")
	assert.True(t, ok)
}

func TestRedisGuard_StoreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	guard := NewRedisGuard(client, time.Second)

	token, ok, err := guard.Acquire(context.Background(), "sign-in:ann@example.com")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)

	assert.NotPanics(t, func() {
		guard.Release(context.Background(), "sign-in:ann@example.com", "token")
	})
}

package locker

import (
	"context"
	"medibook-service/internal/app/services/core/fakes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService_TryLockAndUnlock(t *testing.T) {
	ctx := context.Background()
	svc := NewLockService(fakes.NewRedisRepository(), zap.NewNop())

	acquired, value, err := svc.TryLock(ctx, "booking:doctor:1", time.Second)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, value)

	t.Run("second caller is refused while held", func(t *testing.T) {
		again, _, err := svc.TryLock(ctx, "booking:doctor:1", time.Second)
		require.NoError(t, err)
		assert.False(t, again)
	})

	t.Run("foreign value cannot unlock", func(t *testing.T) {
		err := svc.Unlock(ctx, "booking:doctor:1", "someone-else")
		assert.Error(t, err)
	})

	t.Run("refresh by owner succeeds", func(t *testing.T) {
		assert.NoError(t, svc.Refresh(ctx, "booking:doctor:1", value, time.Second))
		assert.Error(t, svc.Refresh(ctx, "booking:doctor:1", "someone-else", time.Second))
	})

	t.Run("owner unlocks and lock becomes available", func(t *testing.T) {
		require.NoError(t, svc.Unlock(ctx, "booking:doctor:1", value))
		again, _, err := svc.TryLock(ctx, "booking:doctor:1", time.Second)
		require.NoError(t, err)
		assert.True(t, again)
	})
}

func TestLockService_LockWithRetry(t *testing.T) {
	ctx := context.Background()
	svc := NewLockService(fakes.NewRedisRepository(), zap.NewNop())

	_, holder, err := svc.TryLock(ctx, "k", time.Second)
	require.NoError(t, err)

	t.Run("gives up after wait elapses", func(t *testing.T) {
		start := time.Now()
		acquired, _, err := svc.LockWithRetry(ctx, "k", time.Second, 40*time.Millisecond, 5*time.Millisecond)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("acquires once the holder releases", func(t *testing.T) {
		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = svc.Unlock(ctx, "k", holder)
		}()
		acquired, value, err := svc.LockWithRetry(ctx, "k", time.Second, time.Second, 5*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEqual(t, holder, value)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		acquired, _, err := svc.LockWithRetry(cancelled, "k", time.Second, time.Second, 5*time.Millisecond)
		assert.False(t, acquired)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

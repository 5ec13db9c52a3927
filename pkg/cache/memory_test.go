package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/cache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stored value and overwrite", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[[]string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "zones", []string{"UTC"}, time.Minute))
		require.NoError(t, c.Set(ctx, "zones", []string{"UTC", "Europe/Paris"}, time.Minute))
		v, err := c.Get(ctx, "zones")
		require.NoError(t, err)
		assert.Equal(t, []string{"UTC", "Europe/Paris"}, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "forever", 1, -1))
		require.NoError(t, c.Set(ctx, "default", 2, 0))
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "forever")
		require.NoError(t, err)
		_, err = c.Get(ctx, "default")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithMaxEntries(2))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	_, err = c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound, "least recently used entry is evicted")
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestMemory_DeleteClearClose(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int]()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Len())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Set(ctx, "a", 1, 0), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
}

func TestMemory_Sweep(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithCleanupInterval(5 * time.Millisecond))
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", 1, time.Millisecond))
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemory_GetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("loads once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		load := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "value", time.Minute, nil
		}
		for range 3 {
			v, err := c.GetOrSet(context.Background(), "k", load)
			require.NoError(t, err)
			assert.Equal(t, "value", v)
		}
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (int, time.Duration, error) {
			calls.Add(1)
			<-release
			return 7, 0, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				v, err := c.GetOrSet(context.Background(), "shared", load)
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.LessOrEqual(t, calls.Load(), int32(8))
		assert.GreaterOrEqual(t, calls.Load(), int32(1))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := c.GetOrSet(context.Background(), "k", func(context.Context) (int, time.Duration, error) {
			return 0, 0, boom
		})
		require.ErrorIs(t, err, boom)
		_, err = c.Get(context.Background(), "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

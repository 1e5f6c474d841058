package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoizesSuccessfulLoads(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(func(_ context.Context, name string) (string, error) {
		calls.Add(1)
		return "value of " + name, nil
	})

	for range 3 {
		got, err := cache.Get(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "value of a", got)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	fail := true
	calls := 0
	cache := NewCache(func(_ context.Context, _ string) (int, error) {
		calls++
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	})

	_, err := cache.Get(context.Background(), "a")
	require.Error(t, err)

	fail = false
	got, err := cache.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)
}

func TestCacheInvalidateAndReset(t *testing.T) {
	calls := map[string]int{}
	cache := NewCache(func(_ context.Context, name string) (int, error) {
		calls[name]++
		return calls[name], nil
	})
	ctx := context.Background()

	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "b")

	cache.Invalidate("a")
	a, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, a)

	b, err := cache.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, b, "invalidating a must not touch b")

	cache.Reset()
	a, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, a)
	b, err = cache.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, b)
}

func TestCacheConcurrentGetsLoadOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := NewCache(func(_ context.Context, _ string) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.Get(context.Background(), "shared")
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestCacheDropsLoadInvalidatedInFlight(t *testing.T) {
	for _, tc := range []struct {
		name       string
		invalidate func(c *Cache[int32])
	}{
		{"invalidate", func(c *Cache[int32]) { c.Invalidate("src") }},
		{"reset", func(c *Cache[int32]) { c.Reset() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var version atomic.Int32
			version.Store(1)
			started := make(chan struct{}, 1)
			release := make(chan struct{})
			var blocked atomic.Bool
			blocked.Store(true)

			cache := NewCache(func(_ context.Context, _ string) (int32, error) {
				v := version.Load()
				if blocked.CompareAndSwap(true, false) {
					started <- struct{}{}
					<-release
				}
				return v, nil
			})

			done := make(chan int32)
			go func() {
				v, err := cache.Get(context.Background(), "src")
				assert.NoError(t, err)
				done <- v
			}()

			<-started
			version.Store(2)
			tc.invalidate(cache)
			close(release)
			assert.Equal(t, int32(1), <-done, "callers of the stale load still get its value")

			v, err := cache.Get(context.Background(), "src")
			require.NoError(t, err)
			assert.Equal(t, int32(2), v)
		})
	}
}

/* cache_test.go
 * Contains test cases for the pool snapshot cache
 * Authors: Zachary Bower
 */

package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedHonoursMaxAge(t *testing.T) {
	c := NewPoolCache(3*time.Minute, time.Second)
	now := time.Date(2025, time.September, 17, 12, 0, 0, 0, time.UTC)

	_, ok := c.Cached(now)
	assert.False(t, ok, "empty cache should miss")

	c.Put(&PoolSnapshot{GeneratedAt: now})

	hit, ok := c.Cached(now.Add(time.Minute))
	require.True(t, ok)
	assert.Equal(t, now, hit.GeneratedAt)

	_, ok = c.Cached(now.Add(3 * time.Minute))
	assert.False(t, ok, "entry at max age should miss")
}

func TestInvalidateDropsEntry(t *testing.T) {
	c := NewPoolCache(3*time.Minute, time.Second)
	now := time.Now()
	c.Put(&PoolSnapshot{GeneratedAt: now})

	c.Invalidate()
	_, ok := c.Cached(now)
	assert.False(t, ok)
	assert.Nil(t, c.Stale())
}

func TestRefreshStoresFreshSnapshot(t *testing.T) {
	c := NewPoolCache(3*time.Minute, time.Second)
	want := &PoolSnapshot{Pool: "test_pool_2025", GeneratedAt: time.Now()}

	got, err := c.Refresh(func() (*PoolSnapshot, error) { return want, nil })
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, c.Stale())
}

func TestRefreshPropagatesComputeError(t *testing.T) {
	c := NewPoolCache(3*time.Minute, time.Second)

	_, err := c.Refresh(func() (*PoolSnapshot, error) {
		return nil, fmt.Errorf("roster stage failed")
	})
	require.Error(t, err)
	assert.Nil(t, c.Stale())
}

func TestRefreshFallsBackToStaleSnapshot(t *testing.T) {
	c := NewPoolCache(3*time.Minute, 20*time.Millisecond)
	old := &PoolSnapshot{Pool: "test_pool_2025", GeneratedAt: time.Now().Add(-10 * time.Minute)}
	c.Put(old)

	fresh := &PoolSnapshot{Pool: "test_pool_2025", GeneratedAt: time.Now()}
	got, err := c.Refresh(func() (*PoolSnapshot, error) {
		time.Sleep(200 * time.Millisecond)
		return fresh, nil
	})
	require.NoError(t, err)
	assert.Equal(t, old.GeneratedAt, got.GeneratedAt, "overrun should serve the previous snapshot")

	// The overrunning recompute still lands in the cache for later reads
	assert.Eventually(t, func() bool {
		return c.Stale() != nil && c.Stale().GeneratedAt.Equal(fresh.GeneratedAt)
	}, time.Second, 10*time.Millisecond)
}

func TestRefreshOverrunWithEmptyCacheErrors(t *testing.T) {
	c := NewPoolCache(3*time.Minute, 20*time.Millisecond)

	_, err := c.Refresh(func() (*PoolSnapshot, error) {
		time.Sleep(200 * time.Millisecond)
		return &PoolSnapshot{}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no previous snapshot exists")
}

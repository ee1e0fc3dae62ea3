package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	hub := "h1"
	start := int64(42)

	assert.Equal(t, "hubs", Key(Hubs))
	assert.Equal(t, "inventoryByHub:h1", Key(InventoryByHub, "h1"))
	assert.Equal(t, "filteredArtistOrders:a1:-:42:h1", Key(FilteredArtistOrders, "a1", nil, &start, &hub))
	assert.Equal(t, "x:{a=1,b=2}", Key("x", map[string]string{"b": "2", "a": "1"}))

	type status string
	shipped := status("shipped")
	var none *status
	assert.Equal(t, "x:shipped:-", Key("x", &shipped, none))
}

func TestFetchCachesResult(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	calls := 0

	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	v, err := Fetch(ctx, c, Key(Hubs), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	_, err = Fetch(ctx, c, Key(Hubs), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	calls := 0

	fetch := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("boom")
		}
		return 7, nil
	}

	_, err := Fetch(ctx, c, "n", fetch)
	assert.Error(t, err)

	v, err := Fetch(ctx, c, "n", fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestFetchExpires(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	calls := 0

	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = Fetch(context.Background(), c, "n", fetch)
	now = now.Add(2 * time.Minute)
	v, err := Fetch(context.Background(), c, "n", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestFetchCoalescesConcurrentCallers(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	release := make(chan struct{})

	fetch := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "shared", fetch)
			assert.NoError(t, err)
			assert.Equal(t, 1, v)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInvalidateByName(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	one := func(context.Context) (int, error) { return 1, nil }

	_, _ = Fetch(ctx, c, Key(InventoryByHub, "h1"), one)
	_, _ = Fetch(ctx, c, Key(InventoryByHub, "h2"), one)
	_, _ = Fetch(ctx, c, Key(LowStockAlerts), one)
	_, _ = Fetch(ctx, c, Key(Hubs), one)
	require.Equal(t, 4, c.Len())

	c.Invalidate(InventoryMutation...)
	assert.Equal(t, 1, c.Len())

	_, ok := c.get(Key(Hubs))
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestSetDropsExpiredEntries(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	one := func(context.Context) (int, error) { return 1, nil }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = Fetch(ctx, c, Key(FilteredArtistOrders, "a1", int64(i)), one)
	}
	require.Equal(t, 5, c.Len())

	now = now.Add(2 * time.Minute)
	_, _ = Fetch(ctx, c, Key(Hubs), one)
	assert.Equal(t, 1, c.Len())
}

func TestFetchSurvivesFirstCallerCancel(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 7, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := Fetch(ctx, c, "shared", fetch)
		errc <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(release)
	v, err := Fetch(context.Background(), c, "shared", fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

package admission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	utc := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-03-14", DayKey(utc))

	// A local time late in the evening can belong to the next UTC day.
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2025, 3, 14, 20, 0, 0, 0, loc)
	assert.Equal(t, "2025-03-15", DayKey(local))
}

func TestTryIncrementSequential(t *testing.T) {
	ctx := context.Background()
	q := NewQuotaCounter(nil)

	for i := 0; i < 3; i++ {
		prior, ok, err := q.TryIncrement(ctx, "2025-01-01", 3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, i, prior)
	}

	prior, ok, err := q.TryIncrement(ctx, "2025-01-01", 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, prior)
}

func TestTryIncrementExactUnderConcurrency(t *testing.T) {
	const limit = 10
	const attempts = 100

	ctx := context.Background()
	q := NewQuotaCounter(nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, rejected := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := q.TryIncrement(ctx, "2025-01-01", limit)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if ok {
				admitted++
			} else {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, admitted, "cap must be enforced exactly, never exceeded or under-utilized")
	assert.Equal(t, attempts-limit, rejected)
	assert.Equal(t, limit, q.Count("2025-01-01"))
}

func TestDayRolloverStartsFresh(t *testing.T) {
	ctx := context.Background()
	q := NewQuotaCounter(nil)

	_, ok, err := q.TryIncrement(ctx, "2025-01-01", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, _ = q.TryIncrement(ctx, "2025-01-01", 1)
	assert.False(t, ok)

	// A new day key starts at zero without any explicit reset.
	_, ok, err = q.TryIncrement(ctx, "2025-01-02", 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	q := NewQuotaCounter(nil)

	_, ok, _ := q.TryIncrement(ctx, "2025-01-01", 1)
	require.True(t, ok)
	_, ok, _ = q.TryIncrement(ctx, "2025-01-01", 1)
	require.False(t, ok)

	q.Release("2025-01-01")

	_, ok, _ = q.TryIncrement(ctx, "2025-01-01", 1)
	assert.True(t, ok, "released quota must be usable again")

	// Release on an empty day is a no-op.
	q.Release("2099-01-01")
	assert.Equal(t, 0, q.Count("2099-01-01"))
}

func TestBaselinePrimesOncePerDay(t *testing.T) {
	ctx := context.Background()
	calls := 0
	q := NewQuotaCounter(func(ctx context.Context, dayStart time.Time) (int, error) {
		calls++
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), dayStart)
		return 4, nil
	})

	prior, ok, err := q.TryIncrement(ctx, "2025-01-01", 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, prior, "baseline must seed the pre-increment count")

	_, ok, err = q.TryIncrement(ctx, "2025-01-01", 5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls, "baseline loads once per day key")
}

func TestBaselineErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	q := NewQuotaCounter(func(ctx context.Context, dayStart time.Time) (int, error) {
		return 0, boom
	})

	_, _, err := q.TryIncrement(ctx, "2025-01-01", 5)
	assert.ErrorIs(t, err, boom)
}

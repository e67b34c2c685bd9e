package admission

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey returns the UTC calendar-day key for t. The daily cap is scoped to
// UTC calendar days, not a rolling 24h window.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// BaselineFunc reports how many records were already admitted on the day
// starting at dayStart (UTC midnight). It primes the counter after a restart
// so the cap reflects durably admitted records, not process lifetime.
type BaselineFunc func(ctx context.Context, dayStart time.Time) (int, error)

// QuotaCounter tracks admitted records per UTC day behind a single mutex.
// Check and increment happen inside one critical section, so two concurrent
// callers at cap-1 result in exactly one admission. Old day keys simply go
// inactive; no maintenance job is needed.
type QuotaCounter struct {
	mu       sync.Mutex
	counts   map[string]int
	primed   map[string]bool
	baseline BaselineFunc
}

// NewQuotaCounter creates a counter. baseline may be nil, in which case every
// day starts at zero.
func NewQuotaCounter(baseline BaselineFunc) *QuotaCounter {
	return &QuotaCounter{
		counts:   make(map[string]int),
		primed:   make(map[string]bool),
		baseline: baseline,
	}
}

// TryIncrement atomically checks the count for day against max and increments
// it when below. It returns the pre-increment count and whether the increment
// was applied.
func (q *QuotaCounter) TryIncrement(ctx context.Context, day string, max int) (int, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.primeLocked(ctx, day); err != nil {
		return 0, false, err
	}

	prior := q.counts[day]
	if prior >= max {
		return prior, false, nil
	}
	q.counts[day] = prior + 1
	return prior, true, nil
}

// Release compensates one increment for day after a failed store insert, so a
// slow or broken store never silently consumes quota.
func (q *QuotaCounter) Release(day string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.counts[day] > 0 {
		q.counts[day]--
	}
}

// Count returns the current count for day without incrementing.
func (q *QuotaCounter) Count(day string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.counts[day]
}

func (q *QuotaCounter) primeLocked(ctx context.Context, day string) error {
	if q.primed[day] || q.baseline == nil {
		q.primed[day] = true
		return nil
	}
	dayStart, err := time.ParseInLocation(dayKeyLayout, day, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid day key %q: %w", day, err)
	}
	n, err := q.baseline(ctx, dayStart)
	if err != nil {
		return fmt.Errorf("failed to load quota baseline: %w", err)
	}
	q.counts[day] = n
	q.primed[day] = true
	return nil
}

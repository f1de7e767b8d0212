package cache

import (
	"fmt"
	"time"
)

// TimeUntilNextClock returns the time from now until the next occurrence of clock,
// an "HH:MM" time of day in UTC. The result is always positive: when now is
// exactly at clock, the next day's occurrence is used.
func TimeUntilNextClock(clock string, now time.Time) (time.Duration, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now), nil
}

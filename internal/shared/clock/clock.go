package clock

import "time"

// Clock abstracts the source of "today" so date dependent rules are deterministic in tests.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() time.Time { return DateOf(time.Now()) }

// FixedClock always returns the same date.
type FixedClock struct {
	Date time.Time
}

// NewFixedClock creates a FixedClock for the calendar date of t.
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{Date: DateOf(t)}
}

func (c FixedClock) Today() time.Time { return DateOf(c.Date) }

// DateOf drops the time of day, keeping t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

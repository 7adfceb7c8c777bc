package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The scheduler and the bot use it to decide what "tomorrow" is.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Tomorrow returns the calendar day after now, in loc.
func Tomorrow(c Clock, loc *time.Location) time.Time {
	return c.Now().In(loc).AddDate(0, 0, 1)
}

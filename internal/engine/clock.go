package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
// The Reporter uses it to determine "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local calendar date reported by c.
func Today(c Clock) (calendar.Date, error) {
	d, err := calendar.FromTime(c.Now())
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%s: %w", config.ErrClockDate, err)
	}
	return d, nil
}

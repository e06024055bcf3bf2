package engine

import (
	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/datediff"
)

// AgeEntry is one contact's age as seen from the report date.
type AgeEntry struct {
	// UID is a stable hash of the name and birth date.
	UID string `json:"uid" yaml:"uid"`

	Name string `json:"name" yaml:"name"`

	// Birth holds the placeholder year config.DefaultLeapYear when
	// YearKnown is false.
	Birth     calendar.Date `json:"birth" yaml:"birth"`
	YearKnown bool          `json:"year_known" yaml:"year_known"`

	// Age is the difference from Birth to the report date. A birth after
	// the report date (an expected due date) has Age.Inverted set.
	// Zero when YearKnown is false.
	Age datediff.Result `json:"age" yaml:"age"`

	// NextBirthday is the next occurrence on or after the report date.
	// February 29th falls on March 1st in common years.
	NextBirthday  calendar.Date `json:"next_birthday" yaml:"next_birthday"`
	DaysUntilNext int           `json:"days_until_next" yaml:"days_until_next"`

	// AgeNext is the age reached on NextBirthday, only set if YearKnown.
	AgeNext int `json:"age_next" yaml:"age_next"`
}

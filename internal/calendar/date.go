package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	separator  = "/"
	partsCount = 3
	formatDate = "%04d/%02d/%02d"
)

// Date is a validated year/month/day triple. Values are immutable; the only
// invalid Date that can exist is the zero value, see IsZero.
type Date struct {
	year  int
	month int
	day   int
}

// New returns the Date for year, month and day or a *ValidationError.
func New(year, month, day int) (Date, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return Date{}, err
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(year, month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse parses a date in YYYY/MM/DD form. Each part must be a base 10
// integer; leading zeros are allowed, other characters are not.
func Parse(text string) (Date, error) {
	parts := strings.Split(text, separator)
	if len(parts) != partsCount {
		return Date{}, newValidationError(RuleShape, MsgShape, text)
	}
	var fields [partsCount]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, newValidationError(RuleNumber, MsgNumber, p)
		}
		fields[i] = n
	}
	return New(fields[0], fields[1], fields[2])
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return New(y, int(m), d)
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// IsZero reports whether d is the zero value rather than a constructed date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1 if d is before other, 1 if after and 0 if equal.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(d.month - other.month)
	default:
		return sign(d.day - other.day)
	}
}

func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// DaysUntilMonthEnd returns the number of days left in d's month, zero on
// its last day.
func (d Date) DaysUntilMonthEnd() int {
	return monthLength(d.year, d.month) - d.day
}

// DaysUntilYearEnd returns the number of days left in d's year, zero on
// December 31st.
func (d Date) DaysUntilYearEnd() int {
	n := d.DaysUntilMonthEnd()
	for m := d.month + 1; m <= 12; m++ {
		n += monthLength(d.year, m)
	}
	return n
}

// DaysSinceYearStart returns d's ordinal day in its year, 1 on January 1st.
func (d Date) DaysSinceYearStart() int {
	n := d.day
	for m := 1; m < d.month; m++ {
		n += monthLength(d.year, m)
	}
	return n
}

// String formats d as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf(formatDate, d.year, d.month, d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, validating the input.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

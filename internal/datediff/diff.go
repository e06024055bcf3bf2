// Package datediff computes the civil-calendar difference between two dates:
// a years/months/days breakdown that follows month and year lengths, plus an
// independently computed total day count.
package datediff

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tartampluch/go-datediff/internal/calendar"
)

// Result is the difference between two dates. All counts are non-negative;
// Inverted records that the start date came after the end date and the two
// were swapped before computing.
type Result struct {
	Years     int  `json:"years" yaml:"years"`
	Months    int  `json:"months" yaml:"months"`
	Days      int  `json:"days" yaml:"days"`
	TotalDays int  `json:"total_days" yaml:"total_days"`
	Inverted  bool `json:"inverted" yaml:"inverted"`
}

// String formats r as e.g. "1y 2m 3d (428 days)", prefixed with "-" when
// inverted.
func (r Result) String() string {
	sign := ""
	if r.Inverted {
		sign = "-"
	}
	return fmt.Sprintf("%s%dy %dm %dd (%d days)", sign, r.Years, r.Months, r.Days, r.TotalDays)
}

// MaxYear is the largest year whose day count from 0001/01/01 still fits
// in an int.
const MaxYear = math.MaxInt / 366

var errZeroDate = errors.New("datediff: zero calendar.Date")

// Parse parses text as YYYY/MM/DD like calendar.Parse and also rejects years
// above MaxYear with a RuleYear validation error.
func Parse(text string) (calendar.Date, error) {
	d, err := calendar.Parse(text)
	if err != nil {
		return calendar.Date{}, err
	}
	if d.Year() > MaxYear {
		return calendar.Date{}, &calendar.ValidationError{
			Rule:  calendar.RuleYear,
			Msg:   calendar.MsgYearHigh,
			Input: strconv.Itoa(d.Year()),
		}
	}
	return d, nil
}

// Diff parses start and end as YYYY/MM/DD and returns their difference.
// The first validation failure is returned as is.
func Diff(start, end string) (Result, error) {
	s, err := Parse(start)
	if err != nil {
		return Result{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Result{}, err
	}
	return Between(s, e), nil
}

// Between returns the difference between two dates. Both must have been
// obtained from the calendar package constructors, with years up to
// MaxYear. It panics on the zero Date.
func Between(start, end calendar.Date) Result {
	if start.IsZero() || end.IsZero() {
		panic(errZeroDate)
	}
	var r Result
	if start.Compare(end) == 1 {
		start, end = end, start
		r.Inverted = true
	}
	r.Years, r.Months, r.Days = breakdown(start, end)
	r.TotalDays = totalDays(start, end)
	return r
}

// breakdown computes years, months and days for start <= end, borrowing
// from the next larger unit like long subtraction.
func breakdown(start, end calendar.Date) (years, months, days int) {
	borrowDay := start.Day() > end.Day()

	switch {
	case start.Day() == end.Day():
		days = 0
	case start.Day() < end.Day():
		days = end.Day() - start.Day()
	default:
		days = start.DaysUntilMonthEnd() + end.Day()
	}

	switch {
	case start.Month() == end.Month():
		if borrowDay {
			months = 11
		}
	case start.Month() < end.Month():
		months = end.Month() - start.Month()
		if borrowDay {
			months--
		}
	default:
		months = 12 - start.Month() + end.Month()
		if borrowDay {
			months--
		}
	}

	years = end.Year() - start.Year()
	if start.Month() > end.Month() || (start.Month() == end.Month() && borrowDay) {
		years--
	}
	return years, months, days
}

// totalDays counts the days from start to end, start <= end. It walks whole
// months, counts whole years in closed form and does not reuse the
// breakdown.
func totalDays(start, end calendar.Date) int {
	switch {
	case start.Equal(end):
		return 0
	case start.Year() == end.Year() && start.Month() == end.Month():
		return end.Day() - start.Day()
	case start.Year() == end.Year():
		n := start.DaysUntilMonthEnd() + end.Day()
		for m := start.Month() + 1; m < end.Month(); m++ {
			n += mustDaysInMonth(start.Year(), m)
		}
		return n
	default:
		return start.DaysUntilYearEnd() + end.DaysSinceYearStart() +
			daysBefore(end.Year()) - daysBefore(start.Year()+1)
	}
}

// daysBefore returns the number of days from 0001/01/01 to January 1st of
// year.
func daysBefore(year int) int {
	y := year - 1
	return 365*y + y/4 - y/100 + y/400
}

// The months walked by totalDays lie between two valid dates, so the
// lookup cannot fail.
func mustDaysInMonth(year, month int) int {
	n, err := calendar.DaysInMonth(year, month)
	if err != nil {
		panic(err)
	}
	return n
}

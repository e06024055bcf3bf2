// Package calendar provides a validated, immutable calendar date and the
// proleptic Gregorian arithmetic it is built on: leap years, month and year
// lengths and staged date validation.
package calendar

import "strconv"

// daysInMonth holds the common-year month lengths, January first.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has 366 days under the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month in year, 29 for February in a
// leap year. It fails if year or month are out of range.
func DaysInMonth(year, month int) (int, error) {
	if err := ValidateYearMonth(year, month); err != nil {
		return 0, err
	}
	return monthLength(year, month), nil
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) (int, error) {
	if err := ValidateYear(year); err != nil {
		return 0, err
	}
	return yearLength(year), nil
}

// ValidateYear checks that year is 1 or later.
func ValidateYear(year int) error {
	switch {
	case year == 0:
		return newValidationError(RuleYear, MsgYearZero, "")
	case year < 0:
		return newValidationError(RuleYear, MsgYearBC, strconv.Itoa(year))
	}
	return nil
}

// ValidateYearMonth checks the year and that month is in [1,12].
func ValidateYearMonth(year, month int) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return newValidationError(RuleMonth, MsgMonth, strconv.Itoa(month))
	}
	return nil
}

// ValidateDate checks year, month and that day fits within that month,
// taking leap years into account.
func ValidateDate(year, month, day int) error {
	if err := ValidateYearMonth(year, month); err != nil {
		return err
	}
	if day < 1 {
		return newValidationError(RuleDay, MsgDayLow, strconv.Itoa(day))
	}
	if day > monthLength(year, month) {
		return newValidationError(RuleDay, MsgDayHigh, strconv.Itoa(day))
	}
	return nil
}

// monthLength assumes year and month have already been validated.
func monthLength(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

func yearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

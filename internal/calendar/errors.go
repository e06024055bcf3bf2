package calendar

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("calendar: validation failed")

// Rule identifies the validation stage that rejected an input.
type Rule int

const (
	RuleShape  Rule = iota + 1 // wrong number of '/' separated segments
	RuleNumber                 // a segment is not an integer
	RuleYear                   // year zero or negative
	RuleMonth                  // month outside [1,12]
	RuleDay                    // day outside [1, days in month]
)

var ruleNames = [...]string{
	RuleShape:  "shape",
	RuleNumber: "number",
	RuleYear:   "year",
	RuleMonth:  "month",
	RuleDay:    "day",
}

// String returns the lowercase stage name, e.g. "month".
func (r Rule) String() string {
	if r > 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Messages used by ValidationError. Exported so callers and tests can match
// on wording without duplicating it.
const (
	MsgShape     = "date must consist of three parts (YYYY/MM/DD)"
	MsgNumber    = "date part is not a number"
	MsgYearZero  = "year zero doesn't exist"
	MsgYearBC    = "years before 1 (B.C.) are not supported"
	MsgYearHigh  = "year exceeds the supported range"
	MsgMonth     = "month number must be between 1 and 12"
	MsgDayLow    = "day number must be at least 1"
	MsgDayHigh   = "day number exceeds the length of the month"
	formatDetail = "%s: %q"
)

// ValidationError reports which validation rule an input violated.
type ValidationError struct {
	Rule  Rule
	Msg   string
	Input string // offending value, may be empty
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Msg
	}
	return fmt.Sprintf(formatDetail, e.Msg, e.Input)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(rule Rule, msg, input string) *ValidationError {
	return &ValidationError{Rule: rule, Msg: msg, Input: input}
}

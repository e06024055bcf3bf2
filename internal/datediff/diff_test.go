package datediff_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/datediff"
)

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       datediff.Result
	}{
		{
			name:  "Same month",
			start: "2020/01/01", end: "2020/01/31",
			want: datediff.Result{Days: 30, TotalDays: 30},
		},
		{
			name:  "Full leap year",
			start: "2020/01/15", end: "2021/01/15",
			want: datediff.Result{Years: 1, TotalDays: 366},
		},
		{
			name:  "Across leap February",
			start: "2020/02/28", end: "2020/03/01",
			want: datediff.Result{Days: 2, TotalDays: 2},
		},
		{
			name:  "Across common February",
			start: "2021/02/28", end: "2021/03/01",
			want: datediff.Result{Days: 1, TotalDays: 1},
		},
		{
			name:  "Day borrow",
			start: "2020/01/31", end: "2020/03/01",
			want: datediff.Result{Months: 1, Days: 1, TotalDays: 30},
		},
		{
			name:  "Borrow through the same month",
			start: "2020/03/31", end: "2021/03/01",
			want: datediff.Result{Months: 11, Days: 1, TotalDays: 335},
		},
		{
			name:  "Year boundary",
			start: "2020/11/10", end: "2021/02/20",
			want: datediff.Result{Months: 3, Days: 10, TotalDays: 102},
		},
		{
			name:  "Year boundary with borrow",
			start: "2020/11/20", end: "2021/02/10",
			want: datediff.Result{Months: 2, Days: 20, TotalDays: 82},
		},
		{
			name:  "Several whole months",
			start: "2021/01/10", end: "2021/06/10",
			want: datediff.Result{Months: 5, TotalDays: 151},
		},
		{
			name:  "Decades",
			start: "1999/12/31", end: "2024/02/29",
			want: datediff.Result{Years: 24, Months: 1, Days: 29, TotalDays: 8826},
		},
		{
			name:  "Inverted",
			start: "2020/03/01", end: "2020/01/31",
			want: datediff.Result{Months: 1, Days: 1, TotalDays: 30, Inverted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datediff.Diff(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiff_SameDate(t *testing.T) {
	for _, s := range []string{"0001/01/01", "2020/02/29", "2023/12/31"} {
		got, err := datediff.Diff(s, s)
		require.NoError(t, err)
		assert.Equal(t, datediff.Result{}, got, "date %s", s)
	}
}

func TestDiff_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		rule       calendar.Rule
	}{
		{"Wrong separator", "2020-01-01", "2020/02/01", calendar.RuleShape},
		{"End malformed", "2020/01/01", "2020/02", calendar.RuleShape},
		{"Not a number", "2020/jan/01", "2020/02/01", calendar.RuleNumber},
		{"Year zero", "0000/01/01", "2020/02/01", calendar.RuleYear},
		{"Bad month", "2020/01/01", "2020/13/01", calendar.RuleMonth},
		{"Bad day", "2023/02/29", "2024/02/29", calendar.RuleDay},
		{"Year above MaxYear", "2020/01/01", strconv.Itoa(math.MaxInt) + "/01/01", calendar.RuleYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datediff.Diff(tt.start, tt.end)
			assert.Equal(t, datediff.Result{}, got, "No partial result on failure")

			var verr *calendar.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestDiff_FarApartYears(t *testing.T) {
	// A million 400-year Gregorian cycles of 146097 days each.
	got, err := datediff.Diff("1/01/01", "400000001/01/01")
	require.NoError(t, err)
	assert.Equal(t, datediff.Result{Years: 400000000, TotalDays: 146097 * 1000000}, got)

	got, err = datediff.Diff("1/01/01", "200000000/01/01")
	require.NoError(t, err)
	assert.Equal(t, 199999999, got.Years)
	assert.Zero(t, got.Months)
	assert.Zero(t, got.Days)

	last := strconv.Itoa(datediff.MaxYear)
	got, err = datediff.Diff(last+"/12/31", "1/01/01")
	require.NoError(t, err)
	assert.True(t, got.Inverted)
	assert.Equal(t, datediff.MaxYear-1, got.Years)
	assert.Positive(t, got.TotalDays, "The largest span must not overflow")
}

func TestParse_MaxYear(t *testing.T) {
	d, err := datediff.Parse(strconv.Itoa(datediff.MaxYear) + "/01/01")
	require.NoError(t, err)
	assert.Equal(t, datediff.MaxYear, d.Year())

	_, err = datediff.Parse(strconv.Itoa(datediff.MaxYear+1) + "/01/01")
	var verr *calendar.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, calendar.RuleYear, verr.Rule)
	assert.Equal(t, calendar.MsgYearHigh, verr.Msg)
}

func TestBetween_ZeroDatePanics(t *testing.T) {
	d := calendar.MustNew(2020, 1, 1)
	assert.PanicsWithError(t, "datediff: zero calendar.Date", func() { datediff.Between(calendar.Date{}, d) })
	assert.PanicsWithError(t, "datediff: zero calendar.Date", func() { datediff.Between(d, calendar.Date{}) })
}

// sample returns every 11th day of a few years around century boundaries.
func sample(t *testing.T) []calendar.Date {
	t.Helper()
	var dates []calendar.Date
	for _, base := range []int{1899, 1999, 2099} {
		for y := base; y <= base+2; y++ {
			for m := 1; m <= 12; m++ {
				n, err := calendar.DaysInMonth(y, m)
				require.NoError(t, err)
				for d := 1; d <= n; d += 11 {
					dates = append(dates, calendar.MustNew(y, m, d))
				}
				// Always include month ends, where borrows happen.
				dates = append(dates, calendar.MustNew(y, m, n))
			}
		}
	}
	return dates
}

func epochDay(d calendar.Date) int {
	return int(d.Time().Unix() / 86400)
}

// TestBetween_Properties checks ordering symmetry, field ranges and the
// total day count against the standard library for many pairs.
func TestBetween_Properties(t *testing.T) {
	dates := sample(t)

	for _, a := range dates {
		for _, b := range dates {
			ab := datediff.Between(a, b)
			ba := datediff.Between(b, a)

			if a.Equal(b) {
				require.Equal(t, datediff.Result{}, ab)
				continue
			}

			require.Equal(t, ab.Inverted, !ba.Inverted, "%s %s", a, b)
			ba.Inverted = ab.Inverted
			require.Equal(t, ab, ba, "breakdown must not depend on order: %s %s", a, b)

			want := epochDay(b) - epochDay(a)
			if want < 0 {
				want = -want
			}
			require.Equal(t, want, ab.TotalDays, "total days %s -> %s", a, b)

			require.GreaterOrEqual(t, ab.Years, 0)
			require.GreaterOrEqual(t, ab.Days, 0)
			require.True(t, ab.Months >= 0 && ab.Months <= 11, "months %d for %s %s", ab.Months, a, b)
		}
	}
}

// TestBetween_NoBorrowMatchesAddDate checks that, when no day borrow is
// needed, adding the breakdown to the start lands exactly on the end.
func TestBetween_NoBorrowMatchesAddDate(t *testing.T) {
	dates := sample(t)

	for _, a := range dates {
		for _, b := range dates {
			if !a.Before(b) || a.Day() > b.Day() {
				continue
			}
			r := datediff.Between(a, b)
			got := a.Time().AddDate(r.Years, r.Months, r.Days)
			require.Equal(t, b.Time(), got, "%s + %s", a, r)
		}
	}
}

func TestResult_String(t *testing.T) {
	r := datediff.Result{Years: 1, Months: 2, Days: 3, TotalDays: 428}
	assert.Equal(t, "1y 2m 3d (428 days)", r.String())

	r.Inverted = true
	assert.Equal(t, "-1y 2m 3d (428 days)", r.String())
}

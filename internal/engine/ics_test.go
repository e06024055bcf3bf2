package engine_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
	"github.com/tartampluch/go-datediff/internal/engine"
)

var stamp = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestIntervalCalendar(t *testing.T) {
	start := calendar.MustNew(2020, 1, 31)
	end := calendar.MustNew(2020, 3, 1)
	res := datediff.Between(start, end)

	data, err := engine.IntervalCalendar(start, end, res, stamp)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20200131")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20200301")
	assert.Contains(t, ics, "0y 1m 1d (30 days)")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))

	// The output must decode back into a calendar with one event.
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)
}

func TestIntervalCalendar_InvertedAndEqual(t *testing.T) {
	a := calendar.MustNew(2021, 5, 5)
	b := calendar.MustNew(2020, 5, 5)

	data, err := engine.IntervalCalendar(a, b, datediff.Between(a, b), stamp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20200505", "Export is chronological")
	assert.Contains(t, string(data), "DTEND;VALUE=DATE:20210505")

	data, err = engine.IntervalCalendar(a, a, datediff.Between(a, a), stamp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "DTEND", "A zero-length interval has no end")
}

func TestIntervalCalendar_RejectsFiveDigitYears(t *testing.T) {
	start := calendar.MustNew(2020, 1, 1)
	end := calendar.MustNew(12345, 6, 7)

	for _, pair := range [][2]calendar.Date{{start, end}, {end, start}} {
		data, err := engine.IntervalCalendar(pair[0], pair[1], datediff.Between(pair[0], pair[1]), stamp)
		require.ErrorIs(t, err, engine.ErrYearRange)
		assert.Contains(t, err.Error(), "12345/06/07")
		assert.Nil(t, data)
	}

	last := calendar.MustNew(config.ICalMaxYear, 12, 31)
	data, err := engine.IntervalCalendar(start, last, datediff.Between(start, last), stamp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTEND;VALUE=DATE:99991231")
}

func TestBirthdayCalendar(t *testing.T) {
	entries := []engine.AgeEntry{
		{UID: "aaa", Name: "Known", YearKnown: true, AgeNext: 40, NextBirthday: calendar.MustNew(2025, 7, 1)},
		{UID: "bbb", Name: "Unknown", NextBirthday: calendar.MustNew(2025, 8, 2)},
	}

	data, err := engine.BirthdayCalendar(entries, stamp)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "X-WR-CALNAME:"+config.ICalBdays)
	assert.Contains(t, ics, "SUMMARY:Birthday: Known (40)")
	assert.Contains(t, ics, "SUMMARY:Birthday: Unknown")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250802")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestBirthdayCalendar_RejectsFiveDigitYears(t *testing.T) {
	entries := []engine.AgeEntry{{UID: "ccc", Name: "Far", NextBirthday: calendar.MustNew(10000, 1, 1)}}
	_, err := engine.BirthdayCalendar(entries, stamp)
	assert.ErrorIs(t, err, engine.ErrYearRange)
}

func TestBirthdayCalendar_Empty(t *testing.T) {
	data, err := engine.BirthdayCalendar(nil, stamp)
	require.NoError(t, err)
	assert.Equal(t, engine.StubVCalendar, string(data))
}

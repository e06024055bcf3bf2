package engine

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
)

// StubVCalendar is the minimal valid iCalendar object used when there are
// no events to export.
const StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + config.ICalProdid + "\r\nEND:VCALENDAR\r\n"

// ErrYearRange reports a date whose year an iCalendar DATE value cannot hold.
var ErrYearRange = errors.New(config.ErrICalYearRange)

// IntervalCalendar encodes one all-day event covering start up to, but not
// including, end. DTEND is exclusive in iCalendar, so the event lasts
// exactly res.TotalDays days. Inverted inputs are exported in
// chronological order. Years past 9999 are rejected with ErrYearRange.
func IntervalCalendar(start, end calendar.Date, res datediff.Result, now time.Time) ([]byte, error) {
	if start.After(end) {
		start, end = end, start
	}
	if err := checkYears(start, end); err != nil {
		return nil, err
	}
	cal := newCalendar(config.ICalCalName)

	event := ical.NewEvent()
	uidBase := hashUID(start.String(), end.String())
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, "interval", config.ICalDomain))
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatIntervalSummary, start, end, res))
	event.Props.Set(dateTimeProp(config.PropDTStamp, now))
	event.Props.Set(dateProp(config.PropDTStart, start))
	if !start.Equal(end) {
		event.Props.Set(dateProp(config.PropDTEnd, end))
	}
	cal.Children = append(cal.Children, event.Component)

	return encode(cal)
}

// BirthdayCalendar encodes an all-day event on each entry's next birthday.
func BirthdayCalendar(entries []AgeEntry, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return []byte(StubVCalendar), nil
	}

	cal := newCalendar(config.ICalBdays)
	stamp := dateTimeProp(config.PropDTStamp, now)

	for _, e := range entries {
		if err := checkYears(e.NextBirthday); err != nil {
			return nil, err
		}
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, e.UID, e.NextBirthday.String(), config.ICalDomain))

		summary := fmt.Sprintf(config.FormatBirthdaySummary, e.Name)
		if e.YearKnown {
			summary = fmt.Sprintf(config.FormatBirthdayAge, e.Name, e.AgeNext)
		}
		event.Props.SetText(config.PropSummary, summary)
		event.Props.Set(stamp)
		event.Props.Set(dateProp(config.PropDTStart, e.NextBirthday))
		cal.Children = append(cal.Children, event.Component)
	}

	return encode(cal)
}

func newCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)
	return cal
}

func checkYears(dates ...calendar.Date) error {
	for _, d := range dates {
		if d.Year() > config.ICalMaxYear {
			return fmt.Errorf("%w: %s", ErrYearRange, d)
		}
	}
	return nil
}

func dateProp(name string, d calendar.Date) *ical.Prop {
	p := ical.NewProp(name)
	p.SetDate(d.Time())
	return p
}

func dateTimeProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.SetDateTime(t.UTC())
	return p
}

func hashUID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'|'})
	}
	h.Write([]byte(config.UIDSalt))
	return fmt.Sprintf("%x", h.Sum(nil)[:config.UIDHashLength])
}

func encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

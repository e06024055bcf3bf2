package engine

import (
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
)

// SourceConfig describes where contacts are read from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Reporter turns a vCard stream into an age report.
type Reporter struct {
	Clock   Clock
	Fetcher VCardFetcher
}

type reportStats struct{ processed, withBday, today int }

// Run reads every contact from the configured source and returns one
// AgeEntry per contact with a usable BDAY, ordered by next birthday.
func (r *Reporter) Run(ctx context.Context, cfg SourceConfig) ([]AgeEntry, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgReportStarted)

	today, err := Today(r.clock())
	if err != nil {
		return nil, err
	}

	reader, err := r.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, stats, err := r.collect(ctx, reader, today)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, config.MsgReportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return entries, nil
}

func (r *Reporter) clock() Clock {
	if r.Clock == nil {
		return RealClock{}
	}
	return r.Clock
}

func (r *Reporter) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if r.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return r.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func (r *Reporter) collect(ctx context.Context, rd io.Reader, today calendar.Date) ([]AgeEntry, reportStats, error) {
	var (
		stats   reportStats
		entries []AgeEntry
	)
	decoder := vcard.NewDecoder(rd)

	for {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going; one bad card should not hide the rest.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value,
				config.LogKeyError, err)
			continue
		}
		stats.withBday++

		entry := newAgeEntry(contactName(card), birth, yearKnown, today)
		if entry.DaysUntilNext == 0 {
			stats.today++
			slog.Debug(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, entry.Name,
				config.LogKeyDOB, entry.Birth.String())
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b AgeEntry) int {
		if c := a.NextBirthday.Compare(b.NextBirthday); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return entries, stats, nil
}

// contactName prefers FN (formatted) over N (structured).
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

func newAgeEntry(name string, birth calendar.Date, yearKnown bool, today calendar.Date) AgeEntry {
	input := fmt.Sprintf(config.FormatHashInput, name, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	entry := AgeEntry{
		UID:       fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:      name,
		Birth:     birth,
		YearKnown: yearKnown,
	}

	entry.NextBirthday = nextBirthday(today, birth, yearKnown)
	entry.DaysUntilNext = datediff.Between(today, entry.NextBirthday).TotalDays

	if yearKnown {
		entry.Age = datediff.Between(birth, today)
		entry.AgeNext = entry.NextBirthday.Year() - birth.Year()
	}
	return entry
}

// nextBirthday returns the first anniversary of birth on or after today.
// An unborn contact's next birthday is the birth date itself.
func nextBirthday(today, birth calendar.Date, yearKnown bool) calendar.Date {
	if yearKnown && birth.After(today) {
		return birth
	}
	candidate := anniversary(birth, today.Year())
	if candidate.Before(today) {
		candidate = anniversary(birth, today.Year()+1)
	}
	return candidate
}

// anniversary moves birth to year, turning February 29th into March 1st
// when year is not a leap year.
func anniversary(birth calendar.Date, year int) calendar.Date {
	month, day := birth.Month(), birth.Day()
	if month == 2 && day == 29 && !calendar.IsLeapYear(year) {
		month, day = 3, 1
	}
	return calendar.MustNew(year, month, day)
}

// parseBirthday handles the vCard BDAY formats seen in the wild.
func parseBirthday(value string) (calendar.Date, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			d, err := calendar.FromTime(t)
			if err != nil {
				return calendar.Date{}, false, err
			}
			return d, true, nil
		}
	}

	// Truncated dates (year unknown) get a leap placeholder year so that
	// --02-29 stays valid.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			d, err := calendar.New(config.DefaultLeapYear, int(t.Month()), t.Day())
			if err != nil {
				return calendar.Date{}, false, err
			}
			return d, false, nil
		}
	}

	return calendar.Date{}, false, errors.New(config.ErrDateParse)
}

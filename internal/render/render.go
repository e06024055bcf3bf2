// Package render writes diff results and age reports as plain text tables,
// JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
	"github.com/tartampluch/go-datediff/internal/engine"
)

// Diff is the document written for a single date difference.
type Diff struct {
	Start  calendar.Date   `json:"start" yaml:"start"`
	End    calendar.Date   `json:"end" yaml:"end"`
	Result datediff.Result `json:"result" yaml:"result"`
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// CheckFormat returns an error unless format is one Write understands.
func CheckFormat(format string) error {
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
		return nil
	}
	return fmt.Errorf("%s: %q", config.ErrUnknownFormat, format)
}

// WriteDiff writes d to w in format.
func WriteDiff(w io.Writer, format string, d Diff) error {
	if format == config.FormatText {
		return writeText(w, diffTable(d))
	}
	return writeStructured(w, format, d)
}

// WriteAges writes an age report to w in format.
func WriteAges(w io.Writer, format string, entries []engine.AgeEntry) error {
	if format == config.FormatText {
		if len(entries) == 0 {
			return nil
		}
		return writeText(w, agesTable(entries))
	}
	if entries == nil {
		entries = []engine.AgeEntry{}
	}
	return writeStructured(w, format, entries)
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", config.ErrRender, err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", config.ErrRender, err)
		}
		return enc.Close()
	}
	return CheckFormat(format)
}

func writeText(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintln(w, t); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	return nil
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.PaddingLeft(1)
			}
			return style
		})
}

func diffTable(d Diff) *table.Table {
	r := d.Result
	direction := "forward"
	if r.Inverted {
		direction = "inverted"
	}
	return newTable().
		Headers("FROM", "TO", "YEARS", "MONTHS", "DAYS", "TOTAL DAYS", "DIRECTION").
		Row(d.Start.String(), d.End.String(),
			strconv.Itoa(r.Years), strconv.Itoa(r.Months), strconv.Itoa(r.Days),
			humanize.Comma(int64(r.TotalDays)), direction)
}

func agesTable(entries []engine.AgeEntry) *table.Table {
	t := newTable().Headers("NAME", "BORN", "AGE", "DAYS LIVED", "NEXT", "IN DAYS")
	for _, e := range entries {
		born, age, lived := fmt.Sprintf("--%02d/%02d", e.Birth.Month(), e.Birth.Day()), "-", "-"
		if e.YearKnown {
			born = e.Birth.String()
			age = fmt.Sprintf("%dy %dm %dd", e.Age.Years, e.Age.Months, e.Age.Days)
			lived = humanize.Comma(int64(e.Age.TotalDays))
			if e.Age.Inverted {
				age, lived = "unborn", "-"
			}
		}
		t.Row(e.Name, born, age, lived, e.NextBirthday.String(), humanize.Comma(int64(e.DaysUntilNext)))
	}
	return t
}

// Package menudate maps source filenames and table day numbers to absolute
// calendar dates.
//
// Menu filenames follow "menu-du-<start>-au-<end>-<month>" and a single file
// can cross a month boundary ("menu-du-29-au-03-octobre" covers Sept 29-30
// and Oct 1-3). The table itself only carries bare day-of-month numbers, so
// the filename span decides which month each number belongs to.
package menudate

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/tarikhaida/menu-tracker/constants"
)

// Config carries the fallbacks applied when a filename has no usable month
// information. Both are required; NewResolver fills zero values.
type Config struct {
	DefaultYear  int
	DefaultMonth time.Month
}

// Resolver parses filename date ranges and assigns table day numbers to
// absolute dates.
type Resolver struct {
	cfg    Config
	logger *slog.Logger
}

func NewResolver(cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultYear == 0 {
		cfg.DefaultYear = 2025
	}
	if cfg.DefaultMonth == 0 {
		cfg.DefaultMonth = time.September
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// Span is the month coverage recovered from one filename. StartDay/EndDay
// are zero when the filename carried a month but no day range.
type Span struct {
	StartDay   int
	EndDay     int
	StartMonth time.Month
	EndMonth   time.Month
	Year       int
}

// HasDayRange reports whether the filename carried an explicit day range.
func (s Span) HasDayRange() bool {
	return s.StartDay > 0 && s.EndDay > 0
}

// CrossesMonth reports whether the span covers two consecutive months.
func (s Span) CrossesMonth() bool {
	return s.HasDayRange() && s.StartMonth != s.EndMonth
}

// rangeRe matches "menu du <start> au <end> <month>" with hyphen or
// underscore delimiters, case-insensitive.
var rangeRe = regexp.MustCompile(`(?i)menu[-_]du[-_](\d+)[-_]au[-_](\d+)[-_]([a-zA-Zéèêëû]+)`)

// ParseFilename recovers the month span a filename covers. Never fails:
// an unrecognized filename falls back to a bare month-name scan, then to
// the configured defaults.
func (r *Resolver) ParseFilename(filename string) Span {
	m := rangeRe.FindStringSubmatch(filename)
	if m == nil {
		// No day range. Any month name in the filename still pins the month.
		if month, ok := constants.MonthFromName(filename); ok {
			return Span{StartMonth: month, EndMonth: month, Year: r.cfg.DefaultYear}
		}
		r.logger.Warn("menudate.filename.unrecognized",
			"filename", filename, "default_month", int(r.cfg.DefaultMonth))
		return Span{StartMonth: r.cfg.DefaultMonth, EndMonth: r.cfg.DefaultMonth, Year: r.cfg.DefaultYear}
	}

	startDay, _ := strconv.Atoi(m[1])
	endDay, _ := strconv.Atoi(m[2])

	endMonth, ok := constants.MonthFromName(m[3])
	if !ok {
		r.logger.Warn("menudate.month.unresolved", "filename", filename, "token", m[3])
		endMonth = r.cfg.DefaultMonth
	}

	startMonth := endMonth
	if startDay > endDay {
		// The range crosses into the next month: the named month is the end
		// month and the start month is the one before it. The year stays
		// fixed; a December->January wrap is not modeled.
		if endMonth > time.January {
			startMonth = endMonth - 1
		} else {
			startMonth = time.December
		}
		if max := constants.DaysIn(startMonth); startDay > max {
			startDay = max
		}
	}

	return Span{
		StartDay:   startDay,
		EndDay:     endDay,
		StartMonth: startMonth,
		EndMonth:   endMonth,
		Year:       r.cfg.DefaultYear,
	}
}

// ResolveDay assigns a table day number to an absolute date within the span.
// The returned bool reports whether a best-effort correction was applied
// (ambiguous month assignment or invalid-date clamping); it is policy, not
// an error, and never aborts a document.
func (r *Resolver) ResolveDay(span Span, day int) (time.Time, bool) {
	corrected := false

	var month time.Month
	switch {
	case !span.HasDayRange():
		month = span.EndMonth
	case !span.CrossesMonth():
		month = span.StartMonth
	case day >= span.StartDay:
		month = span.StartMonth
	case day <= span.EndDay:
		month = span.EndMonth
	default:
		// Outside both bounds: best-effort fallback to the end month.
		month = span.EndMonth
		corrected = true
		r.logger.Warn("menudate.day.ambiguous",
			"day", day, "start_day", span.StartDay, "end_day", span.EndDay,
			"month", int(month))
	}

	if max := constants.DaysIn(month); day > max {
		// Day 31 in a 30-day month and similar OCR damage: clamp to 28
		// instead of failing the whole document.
		r.logger.Warn("menudate.date.clamped",
			"year", span.Year, "month", int(month), "day", day)
		day = 28
		corrected = true
	}

	return time.Date(span.Year, month, day, 0, 0, 0, 0, time.UTC), corrected
}

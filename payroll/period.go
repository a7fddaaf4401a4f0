/*
period.go - Monthly payroll periods

PURPOSE:
  A payroll computation is always scoped to one calendar month. Period keys
  ("2025-06") come from the caller; period labels ("jun 2025") are the
  Spanish-abbreviated form used by the reference sheet's "Período" column.

NOTE ON LABELS:
  The month-name table matches the sheet exactly, including the four-letter
  "sept" for September. Matching against the sheet is case and whitespace
  insensitive, but the label shape itself is fixed.
*/
package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// spanishMonths is the abbreviation table used by the reference sheet.
var spanishMonths = map[time.Month]string{
	time.January:   "ene",
	time.February:  "feb",
	time.March:     "mar",
	time.April:     "abr",
	time.May:       "may",
	time.June:      "jun",
	time.July:      "jul",
	time.August:    "ago",
	time.September: "sept",
	time.October:   "oct",
	time.November:  "nov",
	time.December:  "dic",
}

// Period is one calendar month of one year.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a "YYYY-MM" key. An empty string selects the current
// month (in UTC), matching the workflow default.
func ParsePeriod(s string) (Period, error) {
	if strings.TrimSpace(s) == "" {
		return CurrentPeriod(time.Now().UTC()), nil
	}
	year, month, ok := strings.Cut(s, "-")
	if !ok {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	y, yerr := strconv.Atoi(year)
	m, merr := strconv.Atoi(month)
	if yerr != nil || merr != nil || m < 1 || m > 12 || y < 1 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: y, Month: time.Month(m)}, nil
}

// CurrentPeriod returns the period containing the given instant.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// Key returns the canonical "YYYY-MM" form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label returns the sheet-facing "mon year" form, e.g. "jun 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", spanishMonths[p.Month], p.Year)
}

// Start returns the first day of the period at midnight UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period at midnight UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Contains reports whether t falls in this period's month and year.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// IsAguinaldoMonth reports whether this period is one of the two statutory
// bonus months (mid-year and year-end).
func (p Period) IsAguinaldoMonth() bool {
	return p.Month == time.June || p.Month == time.December
}

// localDateLayouts are the date formats the event sheet is known to use.
var localDateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseLocalDate parses an event-sheet date cell (DD/MM/YYYY or YYYY-MM-DD).
// Returns ok=false for empty or unrecognized input; callers skip such rows.
func ParseLocalDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range localDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

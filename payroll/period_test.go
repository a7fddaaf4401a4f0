package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

func TestParsePeriod(t *testing.T) {
	p, err := payroll.ParsePeriod("2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year != 2025 || p.Month != time.June {
		t.Errorf("got %+v", p)
	}
	if p.Key() != "2025-06" {
		t.Errorf("Key() = %q", p.Key())
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, in := range []string{"2025", "2025-13", "2025-00", "jun 2025", "x-y"} {
		if _, err := payroll.ParsePeriod(in); !errors.Is(err, payroll.ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q): expected ErrInvalidPeriod, got %v", in, err)
		}
	}
}

func TestParsePeriod_EmptyDefaultsToCurrentMonth(t *testing.T) {
	p, err := payroll.ParsePeriod("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now := time.Now().UTC()
	if p.Year != now.Year() || p.Month != now.Month() {
		t.Errorf("expected current month, got %+v", p)
	}
}

func TestPeriodLabel_SpanishAbbreviations(t *testing.T) {
	cases := map[time.Month]string{
		time.January:   "ene 2025",
		time.June:      "jun 2025",
		time.September: "sept 2025", // four letters, matching the sheet
		time.December:  "dic 2025",
	}
	for month, want := range cases {
		p := payroll.Period{Year: 2025, Month: month}
		if p.Label() != want {
			t.Errorf("Label(%v) = %q, want %q", month, p.Label(), want)
		}
	}
}

func TestPeriodEndAndContains(t *testing.T) {
	p := payroll.Period{Year: 2025, Month: time.February}
	if p.End().Day() != 28 {
		t.Errorf("End() = %v", p.End())
	}
	if !p.Contains(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)) {
		t.Error("should contain a mid-month date")
	}
	if p.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("should not contain the next month")
	}
}

func TestIsAguinaldoMonth(t *testing.T) {
	if !(payroll.Period{Year: 2025, Month: time.June}).IsAguinaldoMonth() {
		t.Error("June is an aguinaldo month")
	}
	if !(payroll.Period{Year: 2025, Month: time.December}).IsAguinaldoMonth() {
		t.Error("December is an aguinaldo month")
	}
	if (payroll.Period{Year: 2025, Month: time.March}).IsAguinaldoMonth() {
		t.Error("March is not an aguinaldo month")
	}
}

func TestParseLocalDate(t *testing.T) {
	if d, ok := payroll.ParseLocalDate("15/06/2025"); !ok || d.Month() != time.June || d.Day() != 15 {
		t.Errorf("day-first parse failed: %v %v", d, ok)
	}
	if d, ok := payroll.ParseLocalDate("2025-06-15"); !ok || d.Day() != 15 {
		t.Errorf("ISO parse failed: %v %v", d, ok)
	}
	for _, in := range []string{"", "   ", "junio 15", "15-06-2025"} {
		if _, ok := payroll.ParseLocalDate(in); ok {
			t.Errorf("ParseLocalDate(%q) should not parse", in)
		}
	}
}

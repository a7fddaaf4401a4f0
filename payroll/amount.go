/*
amount.go - Locale-aware monetary parsing and formatting

PURPOSE:
  Converts the spreadsheet's Argentine-locale amount strings ("AR$1.234,56",
  "- AR$500,00") into decimal values and renders them back. The source data
  is hand-maintained, so parsing is deliberately total: sentinel and
  unparseable cells map to zero instead of failing the run.

GRAMMAR:
  - Currency markers "AR$" and "$" and all spaces are stripped
  - "." and "," both present: "." is the thousands separator, "," decimal
  - only ",": decimal separator
  - only ".": thousands separator (a bare "1.234" is one thousand, not 1.234)
  - "", "-", "--": zero

ROUND-TRIP LAW:
  ParseARS(FormatARS(x)) == x.Round(2) for every finite x.

LENIENCY:
  ParseARS never errors. Callers that want to distinguish "really zero"
  from "garbage cell" use ParseARSStrict.
*/
package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountSentinels = map[string]bool{"": true, "-": true, "--": true}

// normalizeLocale rewrites a locale-formatted numeric string into the form
// decimal.NewFromString accepts. Returns ok=false for sentinel cells.
func normalizeLocale(text string, stripCurrency bool) (string, bool) {
	s := strings.TrimSpace(text)
	if stripCurrency {
		s = strings.ReplaceAll(s, "AR$", "")
		s = strings.ReplaceAll(s, "$", "")
	}
	s = strings.ReplaceAll(s, " ", "")
	if amountSentinels[s] {
		return "", false
	}
	// Dots are always thousands separators in this locale; the comma, when
	// present, is the decimal point.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s, true
}

// ParseARS parses a locale-formatted monetary string to a 2-decimal value.
// Sentinel and unparseable input map to zero.
func ParseARS(text string) decimal.Decimal {
	v, err := ParseARSStrict(text)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseARSStrict is ParseARS with the leniency removed: sentinel cells still
// map to zero (they are deliberate placeholders in the sheet), but otherwise
// unparseable input is reported instead of silently zeroed.
func ParseARSStrict(text string) (decimal.Decimal, error) {
	s, ok := normalizeLocale(text, true)
	if !ok {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", text, err)
	}
	return v.Round(2), nil
}

// ParseNumber parses a locale-formatted plain number (rates, hours, day
// counts). Same separators as ParseARS, no currency stripping, no rounding.
// Unparseable input maps to zero.
func ParseNumber(text string) decimal.Decimal {
	s, ok := normalizeLocale(text, false)
	if !ok {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// FormatARS renders a value as the canonical currency string: two decimals,
// "." thousands grouping, "," decimal separator, "AR$" marker, and a literal
// "- " prefix (not a sign character) for negatives.
func FormatARS(v decimal.Decimal) string {
	sign := ""
	abs := v.Round(2).Abs()
	if v.IsNegative() {
		sign = "- "
	}

	fixed := abs.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var chunks []string
	for len(whole) > 3 {
		chunks = append([]string{whole[len(whole)-3:]}, chunks...)
		whole = whole[:len(whole)-3]
	}
	chunks = append([]string{whole}, chunks...)

	return sign + "AR$" + strings.Join(chunks, ".") + "," + frac
}

/*
entitlement.go - Periodic statutory entitlement generation

PURPOSE:
  Argentine domestic employment law mandates a half-salary bonus
  (aguinaldo / SAC) paid in June and December. When a bonus month comes
  around and nobody has recorded the payment as an event yet, the engine
  inserts a synthetic line item estimating it, flagged for human review.

POLICY, NOT LAW:
  The 50%-of-subtotal valuation is a household estimation heuristic, not
  the statutory formula (which is based on the best salary of the
  semester). It is therefore a configurable policy, not a constant: the
  months, the rate, and the marker that suppresses generation are all
  fields of EntitlementPolicy.

SUPPRESSION:
  If any collected event's type contains the marker (case-insensitive
  substring match), the entitlement was recorded manually and no synthetic
  item is generated. This prevents double counting.
*/
package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntitlementPolicy configures when and how periodic entitlements are
// synthesized.
type EntitlementPolicy struct {
	// Months in which the entitlement falls due.
	Months []time.Month

	// Rate applied to the period subtotal, e.g. 0.5 for a half salary.
	Rate decimal.Decimal

	// Marker suppresses generation when it appears (case-insensitively)
	// inside any event's type field.
	Marker string

	// ItemType and Note annotate the generated line item.
	ItemType string
	Note     string
}

// DefaultEntitlementPolicy is the aguinaldo policy: June and December, half
// the monthly subtotal, suppressed by any event typed "aguinaldo".
func DefaultEntitlementPolicy() EntitlementPolicy {
	return EntitlementPolicy{
		Months:   []time.Month{time.June, time.December},
		Rate:     decimal.NewFromFloat(0.5),
		Marker:   "aguinaldo",
		ItemType: "Aguinaldo auto",
		Note:     "Estimado automático (50% del subtotal mensual). Revisar antes de aprobar.",
	}
}

func (ep EntitlementPolicy) dueIn(month time.Month) bool {
	for _, m := range ep.Months {
		if m == month {
			return true
		}
	}
	return false
}

func (ep EntitlementPolicy) recordedIn(events []Event) bool {
	marker := strings.ToLower(ep.Marker)
	if marker == "" {
		return false
	}
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Type), marker) {
			return true
		}
	}
	return false
}

// Generate returns the synthetic line items for the period: at most one,
// valued Rate x subtotal rounded to 2 decimals, and only when the period is
// an entitlement month with no manually recorded entitlement event.
func (ep EntitlementPolicy) Generate(p Period, subtotal decimal.Decimal, events []Event) []LineItem {
	if !ep.dueIn(p.Month) || ep.recordedIn(events) {
		return nil
	}
	return []LineItem{{
		Type:        ep.ItemType,
		Description: ep.Note,
		Amount:      subtotal.Mul(ep.Rate).Round(2),
	}}
}

// ItemsSum returns the 2-decimal sum of the generated line items.
func ItemsSum(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum.Round(2)
}

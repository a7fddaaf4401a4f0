package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

func TestEntitlement_GeneratedInBonusMonth(t *testing.T) {
	// GIVEN: a mid-year period with no aguinaldo-marked event
	policy := payroll.DefaultEntitlementPolicy()
	subtotal := dec("859072")

	// WHEN: generating
	items := policy.Generate(june2025(), subtotal, nil)

	// THEN: exactly one synthetic item at 50% of the subtotal
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].Amount.Equal(dec("429536")) {
		t.Errorf("Amount = %v, want 429536", items[0].Amount)
	}
	if items[0].Type != "Aguinaldo auto" {
		t.Errorf("Type = %q", items[0].Type)
	}
}

func TestEntitlement_SuppressedByMarkedEvent(t *testing.T) {
	policy := payroll.DefaultEntitlementPolicy()
	events := []payroll.Event{{Type: "Pago AGUINALDO junio", Amount: dec("400000")}}
	if items := policy.Generate(june2025(), dec("800000"), events); len(items) != 0 {
		t.Fatalf("expected no synthetic item, got %v", items)
	}
}

func TestEntitlement_NotGeneratedOffMonths(t *testing.T) {
	policy := payroll.DefaultEntitlementPolicy()
	p := payroll.Period{Year: 2025, Month: time.March}
	if items := policy.Generate(p, dec("800000"), nil); len(items) != 0 {
		t.Fatalf("expected no item in March, got %v", items)
	}
}

func TestEntitlement_RateIsPolicyNotLaw(t *testing.T) {
	// The 50% valuation is a configurable estimate; a different policy rate
	// must flow through unchanged.
	policy := payroll.EntitlementPolicy{
		Months:   []time.Month{time.June},
		Rate:     decimal.NewFromFloat(0.25),
		Marker:   "aguinaldo",
		ItemType: "SAC estimado",
	}
	items := policy.Generate(june2025(), dec("100000"), nil)
	if len(items) != 1 || !items[0].Amount.Equal(dec("25000")) {
		t.Fatalf("expected one 25000 item, got %v", items)
	}
}

func TestEntitlement_RoundedToTwoDecimals(t *testing.T) {
	policy := payroll.DefaultEntitlementPolicy()
	items := policy.Generate(june2025(), dec("100000.05"), nil)
	if len(items) != 1 || !items[0].Amount.Equal(dec("50000.03")) {
		t.Fatalf("expected 50000.03, got %v", items)
	}
}

func TestItemsSum(t *testing.T) {
	items := []payroll.LineItem{{Amount: dec("10.10")}, {Amount: dec("5.05")}}
	if got := payroll.ItemsSum(items); !got.Equal(dec("15.15")) {
		t.Errorf("ItemsSum = %v", got)
	}
}

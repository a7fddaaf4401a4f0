package payroll_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

func TestCompute_EndToEndWithEvent(t *testing.T) {
	// GIVEN: reference row {base=779400, seniority%=1, perDiemTotal=71878}
	//        and one +12000 event in period
	ds := payroll.Dataset{
		Reference: []payroll.Row{{
			"Período":          "jun 2025",
			"Salario básico":   "AR$779.400,00",
			"Antiguedad":       "1",
			"Viáticos totales": "AR$71.878,00",
		}},
		Events: []payroll.Row{{
			"Fecha":                      "10/06/2025",
			"Tipo de evento":             "Pago aguinaldo",
			"Monto adicional/descuento":  "AR$12.000,00",
		}},
	}

	// WHEN: computing jun 2025 (the aguinaldo event suppresses the auto item)
	b, err := payroll.NewEngine().Compute("mariza", "Mariza", june2025(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN: the documented breakdown
	want := map[string]string{
		"basico":     "779400",
		"antiguedad": "7794",
		"viaticos":   "71878",
		"eventos":    "12000",
		"subtotal":   "859072",
		"otros":      "0",
		"total":      "871072",
	}
	got := map[string]string{
		"basico":     b.Basico.String(),
		"antiguedad": b.Antiguedad.String(),
		"viaticos":   b.Viaticos.String(),
		"eventos":    b.Eventos.String(),
		"subtotal":   b.Subtotal.String(),
		"otros":      b.Otros.String(),
		"total":      b.Total.String(),
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %s, want %s", k, got[k], w)
		}
	}
}

func TestCompute_NoEventsTotalEqualsSubtotal(t *testing.T) {
	// GIVEN: a non-entitlement month with zero events
	ds := payroll.Dataset{
		Reference: []payroll.Row{{
			"Período":        "mar 2025",
			"Salario básico": "AR$500.000,00",
		}},
	}
	p := payroll.Period{Year: 2025, Month: time.March}
	b, err := payroll.NewEngine().Compute("irma", "Irma", p, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Total.Equal(b.Subtotal) {
		t.Errorf("Total %v != Subtotal %v", b.Total, b.Subtotal)
	}
	if !b.Eventos.IsZero() || !b.Otros.IsZero() {
		t.Errorf("Eventos=%v Otros=%v, want zero", b.Eventos, b.Otros)
	}
}

func TestCompute_AguinaldoMonthAddsAutoItem(t *testing.T) {
	ds := payroll.Dataset{
		Reference: []payroll.Row{{
			"Período":        "dic 2025",
			"Salario básico": "AR$800.000,00",
		}},
	}
	p := payroll.Period{Year: 2025, Month: time.December}
	b, err := payroll.NewEngine().Compute("mariza", "Mariza", p, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.AutoItems) != 1 {
		t.Fatalf("expected 1 auto item, got %d", len(b.AutoItems))
	}
	if !b.Otros.Equal(dec("400000")) {
		t.Errorf("Otros = %v, want 400000", b.Otros)
	}
	if !b.Total.Equal(dec("1200000")) {
		t.Errorf("Total = %v, want 1200000", b.Total)
	}
}

func TestCompute_MissingReferenceRow(t *testing.T) {
	_, err := payroll.NewEngine().Compute("mariza", "Mariza", june2025(), payroll.Dataset{})
	if !errors.Is(err, payroll.ErrNoReferenceRow) {
		t.Fatalf("expected ErrNoReferenceRow, got %v", err)
	}
	var nre *payroll.NoReferenceRowError
	if !errors.As(err, &nre) || nre.WorkerKey != "mariza" {
		t.Errorf("error should carry worker key: %#v", err)
	}
}

func TestCompute_WorkedHoursDerived(t *testing.T) {
	ds := payroll.Dataset{
		Reference: []payroll.Row{{
			"Período":      "mar 2025",
			"Días hábiles": "20",
			"Horas/día":    "4",
			"Básico/hora":  "AR$3.000,00",
		}},
	}
	p := payroll.Period{Year: 2025, Month: time.March}
	b, err := payroll.NewEngine().Compute("irma", "Irma", p, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.HorasTrabajadas.Equal(dec("80")) {
		t.Errorf("HorasTrabajadas = %v, want 80", b.HorasTrabajadas)
	}
}

func TestCompute_ReconciliationInvariantRandomized(t *testing.T) {
	// PROPERTY: subtotal + eventos + otros == total for every computed
	// breakdown, over randomly generated valid inputs.
	rng := rand.New(rand.NewSource(42))
	engine := payroll.NewEngine()

	for i := 0; i < 300; i++ {
		month := time.Month(rng.Intn(12) + 1)
		p := payroll.Period{Year: 2025, Month: month}

		ref := payroll.Row{"Período": p.Label()}
		if rng.Intn(2) == 0 {
			ref["Salario básico"] = fmt.Sprintf("%d,%02d", rng.Intn(900000)+1, rng.Intn(100))
		} else {
			ref["Días hábiles"] = fmt.Sprintf("%d", rng.Intn(23)+1)
			ref["Horas/día"] = fmt.Sprintf("%d", rng.Intn(8)+1)
			ref["Básico/hora"] = fmt.Sprintf("AR$%d,00", rng.Intn(5000)+1)
		}
		if rng.Intn(2) == 0 {
			ref["Antiguedad"] = fmt.Sprintf("%d", rng.Intn(10))
		}
		if rng.Intn(2) == 0 {
			ref["Viáticos totales"] = fmt.Sprintf("AR$%d,50", rng.Intn(80000))
		}

		var events []payroll.Row
		for j := 0; j < rng.Intn(4); j++ {
			sign := ""
			if rng.Intn(2) == 0 {
				sign = "- "
			}
			events = append(events, payroll.Row{
				"Fecha":                     fmt.Sprintf("%02d/%02d/2025", rng.Intn(28)+1, int(month)),
				"Tipo de evento":            "Ajuste",
				"Monto adicional/descuento": fmt.Sprintf("%sAR$%d,%02d", sign, rng.Intn(50000), rng.Intn(100)),
			})
		}

		b, err := engine.Compute("w", "W", p, payroll.Dataset{Reference: []payroll.Row{ref}, Events: events})
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		recomputed := b.Subtotal.Add(b.Eventos).Add(b.Otros).Round(2)
		if !recomputed.Equal(b.Total) {
			t.Fatalf("case %d: reconciliation broken: %v + %v + %v != %v",
				i, b.Subtotal, b.Eventos, b.Otros, b.Total)
		}
		if !b.Subtotal.Equal(b.Basico.Add(b.Antiguedad).Add(b.Viaticos).Round(2)) {
			t.Fatalf("case %d: subtotal identity broken", i)
		}
	}
}

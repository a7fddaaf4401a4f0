package payroll_test

import (
	"testing"

	"github.com/warp/payroll-engine/payroll"
)

func TestCollectEvents_PeriodFilter(t *testing.T) {
	// GIVEN: events inside and outside the target month
	rows := []payroll.Row{
		{"Fecha": "05/06/2025", "Tipo de evento": "Bono", "Descripción": "extra", "Monto adicional/descuento": "AR$12.000,00"},
		{"Fecha": "05/05/2025", "Tipo de evento": "Bono", "Monto adicional/descuento": "AR$99.999,00"},
		{"Fecha": "05/06/2024", "Tipo de evento": "Bono", "Monto adicional/descuento": "AR$99.999,00"},
	}
	// WHEN: collecting for jun 2025
	events := payroll.CollectEvents(rows, june2025())
	// THEN: only the in-period event survives
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].Amount.Equal(dec("12000")) {
		t.Errorf("Amount = %v", events[0].Amount)
	}
	if events[0].Type != "Bono" || events[0].Description != "extra" {
		t.Errorf("fields not carried verbatim: %+v", events[0])
	}
}

func TestCollectEvents_UnparseableDatesSkipped(t *testing.T) {
	rows := []payroll.Row{
		{"Fecha": "", "Monto adicional/descuento": "AR$1,00"},
		{"Fecha": "pendiente", "Monto adicional/descuento": "AR$1,00"},
		{"Fecha": "10/06/2025", "Monto adicional/descuento": "- AR$500,00"},
	}
	events := payroll.CollectEvents(rows, june2025())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].Amount.Equal(dec("-500")) {
		t.Errorf("signed amount = %v, want -500", events[0].Amount)
	}
}

func TestEventsSum_DuplicatesSummedAsIs(t *testing.T) {
	rows := []payroll.Row{
		{"Fecha": "10/06/2025", "Tipo de evento": "Bono", "Monto adicional/descuento": "AR$1.000,00"},
		{"Fecha": "10/06/2025", "Tipo de evento": "Bono", "Monto adicional/descuento": "AR$1.000,00"},
		{"Fecha": "11/06/2025", "Tipo de evento": "Descuento", "Monto adicional/descuento": "- AR$250,50"},
	}
	events := payroll.CollectEvents(rows, june2025())
	if got := payroll.EventsSum(events); !got.Equal(dec("1749.50")) {
		t.Errorf("EventsSum = %v, want 1749.50", got)
	}
}

func TestEventsSum_Empty(t *testing.T) {
	if !payroll.EventsSum(nil).IsZero() {
		t.Error("empty sum should be zero")
	}
}

/*
events.go - Event collection for a period

PURPOSE:
  The event sheet is an append-only log of dated adjustments (bonuses,
  deductions, advances). Collection filters it down to the rows whose date
  falls inside the target period and parses the signed amounts.

FILTERING RULES:
  - Rows whose "Fecha" cell does not parse are skipped, not errored;
    the sheet accumulates notes and half-filled rows over time
  - Ordering is irrelevant and duplicates are summed as-is
  - The event type is free text, carried verbatim downstream
*/
package payroll

import "github.com/shopspring/decimal"

// CollectEvents filters the raw event rows to those dated inside the period.
func CollectEvents(rows []Row, p Period) []Event {
	var items []Event
	for _, row := range rows {
		date, ok := ParseLocalDate(row["Fecha"])
		if !ok || !p.Contains(date) {
			continue
		}
		items = append(items, Event{
			Date:        date,
			Type:        row["Tipo de evento"],
			Description: row["Descripción"],
			Amount:      ParseARS(row["Monto adicional/descuento"]),
		})
	}
	return items
}

// EventsSum returns the signed sum of the collected events, rounded to 2
// decimal places.
func EventsSum(items []Event) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum.Round(2)
}

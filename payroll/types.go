/*
Package payroll is the core payroll computation engine.

PURPOSE:
  Derives a worker's monthly compensation from a period-keyed reference
  rate table, folds in ad hoc dated events (bonuses, deductions), and
  auto-inserts periodic statutory entitlements (aguinaldo), producing an
  immutable, cross-checkable breakdown per (worker, period).

KEY CONCEPTS IN THIS FILE (types.go):
  - Row: a tabular record as delivered by the external data source
    (column name -> raw string cell)
  - Dataset: the three named record sets a worker's source exposes
  - Event: a dated, signed monetary adjustment inside a period
  - LineItem: a calendar-generated synthetic adjustment
  - Breakdown: the immutable result of one computation

DESIGN PRINCIPLES:
  1. Precision: all money is decimal.Decimal, rounded to 2 places at the
     point of computation, never accumulated as floats
  2. Immutability: a Breakdown is constructed once and never mutated
  3. Leniency: noisy source cells degrade to zero, they never abort a run
     (the validation gate catches the pathological cases)

SEE ALSO:
  - reference.go: reference-row resolution and base-pay derivation
  - compute.go: the aggregator that builds Breakdowns
  - ledgerrow.go: per-role payout row projections
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one record of an external tabular source, keyed by the sheet's
// original column headers. Cells are raw, locale-formatted strings.
type Row map[string]string

// Dataset groups the three record sets the external source exposes for one
// worker. The JSON tags match the tab names of the source spreadsheet, so a
// normalized fixture file unmarshals directly into a Dataset.
type Dataset struct {
	Reference []Row `json:"Referencia Matrix"`
	Events    []Row `json:"Eventos"`
	Payouts   []Row `json:"Pagos"`
}

// Event is an ad hoc adjustment that fell inside the target period.
// Type is free text and is consumed verbatim downstream.
type Event struct {
	Date        time.Time
	Type        string
	Description string
	Amount      decimal.Decimal
}

// LineItem is a synthetic adjustment generated by calendar rule rather than
// recorded by a human (e.g. the automatic aguinaldo estimate).
type LineItem struct {
	Type        string
	Description string
	Amount      decimal.Decimal
}

// =============================================================================
// BREAKDOWN - Immutable result of one (worker, period) computation
// =============================================================================

// Breakdown is the full itemized result of one payroll computation.
//
// INVARIANTS:
//   - Subtotal = Basico + Antiguedad + Viaticos
//   - Otros    = sum of AutoItems
//   - Total    = Subtotal + Eventos + Otros
//   - HorasTrabajadas = DiasHabiles * HorasDia
//
// All monetary fields are already rounded to 2 decimal places. A Breakdown
// is never mutated after construction; it is safe to project into ledger
// rows, receipts, and reports directly.
type Breakdown struct {
	WorkerKey  string
	WorkerName string
	Period     Period

	Basico     decimal.Decimal
	Antiguedad decimal.Decimal
	Viaticos   decimal.Decimal
	Eventos    decimal.Decimal
	Subtotal   decimal.Decimal
	Otros      decimal.Decimal
	Total      decimal.Decimal

	DiasHabiles     decimal.Decimal
	HorasDia        decimal.Decimal
	HorasTrabajadas decimal.Decimal

	EventItems []Event
	AutoItems  []LineItem
}

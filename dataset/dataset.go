/*
Package dataset provides the adapters behind the engine's tabular
collaborator: each worker's source exposes three named record sets
(reference rates, events, payout ledger) as already-parsed row mappings.

SOURCES:
  SheetsSource  Google Sheets gviz CSV export, one fetch per tab
  FixtureSource normalized JSON files on disk (offline runs, tests)
  Static        in-memory datasets keyed by worker (tests)

The engine itself never performs network I/O; it consumes whatever
Dataset a Source hands it.
*/
package dataset

import (
	"context"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// Tab names as they appear in the source spreadsheet.
const (
	TabReference = "Referencia Matrix"
	TabEvents    = "Eventos"
	TabPayouts   = "Pagos"
)

// Source loads one worker's dataset for a period. Implementations that are
// not period-aware (the live sheet holds all periods) ignore the period.
type Source interface {
	Load(ctx context.Context, w roster.Worker, p payroll.Period) (payroll.Dataset, error)
}

// Static is an in-memory Source keyed by worker key.
type Static map[string]payroll.Dataset

func (s Static) Load(_ context.Context, w roster.Worker, _ payroll.Period) (payroll.Dataset, error) {
	return s[w.Key], nil
}

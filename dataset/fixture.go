/*
fixture.go - Normalized JSON fixture source

A fixture file holds one worker's dataset for one period, keyed by the tab
names, at <dir>/<worker>_<YYYY-MM>.json. Used for offline runs and
regression fixtures captured from the live sheet.
*/
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// FixtureSource loads datasets from a directory of normalized JSON files.
type FixtureSource struct {
	Dir string
}

func (f FixtureSource) Load(_ context.Context, w roster.Worker, p payroll.Period) (payroll.Dataset, error) {
	path := filepath.Join(f.Dir, fmt.Sprintf("%s_%s.json", w.Key, p.Key()))
	raw, err := os.ReadFile(path)
	if err != nil {
		return payroll.Dataset{}, fmt.Errorf("read fixture: %w", err)
	}
	var ds payroll.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return payroll.Dataset{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return ds, nil
}

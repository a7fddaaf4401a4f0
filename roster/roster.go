/*
Package roster holds the worker roster configuration.

PURPOSE:
  Maps each worker to the external identifiers the workflow needs: the
  source spreadsheet, the receipts folder, the notification phone number,
  and the role that selects the payout ledger row shape. The roster is
  loaded from JSON and injected at startup; the engine carries no built-in
  worker list.

JSON SCHEMA:
  {
    "workers": [
      {
        "key": "mariza",
        "name": "Mariza",
        "role": "monthly",
        "sheet_id": "1nsz2...",
        "drive_folder_id": "16Os9...",
        "whatsapp": "+54 9 11 ..."
      }
    ]
  }
*/
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/warp/payroll-engine/payroll"
)

var ErrInvalidRoster = errors.New("invalid roster")

// Worker is one roster entry.
type Worker struct {
	Key           string       `json:"key"`
	Name          string       `json:"name"`
	Role          payroll.Role `json:"role"`
	SheetID       string       `json:"sheet_id,omitempty"`
	DriveFolderID string       `json:"drive_folder_id,omitempty"`
	WhatsApp      string       `json:"whatsapp,omitempty"`
}

// Roster is the ordered worker list. Order is preserved: runs process
// workers in roster order.
type Roster struct {
	Workers []Worker `json:"workers"`
}

// Parse decodes and validates a roster document.
func Parse(raw []byte) (Roster, error) {
	var r Roster
	if err := json.Unmarshal(raw, &r); err != nil {
		return Roster{}, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}
	if len(r.Workers) == 0 {
		return Roster{}, fmt.Errorf("%w: no workers configured", ErrInvalidRoster)
	}
	seen := map[string]bool{}
	for i, w := range r.Workers {
		if w.Key == "" || w.Name == "" {
			return Roster{}, fmt.Errorf("%w: worker %d needs key and name", ErrInvalidRoster, i)
		}
		if seen[w.Key] {
			return Roster{}, fmt.Errorf("%w: duplicate worker key %q", ErrInvalidRoster, w.Key)
		}
		seen[w.Key] = true
		switch w.Role {
		case payroll.RoleMonthly, payroll.RoleHourly:
		default:
			return Roster{}, fmt.Errorf("%w: worker %q has unknown role %q", ErrInvalidRoster, w.Key, w.Role)
		}
	}
	return r, nil
}

// Load reads and parses a roster file.
func Load(path string) (Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	return Parse(raw)
}

// Worker looks up a roster entry by key.
func (r Roster) Worker(key string) (Worker, bool) {
	for _, w := range r.Workers {
		if w.Key == key {
			return w, true
		}
	}
	return Worker{}, false
}

/*
Package sqlite provides the SQLite-backed store for the payroll engine.

PURPOSE:
  Three concerns live here:
    1. An offline dataset source: reference rows and events imported from
       a live sheet can be served back to the engine without network I/O
       (implements dataset.Source).
    2. The payout ledger: every built ledger row is appended, never
       updated, mirroring the append-only "Pagos" tab it shadows.
    3. Run history: one record per workflow run, for audit and the API's
       run listing.

STORAGE SHAPE:
  Rows are stored as their JSON-encoded column mappings. The engine treats
  rows as opaque string maps, so a relational decomposition would only add
  schema churn every time the sheet grows a column.

CONCURRENCY:
  Guarded by a sync.RWMutex, same as the rest of the store would be under
  SQLite's single-writer model. WAL mode keeps readers unblocked.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// Store implements dataset.Source and workflow.Store over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Imported reference rows, replaced wholesale per import
	CREATE TABLE IF NOT EXISTS reference_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_key TEXT NOT NULL,
		row_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reference_worker ON reference_rows(worker_key);

	-- Imported event rows, replaced wholesale per import
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_key TEXT NOT NULL,
		row_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_worker ON events(worker_key);

	-- Payout ledger (append-only; corrections go through the sheet)
	CREATE TABLE IF NOT EXISTS payouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_key TEXT NOT NULL,
		period TEXT NOT NULL,
		row_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payouts_worker_period ON payouts(worker_key, period);

	-- Workflow run history
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		period TEXT NOT NULL,
		mode TEXT NOT NULL,
		global_status TEXT NOT NULL,
		report_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_period ON runs(period);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DATASET IMPORT / SERVE
// =============================================================================

// ImportDataset replaces the stored reference and event rows for a worker
// with a fresh snapshot.
func (s *Store) ImportDataset(ctx context.Context, workerKey string, ds payroll.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reference_rows WHERE worker_key = ?`, workerKey); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE worker_key = ?`, workerKey); err != nil {
		return err
	}
	for _, row := range ds.Reference {
		raw, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO reference_rows (worker_key, row_json) VALUES (?, ?)`, workerKey, string(raw)); err != nil {
			return err
		}
	}
	for _, row := range ds.Events {
		raw, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO events (worker_key, row_json) VALUES (?, ?)`, workerKey, string(raw)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) loadRows(ctx context.Context, table, workerKey string) ([]payroll.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT row_json FROM %s WHERE worker_key = ? ORDER BY id`, table), workerKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.Row
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var row payroll.Row
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Load serves a worker's imported dataset; it implements dataset.Source
// for offline runs. The period is ignored, the snapshot holds all periods.
func (s *Store) Load(ctx context.Context, w roster.Worker, _ payroll.Period) (payroll.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ds payroll.Dataset
	var err error
	if ds.Reference, err = s.loadRows(ctx, "reference_rows", w.Key); err != nil {
		return payroll.Dataset{}, err
	}
	if ds.Events, err = s.loadRows(ctx, "events", w.Key); err != nil {
		return payroll.Dataset{}, err
	}
	return ds, nil
}

// =============================================================================
// PAYOUT LEDGER
// =============================================================================

// PayoutRecord is one appended ledger row.
type PayoutRecord struct {
	WorkerKey string
	Period    string
	Row       payroll.Row
	CreatedAt time.Time
}

// AppendPayout appends a built ledger row. Append-only by construction:
// there is no update or delete path.
func (s *Store) AppendPayout(ctx context.Context, workerKey, period string, row payroll.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO payouts (worker_key, period, row_json, created_at) VALUES (?, ?, ?, ?)`,
		workerKey, period, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListPayouts returns the appended rows for a worker, oldest first.
func (s *Store) ListPayouts(ctx context.Context, workerKey string) ([]PayoutRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT worker_key, period, row_json, created_at FROM payouts WHERE worker_key = ? ORDER BY id`, workerKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PayoutRecord
	for rows.Next() {
		var rec PayoutRecord
		var raw, created string
		if err := rows.Scan(&rec.WorkerKey, &rec.Period, &raw, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &rec.Row); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =============================================================================
// RUN HISTORY
// =============================================================================

// RunRecord is one persisted workflow run.
type RunRecord struct {
	ID           string
	Period       string
	Mode         string
	GlobalStatus string
	Report       json.RawMessage
	CreatedAt    time.Time
}

// SaveRun persists a run summary with its full report document.
func (s *Store) SaveRun(ctx context.Context, id, period, mode, globalStatus string, report []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, period, mode, global_status, report_json, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, period, mode, globalStatus, string(report), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListRuns returns run records, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, period, mode, global_status, report_json, created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var report, created string
		if err := rows.Scan(&rec.ID, &rec.Period, &rec.Mode, &rec.GlobalStatus, &report, &created); err != nil {
			return nil, err
		}
		rec.Report = json.RawMessage(report)
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

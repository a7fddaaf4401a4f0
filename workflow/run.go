/*
run.go - Monthly payroll run orchestration

PURPOSE:
  One Run ties the whole pipeline together for a period:

    date gate -> regulatory check -> per-worker computation -> ledger row
    projection -> validation gate -> notification payload

FAILURE ISOLATION:
  A worker whose reference row cannot be resolved is recorded as a failure
  entry; the remaining workers are still computed, validated and reported.
  Only infrastructure errors (checkpoint I/O) abort the run.

SIDE EFFECTS:
  A run is read-mostly. When a Store is configured, the built ledger rows
  and the run summary are persisted; nothing external is ever sent.
  Notification deliveries are always prepared-not-sent.
*/
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/warp/payroll-engine/dataset"
	"github.com/warp/payroll-engine/normative"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
	"github.com/warp/payroll-engine/validate"
)

// Store receives the durable artifacts of a run. Implemented by
// store/sqlite; nil disables persistence.
type Store interface {
	AppendPayout(ctx context.Context, workerKey, period string, row payroll.Row) error
	SaveRun(ctx context.Context, id, period, mode, globalStatus string, report []byte) error
}

// RunOptions parameterize one run.
type RunOptions struct {
	Period        payroll.Period
	Mode          validate.Mode
	IgnoreDayGate bool
	StateDir      string

	// Now overrides the gate's clock; zero means time.Now().
	Now time.Time
}

// Failure records one worker whose computation could not complete.
type Failure struct {
	WorkerKey string `json:"worker_key"`
	Error     string `json:"error"`
}

// RunReport is the full outcome of one run.
type RunReport struct {
	RunID  string     `json:"run_id"`
	Period string     `json:"period"`
	Mode   string     `json:"mode"`
	Gate   GateResult `json:"gate"`

	Rules      normative.Report       `json:"rules_check"`
	Breakdowns []payroll.Breakdown    `json:"-"`
	LedgerRows map[string]payroll.Row `json:"ledger_rows,omitempty"`
	Failures   []Failure              `json:"failures,omitempty"`
	Validation validate.Result        `json:"validation"`
	WhatsApp   WhatsAppPayload        `json:"whatsapp"`

	ActionsTaken   []string `json:"actions_taken"`
	ActionsBlocked []string `json:"actions_blocked"`
}

// Runner executes monthly payroll runs.
type Runner struct {
	Roster  roster.Roster
	Source  dataset.Source
	Engine  *payroll.Engine
	Monitor *normative.Monitor
	Store   Store // optional
}

// NewRunner wires a runner with the default engine and monitor.
func NewRunner(r roster.Roster, src dataset.Source) *Runner {
	return &Runner{
		Roster:  r,
		Source:  src,
		Engine:  payroll.NewEngine(),
		Monitor: normative.NewMonitor(),
	}
}

// Run executes the monthly workflow for one period.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (RunReport, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	report := RunReport{
		RunID:  uuid.NewString(),
		Period: opts.Period.Key(),
		Mode:   string(opts.Mode),
		Gate:   Gate(opts.Period, now, opts.IgnoreDayGate),
	}

	if !report.Gate.ShouldRun {
		report.ActionsBlocked = append(report.ActionsBlocked, "date_gate")
		return report, nil
	}
	report.ActionsTaken = append(report.ActionsTaken, "period="+opts.Period.Key())

	rules, err := r.Monitor.Check(ctx, opts.StateDir)
	if err != nil {
		return RunReport{}, fmt.Errorf("regulatory check: %w", err)
	}
	report.Rules = rules
	if rules.Changed() {
		report.ActionsBlocked = append(report.ActionsBlocked, "await_user_approval_for_rules")
	}

	report.LedgerRows = make(map[string]payroll.Row)
	for _, w := range r.Roster.Workers {
		ds, err := r.Source.Load(ctx, w, opts.Period)
		if err != nil {
			report.Failures = append(report.Failures, Failure{WorkerKey: w.Key, Error: err.Error()})
			log.Printf("payroll run %s: worker %s: dataset load failed: %v", report.RunID, w.Key, err)
			continue
		}
		b, err := r.Engine.Compute(w.Key, w.Name, opts.Period, ds)
		if err != nil {
			report.Failures = append(report.Failures, Failure{WorkerKey: w.Key, Error: err.Error()})
			log.Printf("payroll run %s: worker %s: %v", report.RunID, w.Key, err)
			continue
		}
		report.Breakdowns = append(report.Breakdowns, b)

		row, err := payroll.BuildLedgerRow(b, w.Role)
		if err != nil {
			report.Failures = append(report.Failures, Failure{WorkerKey: w.Key, Error: err.Error()})
			continue
		}
		report.LedgerRows[w.Key] = row
		if r.Store != nil {
			if err := r.Store.AppendPayout(ctx, w.Key, opts.Period.Key(), row); err != nil {
				return RunReport{}, fmt.Errorf("persist payout for %s: %w", w.Key, err)
			}
		}
	}

	report.Validation = validate.Evaluate(report.Breakdowns, rules, opts.Mode)
	report.WhatsApp = BuildWhatsAppPayload(r.Roster, report.Breakdowns)

	if r.Store != nil {
		raw, err := json.Marshal(report)
		if err != nil {
			return RunReport{}, err
		}
		if err := r.Store.SaveRun(ctx, report.RunID, report.Period, report.Mode, report.Validation.GlobalStatus, raw); err != nil {
			return RunReport{}, fmt.Errorf("persist run: %w", err)
		}
	}
	return report, nil
}

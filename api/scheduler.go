/*
scheduler.go - Automated monthly payroll scheduler

PURPOSE:
  Periodically triggers a payroll run for the current period. The run's
  own date gate decides whether anything actually happens, so the check
  interval only bounds how late after payday the run can start.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Always targets the current calendar month
  - Never bypasses the date gate: off-payday checks are recorded and
    skipped by the gate itself

CONFIGURATION:
  - CheckInterval: How often to check (default: 6 hours)
  - Mode: Validation mode for scheduled runs (default: simulation)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(runner, stateDir)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - workflow/run.go: Run orchestration
  - workflow/gate.go: The date gate that makes repeated checks safe
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/validate"
	"github.com/warp/payroll-engine/workflow"
)

// PayrollScheduler triggers date-gated runs for the current period.
type PayrollScheduler struct {
	Runner        *workflow.Runner
	StateDir      string
	CheckInterval time.Duration
	Mode          validate.Mode
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(runner *workflow.Runner, stateDir string) *PayrollScheduler {
	return &PayrollScheduler{
		Runner:        runner,
		StateDir:      stateDir,
		CheckInterval: 6 * time.Hour,
		Mode:          validate.ModeSimulation,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.checkAndRun()

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndRun()
		case <-ps.stop:
			return
		}
	}
}

func (ps *PayrollScheduler) checkAndRun() {
	ctx := context.Background()
	now := time.Now().UTC()
	period := payroll.CurrentPeriod(now)

	report, err := ps.Runner.Run(ctx, workflow.RunOptions{
		Period:   period,
		Mode:     ps.Mode,
		StateDir: ps.StateDir,
		Now:      now,
	})
	if err != nil {
		log.Printf("[Scheduler] Run for %s failed: %v", period.Key(), err)
		return
	}

	if !report.Gate.ShouldRun {
		log.Printf("[Scheduler] %s: %s", period.Key(), report.Gate.Message)
		return
	}

	log.Printf("[Scheduler] Run %s for %s completed: status=%s workers=%d failures=%d",
		report.RunID, period.Key(), report.Validation.GlobalStatus,
		len(report.Breakdowns), len(report.Failures))
}

// RunNow triggers an immediate check (for testing/admin).
func (ps *PayrollScheduler) RunNow() {
	ps.checkAndRun()
}

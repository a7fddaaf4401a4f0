/*
gate.go - Date gate for scheduled runs

Payroll for the current month is only due on the 1st. A run targeting a
past (or future) period is always allowed: those are catch-up or
preparation runs requested explicitly. The gate can also be bypassed
outright for manual runs.
*/
package workflow

import (
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// GateResult reports whether a run should proceed.
type GateResult struct {
	ShouldRun bool   `json:"should_run"`
	Message   string `json:"message"`
}

// Gate evaluates the date gate for a target period.
func Gate(p payroll.Period, today time.Time, ignore bool) GateResult {
	if ignore {
		return GateResult{ShouldRun: true, Message: "ignore_day_gate=true"}
	}
	if today.Day() != 1 && p.Contains(today) {
		return GateResult{ShouldRun: false, Message: "No payroll due this run"}
	}
	return GateResult{ShouldRun: true, Message: "date gate passed"}
}

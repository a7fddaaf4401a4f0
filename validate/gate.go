/*
Package validate is the approval gate run over computed payroll breakdowns
before anything is sent or recorded.

CHECKS PER WORKER:
  insumos                   base pay is positive (inputs were sane)
  cuadre                    subtotal + eventos + otros reproduces the total
                            exactly at 2-decimal precision
  coincidencia_arca_vs_pagos policy placeholder: passes in simulation mode,
                            requires manual confirmation in live mode
  evidencia                 policy placeholder, same mode behavior

Plus one global "normativa" entry fed by the regulatory monitor: a
possible rules change downgrades the run regardless of the arithmetic.

A single failing check flips the worker's summary status and the global
status to REVISAR. The gate is a pure derivation over already-computed
values; it performs no I/O.
*/
package validate

import (
	"github.com/warp/payroll-engine/normative"
	"github.com/warp/payroll-engine/payroll"
)

// Mode selects how the placeholder checks behave.
type Mode string

const (
	// ModeSimulation is a dry run: nothing external is touched, the manual
	// confirmation checks pass automatically.
	ModeSimulation Mode = "simulation"

	// ModeLive is a real run: the manual confirmation checks require a
	// human and therefore report REVISAR.
	ModeLive Mode = "live"
)

const (
	StatusOK     = "OK"
	StatusReview = "REVISAR"
)

// Check names, as they appear in the detailed report.
const (
	CheckInputs    = "insumos"
	CheckReconcile = "cuadre"
	CheckLedger    = "coincidencia_arca_vs_pagos"
	CheckEvidence  = "evidencia"
	CheckRules     = "normativa"
)

// Result is the gate's verdict: a global pass/fail, a short per-name
// summary, and the per-worker check detail.
type Result struct {
	GlobalStatus string                       `json:"global_status"`
	Short        map[string]string            `json:"validation_short"`
	Detail       map[string]map[string]string `json:"validation_detail"`
}

// OK reports whether every check passed.
func (r Result) OK() bool { return r.GlobalStatus == StatusOK }

func boolStatus(ok bool) string {
	if ok {
		return StatusOK
	}
	return StatusReview
}

// Evaluate runs the gate over all computed breakdowns.
func Evaluate(breakdowns []payroll.Breakdown, rules normative.Report, mode Mode) Result {
	result := Result{
		GlobalStatus: StatusOK,
		Short:        make(map[string]string),
		Detail:       make(map[string]map[string]string),
	}

	rulesState := boolStatus(!rules.Changed())
	result.Short[CheckRules] = rulesState

	for _, b := range breakdowns {
		recomputed := b.Subtotal.Add(b.Eventos).Add(b.Otros).Round(2)
		checks := map[string]string{
			CheckInputs:    boolStatus(b.Basico.IsPositive()),
			CheckReconcile: boolStatus(recomputed.Equal(b.Total.Round(2))),
			CheckLedger:    boolStatus(mode == ModeSimulation),
			CheckEvidence:  boolStatus(mode == ModeSimulation),
		}

		workerOK := true
		for _, state := range checks {
			if state != StatusOK {
				workerOK = false
				result.GlobalStatus = StatusReview
			}
		}
		result.Detail[b.WorkerKey] = checks
		result.Short[b.WorkerName] = boolStatus(workerOK)
	}

	if rulesState != StatusOK {
		result.GlobalStatus = StatusReview
	}
	return result
}

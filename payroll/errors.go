/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place. The error policy is deliberately
  narrow: configuration problems (missing reference row, bad period key,
  unknown role) are real errors; data-quality problems are not errors at
  all, they degrade to zero values and are caught, if at all, by the
  validation gate.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, payroll.ErrNoReferenceRow) {
        // this worker has no rate row for the period; other workers
        // must still be computed
    }
*/
package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrNoReferenceRow is returned when the reference table has no row for
	// the requested period. This is a configuration error, not a default.
	ErrNoReferenceRow = errors.New("no reference row for period")

	// ErrInvalidPeriod is returned for period keys not of the form YYYY-MM.
	ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM")

	// ErrUnknownRole is returned when no ledger row template is registered
	// for a worker's role.
	ErrUnknownRole = errors.New("no ledger row template for role")
)

// NoReferenceRowError reports which worker and period label failed to
// resolve. It unwraps to ErrNoReferenceRow.
type NoReferenceRowError struct {
	WorkerKey string
	Label     string
}

func (e *NoReferenceRowError) Error() string {
	return fmt.Sprintf("no reference row for period %q (worker %s)", e.Label, e.WorkerKey)
}

func (e *NoReferenceRowError) Unwrap() error {
	return ErrNoReferenceRow
}

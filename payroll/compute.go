/*
compute.go - Payroll aggregation

PURPOSE:
  Composes the reference resolver, event collector and entitlement
  generator into one Breakdown per (worker, period).

ARITHMETIC IDENTITY:
  subtotal = basico + antiguedad + viaticos
  otros    = sum(entitlement items)
  total    = subtotal + eventos + otros

  Every intermediate is rounded to 2 decimals before the next summation,
  so the identity holds exactly at 2-decimal precision and the validation
  gate can recompute it byte-for-byte.

FAILURE ISOLATION:
  A missing reference row fails this worker's computation only; the caller
  is expected to keep computing the remaining workers.
*/
package payroll

// Engine computes payroll breakdowns. The zero value is not usable; use
// NewEngine, or construct with an explicit entitlement policy.
type Engine struct {
	Entitlements EntitlementPolicy
}

// NewEngine returns an engine with the default aguinaldo policy.
func NewEngine() *Engine {
	return &Engine{Entitlements: DefaultEntitlementPolicy()}
}

// Compute derives the breakdown for one worker and period from the worker's
// dataset. Returns a *NoReferenceRowError when the reference table has no
// row for the period.
func (e *Engine) Compute(workerKey, workerName string, p Period, ds Dataset) (Breakdown, error) {
	refRow, err := FindReferenceRow(ds.Reference, p)
	if err != nil {
		if nre, ok := err.(*NoReferenceRowError); ok {
			nre.WorkerKey = workerKey
		}
		return Breakdown{}, err
	}

	ref := ResolveReference(refRow)
	subtotal := ref.Basico.Add(ref.Antiguedad).Add(ref.Viaticos).Round(2)

	events := CollectEvents(ds.Events, p)
	eventos := EventsSum(events)

	autoItems := e.Entitlements.Generate(p, subtotal, events)
	otros := ItemsSum(autoItems)

	total := subtotal.Add(eventos).Add(otros).Round(2)

	return Breakdown{
		WorkerKey:       workerKey,
		WorkerName:      workerName,
		Period:          p,
		Basico:          ref.Basico,
		Antiguedad:      ref.Antiguedad,
		Viaticos:        ref.Viaticos,
		Eventos:         eventos,
		Subtotal:        subtotal,
		Otros:           otros,
		Total:           total,
		DiasHabiles:     ref.DiasHabiles,
		HorasDia:        ref.HorasDia,
		HorasTrabajadas: ref.DiasHabiles.Mul(ref.HorasDia).Round(2),
		EventItems:      events,
		AutoItems:       autoItems,
	}, nil
}

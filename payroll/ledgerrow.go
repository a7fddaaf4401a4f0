/*
ledgerrow.go - Payout ledger row projection

PURPOSE:
  Projects a Breakdown into the row shape the external payout ledger
  ("Pagos") expects. Two shapes exist today, keyed by worker role:

    monthly: fixed-salary workers; events get their own column
    hourly:  hours-tracked workers; the ledger carries day/hour counts and
             folds events into the "Otros" column

  Shapes are registered templates, not inline conditionals, so adding a
  role is a registry entry rather than another branch.
*/
package payroll

import "fmt"

// Role selects the ledger row template for a worker.
type Role string

const (
	RoleMonthly Role = "monthly"
	RoleHourly  Role = "hourly"
)

// RowTemplate projects a breakdown into one ledger row.
type RowTemplate interface {
	BuildRow(b Breakdown) Row
}

var rowTemplates = map[Role]RowTemplate{
	RoleMonthly: MonthlyTemplate{},
	RoleHourly:  HourlyTemplate{},
}

// BuildLedgerRow selects the template registered for the role and builds the
// payout row. Unknown roles are a configuration error.
func BuildLedgerRow(b Breakdown, role Role) (Row, error) {
	tpl, ok := rowTemplates[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return tpl.BuildRow(b), nil
}

// ReceiptFileName is the payment receipt attachment name recorded in the
// ledger row, e.g. "ReciboPago_202506.pdf".
func ReceiptFileName(p Period) string {
	return fmt.Sprintf("ReciboPago_%04d%02d.pdf", p.Year, int(p.Month))
}

// payoutDate is the ledger's day-first date for the last day of the period,
// without zero padding ("30/6/2025").
func payoutDate(p Period) string {
	end := p.End()
	return fmt.Sprintf("%d/%d/%d", end.Day(), int(end.Month()), end.Year())
}

// MonthlyTemplate is the fixed-salary ledger shape.
type MonthlyTemplate struct{}

func (MonthlyTemplate) BuildRow(b Breakdown) Row {
	p := b.Period
	return Row{
		"Fecha":      payoutDate(p),
		"Mes":        fmt.Sprintf("%d", int(p.Month)),
		"Año":        fmt.Sprintf("%d", p.Year),
		"Básico":     FormatARS(b.Basico),
		"Antiguedad": FormatARS(b.Antiguedad),
		"Viáticos":   FormatARS(b.Viaticos),
		"Eventos":    FormatARS(b.Eventos),
		"Subtotal":   FormatARS(b.Subtotal),
		"Otros":      FormatARS(b.Otros),
		"Total":      FormatARS(b.Total),
		"Notas":      "",
		"Recibo":     ReceiptFileName(p),
	}
}

// HourlyTemplate is the hours-tracked ledger shape. Absences are not modeled
// by the engine; the column is reported as zero and corrected by hand.
type HourlyTemplate struct{}

func (HourlyTemplate) BuildRow(b Breakdown) Row {
	p := b.Period
	return Row{
		"Fecha":                  payoutDate(p),
		"Mes":                    fmt.Sprintf("%d", int(p.Month)),
		"Año":                    fmt.Sprintf("%d", p.Year),
		"Días hábiles":           b.DiasHabiles.String(),
		"Ausencias":              "0",
		"Total días trabajados":  b.DiasHabiles.String(),
		"Horas trabajadas":       b.HorasTrabajadas.String(),
		"Básico":                 FormatARS(b.Basico),
		"Antiguedad":             FormatARS(b.Antiguedad),
		"Viáticos":               FormatARS(b.Viaticos),
		"Subtotal":               FormatARS(b.Subtotal),
		"Otros":                  FormatARS(b.Eventos.Add(b.Otros)),
		"Total":                  FormatARS(b.Total),
		"Notas":                  "",
		"Recibo":                 ReceiptFileName(p),
	}
}

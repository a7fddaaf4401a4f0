/*
reference.go - Reference-row resolution and base-pay derivation

PURPOSE:
  The reference sheet holds one rate row per period. Depending on the
  worker's arrangement, a row carries either a fixed monthly salary or an
  hourly rate plus quantities (hours/day, business days or days-per-week x
  weeks-per-month). This file finds the row for a period and derives base
  pay, seniority bonus and per-diem total from whichever columns are
  populated.

DERIVATION ORDER (base pay):
  1. Explicit "Salario básico" when positive
  2. business days x hours/day x hourly rate
  3. days/week x weeks/month x hours/day x hourly rate

  The per-diem total follows the same explicit-first, then business-days,
  then weekly-fallback order.

LENIENCY:
  Missing or zero rate columns contribute zero, silently. The validation
  gate's "insumos" check is the backstop for a base that ends up zero.
*/
package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ReferenceResult holds the values derived from one reference row, each
// already rounded to 2 decimal places.
type ReferenceResult struct {
	Basico      decimal.Decimal
	Antiguedad  decimal.Decimal
	Viaticos    decimal.Decimal
	DiasHabiles decimal.Decimal
	HorasDia    decimal.Decimal
}

// FindReferenceRow locates the unique row whose "Período" cell matches the
// period label, comparing case and whitespace insensitively. Zero matches is
// an error. On ambiguity the first match wins; the sheet is expected to hold
// one row per period and the engine replicates the source system's
// first-match behavior rather than guessing.
func FindReferenceRow(rows []Row, p Period) (Row, error) {
	want := strings.ToLower(p.Label())
	for _, row := range rows {
		if strings.ToLower(strings.TrimSpace(row["Período"])) == want {
			return row, nil
		}
	}
	return nil, &NoReferenceRowError{Label: p.Label()}
}

// cell returns the first populated candidate column as a number. Cells that
// carry a currency marker parse as monetary amounts (2-decimal), all others
// as plain locale numbers.
func cell(row Row, candidates ...string) decimal.Decimal {
	for _, key := range candidates {
		v, ok := row[key]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if strings.Contains(v, "$") {
			return ParseARS(v)
		}
		return ParseNumber(v)
	}
	return decimal.Zero
}

var oneHundred = decimal.NewFromInt(100)

// ResolveReference derives base pay, seniority bonus and per-diem total from
// one reference row.
func ResolveReference(row Row) ReferenceResult {
	basico := cell(row, "Salario básico")
	horasDia := cell(row, "Horas/día", "Horas diarias")
	basicoHora := cell(row, "Básico/hora", "Básico hora")
	diasHabiles := cell(row, "Días hábiles")
	diasSemana := cell(row, "Días por semana")
	semanasMes := cell(row, "Semanas al mes")

	if !basico.IsPositive() && horasDia.IsPositive() && basicoHora.IsPositive() {
		switch {
		case diasHabiles.IsPositive():
			basico = diasHabiles.Mul(horasDia).Mul(basicoHora)
		case diasSemana.IsPositive() && semanasMes.IsPositive():
			basico = diasSemana.Mul(semanasMes).Mul(horasDia).Mul(basicoHora)
		}
	}

	antiguedad := decimal.Zero
	if pct := cell(row, "Antiguedad"); pct.IsPositive() {
		antiguedad = basico.Mul(pct.Div(oneHundred))
	}

	viaticos := cell(row, "Viáticos totales")
	if !viaticos.IsPositive() {
		if porDia := cell(row, "Viáticos/día", "Viáticos por día"); porDia.IsPositive() {
			switch {
			case diasHabiles.IsPositive():
				viaticos = diasHabiles.Mul(porDia)
			case diasSemana.IsPositive() && semanasMes.IsPositive():
				viaticos = diasSemana.Mul(semanasMes).Mul(porDia)
			}
		}
	}

	// Workers without an explicit business-day count derive it from the
	// weekly arrangement; it feeds the hours-tracked ledger row shape.
	derivedDias := diasHabiles
	if !derivedDias.IsPositive() {
		derivedDias = diasSemana.Mul(semanasMes)
	}

	return ReferenceResult{
		Basico:      basico.Round(2),
		Antiguedad:  antiguedad.Round(2),
		Viaticos:    viaticos.Round(2),
		DiasHabiles: derivedDias.Round(2),
		HorasDia:    horasDia.Round(2),
	}
}

/*
Package receipt renders the monthly payment receipt PDF referenced by the
payout ledger ("Recibo" column) and attached to the worker's notification.

The layout is intentionally plain: header, worker and period, the itemized
amounts in canonical AR$ formatting, then the event and automatic lines.
Automatic entitlement estimates carry their review note verbatim so the
receipt itself flags them.
*/
package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// FileName returns the receipt attachment name for a period,
// e.g. "ReciboPago_202506.pdf".
func FileName(p payroll.Period) string {
	return payroll.ReceiptFileName(p)
}

// Render produces the receipt PDF for one breakdown.
func Render(w roster.Worker, b payroll.Breakdown) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Recibo de pago"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Trabajadora: %s", w.Name)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Período: %s (%s)", b.Period.Label(), b.Period.Key())))
	pdf.Ln(10)

	line := func(label string, amount string) {
		pdf.Cell(110, 7, tr(label))
		pdf.CellFormat(60, 7, tr(amount), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	line("Básico", payroll.FormatARS(b.Basico))
	line("Antigüedad", payroll.FormatARS(b.Antiguedad))
	line("Viáticos", payroll.FormatARS(b.Viaticos))
	line("Subtotal", payroll.FormatARS(b.Subtotal))

	if len(b.EventItems) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr("Eventos del período"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, e := range b.EventItems {
			label := e.Type
			if e.Description != "" {
				label += " - " + e.Description
			}
			line(fmt.Sprintf("%s (%s)", label, e.Date.Format("02/01/2006")), payroll.FormatARS(e.Amount))
		}
	}

	if len(b.AutoItems) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr("Conceptos automáticos"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range b.AutoItems {
			line(item.Type, payroll.FormatARS(item.Amount))
			pdf.SetFont("Helvetica", "I", 9)
			pdf.Cell(0, 5, tr(item.Description))
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "", 11)
		}
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 13)
	line("TOTAL", payroll.FormatARS(b.Total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

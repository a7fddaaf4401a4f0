/*
whatsapp.go - Notification payload preparation

Deliveries are prepared, never sent: the payload carries the phone number
and the receipt attachment name for each computed worker, and sending
stays disabled. Actually dispatching messages is a human decision outside
this system.
*/
package workflow

import (
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// Delivery is one prepared notification.
type Delivery struct {
	Person     string `json:"person"`
	Phone      string `json:"phone"`
	Text       string `json:"text"`
	Attachment string `json:"attachment"`
	Status     string `json:"status"`
}

// WhatsAppPayload is the prepared, not-sent notification set for a run.
type WhatsAppPayload struct {
	Deliveries  []Delivery `json:"deliveries"`
	SendEnabled bool       `json:"send_enabled"`
}

// BuildWhatsAppPayload prepares one delivery per computed breakdown.
func BuildWhatsAppPayload(r roster.Roster, breakdowns []payroll.Breakdown) WhatsAppPayload {
	payload := WhatsAppPayload{Deliveries: []Delivery{}}
	for _, b := range breakdowns {
		w, ok := r.Worker(b.WorkerKey)
		if !ok {
			continue
		}
		payload.Deliveries = append(payload.Deliveries, Delivery{
			Person:     b.WorkerName,
			Phone:      w.WhatsApp,
			Attachment: payroll.ReceiptFileName(b.Period),
			Status:     "prepared_not_sent",
		})
	}
	return payload
}

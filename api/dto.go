/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal decimal-based domain model from the external API contract:
  clients get plain floats plus a pre-formatted locale string for display,
  and field renames never leak into the engine.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: Breakdown, the internal result these project
*/
package api

import (
	"encoding/json"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RunRequest triggers a monthly payroll run.
type RunRequest struct {
	Period        string `json:"period"`
	Mode          string `json:"mode"`
	IgnoreDayGate bool   `json:"ignore_day_gate"`
}

// ComputeRequest computes a single worker's breakdown. When Dataset is
// present it replaces the configured source, so a client can ask "what
// would this sheet produce" without importing anything.
type ComputeRequest struct {
	WorkerKey string           `json:"worker_key"`
	Period    string           `json:"period"`
	Dataset   *payroll.Dataset `json:"dataset,omitempty"`
}

// ValidateRequest runs the validation gate over the whole roster without
// persisting anything.
type ValidateRequest struct {
	Period string `json:"period"`
	Mode   string `json:"mode"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ItemDTO is one event or automatic line item.
type ItemDTO struct {
	Date        string  `json:"date,omitempty"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

// BreakdownDTO is the API projection of a computed breakdown.
type BreakdownDTO struct {
	WorkerKey  string `json:"worker_key"`
	WorkerName string `json:"worker_name"`
	Period     string `json:"period"`

	Basico     float64 `json:"basico"`
	Antiguedad float64 `json:"antiguedad"`
	Viaticos   float64 `json:"viaticos"`
	Eventos    float64 `json:"eventos"`
	Subtotal   float64 `json:"subtotal"`
	Otros      float64 `json:"otros"`
	Total      float64 `json:"total"`

	DiasHabiles     float64 `json:"dias_habiles"`
	HorasDia        float64 `json:"horas_dia"`
	HorasTrabajadas float64 `json:"horas_trabajadas"`

	Events    []ItemDTO `json:"events,omitempty"`
	AutoItems []ItemDTO `json:"auto_items,omitempty"`

	// TotalFormatted is the locale rendering ("AR$ style") of Total, the
	// same text that lands in the ledger row.
	TotalFormatted string `json:"total_formatted"`
}

func toBreakdownDTO(b payroll.Breakdown) BreakdownDTO {
	dto := BreakdownDTO{
		WorkerKey:  b.WorkerKey,
		WorkerName: b.WorkerName,
		Period:     b.Period.Key(),

		Basico:     b.Basico.InexactFloat64(),
		Antiguedad: b.Antiguedad.InexactFloat64(),
		Viaticos:   b.Viaticos.InexactFloat64(),
		Eventos:    b.Eventos.InexactFloat64(),
		Subtotal:   b.Subtotal.InexactFloat64(),
		Otros:      b.Otros.InexactFloat64(),
		Total:      b.Total.InexactFloat64(),

		DiasHabiles:     b.DiasHabiles.InexactFloat64(),
		HorasDia:        b.HorasDia.InexactFloat64(),
		HorasTrabajadas: b.HorasTrabajadas.InexactFloat64(),

		TotalFormatted: payroll.FormatARS(b.Total),
	}
	for _, e := range b.EventItems {
		dto.Events = append(dto.Events, ItemDTO{
			Date:        e.Date.Format("2006-01-02"),
			Type:        e.Type,
			Description: e.Description,
			Amount:      e.Amount.InexactFloat64(),
		})
	}
	for _, it := range b.AutoItems {
		dto.AutoItems = append(dto.AutoItems, ItemDTO{
			Type:        it.Type,
			Description: it.Description,
			Amount:      it.Amount.InexactFloat64(),
		})
	}
	return dto
}

// WorkerDTO is one roster entry.
type WorkerDTO struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

func toWorkerDTO(w roster.Worker) WorkerDTO {
	return WorkerDTO{
		Key:      w.Key,
		Name:     w.Name,
		Role:     string(w.Role),
		WhatsApp: w.WhatsApp,
	}
}

// RunDTO is one persisted run in the history listing. Report carries the
// full run document as stored.
type RunDTO struct {
	ID           string          `json:"id"`
	Period       string          `json:"period"`
	Mode         string          `json:"mode"`
	GlobalStatus string          `json:"global_status"`
	Report       json.RawMessage `json:"report"`
	CreatedAt    string          `json:"created_at"`
}

// ImportResultDTO summarizes an imported dataset snapshot.
type ImportResultDTO struct {
	WorkerKey     string `json:"worker_key"`
	ReferenceRows int    `json:"reference_rows"`
	EventRows     int    `json:"event_rows"`
}

// PayoutDTO is one appended payout ledger row.
type PayoutDTO struct {
	WorkerKey string      `json:"worker_key"`
	Period    string      `json:"period"`
	Row       payroll.Row `json:"row"`
	CreatedAt string      `json:"created_at"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

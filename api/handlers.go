/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Runs:
    POST   /api/runs                  Execute a monthly payroll run
    GET    /api/runs                  Run history (persisted reports)

  Payroll:
    POST   /api/payroll/compute      Compute one worker's breakdown
    GET    /api/payroll/receipt      Receipt PDF for one worker+period
    POST   /api/validate             Validation gate over the roster

  Datasets:
    POST   /api/datasets/{worker}    Import a dataset snapshot into the store
    GET    /api/payouts              Appended payout ledger rows

  Supporting:
    GET    /api/rules/check          Regulatory source check
    GET    /api/fx                   Pacted FX rate
    GET    /api/workers              Roster listing

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body, period or mode
  - 404: Unknown worker
  - 422: Worker has no reference row for the period
  - 502: All external FX sources failed
  - 503: Store-backed endpoint hit with no store configured
  - 500: Internal errors (checkpoint I/O, store)

  A run that completes but needs review is NOT an HTTP error: it returns
  200 with global_status REVISAR in the body.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - workflow/run.go: The orchestration the run endpoint delegates to
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payroll-engine/dataset"
	"github.com/warp/payroll-engine/fx"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/receipt"
	"github.com/warp/payroll-engine/roster"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/validate"
	"github.com/warp/payroll-engine/workflow"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster roster.Roster
	Source dataset.Source
	Engine *payroll.Engine
	Runner *workflow.Runner
	FX     *fx.Fetcher

	// Store backs the run history listing; nil disables it.
	Store *sqlite.Store

	// StateDir holds the regulatory checkpoint.
	StateDir string
}

// NewHandler creates a handler with default engine, runner and fetcher.
func NewHandler(rst roster.Roster, src dataset.Source, stateDir string) *Handler {
	return &Handler{
		Roster:   rst,
		Source:   src,
		Engine:   payroll.NewEngine(),
		Runner:   workflow.NewRunner(rst, src),
		FX:       fx.NewFetcher(),
		StateDir: stateDir,
	}
}

func parseMode(s string) (validate.Mode, error) {
	switch validate.Mode(s) {
	case "":
		return validate.ModeSimulation, nil
	case validate.ModeSimulation, validate.ModeLive:
		return validate.Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ExecuteRun runs the monthly workflow for a period.
// POST /api/runs
func (h *Handler) ExecuteRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode", err)
		return
	}

	report, err := h.Runner.Run(r.Context(), workflow.RunOptions{
		Period:        period,
		Mode:          mode,
		IgnoreDayGate: req.IgnoreDayGate,
		StateDir:      h.StateDir,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Run failed", err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ListRuns returns persisted run history, newest first.
// GET /api/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []RunDTO{}})
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, RunDTO{
			ID:           run.ID,
			Period:       run.Period,
			Mode:         run.Mode,
			GlobalStatus: run.GlobalStatus,
			Report:       run.Report,
			CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": dtos})
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ComputeBreakdown computes one worker's breakdown for a period.
// POST /api/payroll/compute
func (h *Handler) ComputeBreakdown(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}

	worker, known := h.Roster.Worker(req.WorkerKey)
	if !known && req.Dataset == nil {
		writeError(w, http.StatusNotFound, "Unknown worker", nil)
		return
	}
	name := worker.Name
	if name == "" {
		name = req.WorkerKey
	}

	var ds payroll.Dataset
	if req.Dataset != nil {
		ds = *req.Dataset
	} else {
		ds, err = h.Source.Load(r.Context(), worker, period)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load dataset", err)
			return
		}
	}

	b, err := h.Engine.Compute(req.WorkerKey, name, period, ds)
	if err != nil {
		if errors.Is(err, payroll.ErrNoReferenceRow) {
			writeError(w, http.StatusUnprocessableEntity, "No reference row for period", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Computation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toBreakdownDTO(b))
}

// GetReceipt computes one worker's breakdown and returns the rendered
// receipt PDF.
// GET /api/payroll/receipt?worker=mariza&period=2025-06
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	period, err := payroll.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}

	worker, known := h.Roster.Worker(r.URL.Query().Get("worker"))
	if !known {
		writeError(w, http.StatusNotFound, "Unknown worker", nil)
		return
	}

	ds, err := h.Source.Load(r.Context(), worker, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dataset", err)
		return
	}
	b, err := h.Engine.Compute(worker.Key, worker.Name, period, ds)
	if err != nil {
		if errors.Is(err, payroll.ErrNoReferenceRow) {
			writeError(w, http.StatusUnprocessableEntity, "No reference row for period", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Computation failed", err)
		return
	}

	pdf, err := receipt.Render(worker, b)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render receipt", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.FileName(period)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ValidateRoster computes every worker and runs the validation gate,
// persisting nothing.
// POST /api/validate
func (h *Handler) ValidateRoster(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode", err)
		return
	}

	ctx := r.Context()
	rules, err := h.Runner.Monitor.Check(ctx, h.StateDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Regulatory check failed", err)
		return
	}

	var breakdowns []payroll.Breakdown
	var failures []workflow.Failure
	for _, worker := range h.Roster.Workers {
		ds, err := h.Source.Load(ctx, worker, period)
		if err != nil {
			failures = append(failures, workflow.Failure{WorkerKey: worker.Key, Error: err.Error()})
			continue
		}
		b, err := h.Engine.Compute(worker.Key, worker.Name, period, ds)
		if err != nil {
			failures = append(failures, workflow.Failure{WorkerKey: worker.Key, Error: err.Error()})
			continue
		}
		breakdowns = append(breakdowns, b)
	}

	result := validate.Evaluate(breakdowns, rules, mode)

	writeJSON(w, http.StatusOK, map[string]any{
		"period":            period.Key(),
		"mode":              string(mode),
		"global_status":     result.GlobalStatus,
		"validation_short":  result.Short,
		"validation_detail": result.Detail,
		"failures":          failures,
	})
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// ImportDataset stores a dataset snapshot for a worker, replacing any
// previous snapshot. Imported snapshots back offline runs (-offline).
// POST /api/datasets/{worker}
func (h *Handler) ImportDataset(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured", nil)
		return
	}

	key := chi.URLParam(r, "worker")
	if _, known := h.Roster.Worker(key); !known {
		writeError(w, http.StatusNotFound, "Unknown worker", nil)
		return
	}

	var ds payroll.Dataset
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.ImportDataset(r.Context(), key, ds); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import dataset", err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResultDTO{
		WorkerKey:     key,
		ReferenceRows: len(ds.Reference),
		EventRows:     len(ds.Events),
	})
}

// ListPayouts returns the appended payout ledger rows for a worker,
// oldest first.
// GET /api/payouts?worker=mariza
func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured", nil)
		return
	}

	key := r.URL.Query().Get("worker")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Missing worker parameter", nil)
		return
	}

	records, err := h.Store.ListPayouts(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payouts", err)
		return
	}

	dtos := make([]PayoutDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, PayoutDTO{
			WorkerKey: rec.WorkerKey,
			Period:    rec.Period,
			Row:       rec.Row,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"payouts": dtos})
}

// =============================================================================
// SUPPORTING HANDLERS
// =============================================================================

// CheckRules fetches the regulatory sources and reports change status.
// GET /api/rules/check
func (h *Handler) CheckRules(w http.ResponseWriter, r *http.Request) {
	report, err := h.Runner.Monitor.Check(r.Context(), h.StateDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Regulatory check failed", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetFX resolves the pacted FX rate from the market sources.
// GET /api/fx?places=2
func (h *Handler) GetFX(w http.ResponseWriter, r *http.Request) {
	places := int32(2)
	if s := r.URL.Query().Get("places"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 8 {
			writeError(w, http.StatusBadRequest, "Invalid places (0-8)", err)
			return
		}
		places = int32(n)
	}

	quote, err := h.FX.Resolve(r.Context(), places)
	if err != nil {
		writeError(w, http.StatusBadGateway, "FX sources unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// ListWorkers returns the configured roster.
// GET /api/workers
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	dtos := make([]WorkerDTO, 0, len(h.Roster.Workers))
	for _, worker := range h.Roster.Workers {
		dtos = append(dtos, toWorkerDTO(worker))
	}
	writeJSON(w, http.StatusOK, map[string]any{"workers": dtos})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

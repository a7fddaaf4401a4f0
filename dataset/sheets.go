/*
sheets.go - Google Sheets gviz CSV source

Fetches each of the three tabs through the spreadsheet's gviz CSV export
endpoint. Fetches are sequential with a per-request timeout; there is no
retry, a failed tab fails the worker's load (the run isolates the failure
to that worker).
*/
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
)

const sheetsBaseURL = "https://docs.google.com"

// SheetsSource loads worker datasets from Google Sheets.
type SheetsSource struct {
	Client    *http.Client
	BaseURL   string // overridable for tests
	UserAgent string
}

// NewSheetsSource returns a source against the public endpoint with a 20s
// per-request timeout.
func NewSheetsSource() *SheetsSource {
	return &SheetsSource{
		Client:    &http.Client{Timeout: 20 * time.Second},
		BaseURL:   sheetsBaseURL,
		UserAgent: "warp-payroll-engine/1.0",
	}
}

func (s *SheetsSource) fetchTab(ctx context.Context, sheetID, tab string) ([]payroll.Row, error) {
	query := url.Values{"tqx": {"out:csv"}, "sheet": {tab}}
	endpoint := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s", s.BaseURL, sheetID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tab %q: %w", tab, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch tab %q: unexpected status %d", tab, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch tab %q: %w", tab, err)
	}
	return ParseCSV(string(raw))
}

// Load fetches the three tabs of the worker's spreadsheet. The period is
// ignored: the live sheet holds every period's rows.
func (s *SheetsSource) Load(ctx context.Context, w roster.Worker, _ payroll.Period) (payroll.Dataset, error) {
	if w.SheetID == "" {
		return payroll.Dataset{}, fmt.Errorf("worker %q has no sheet id", w.Key)
	}

	var ds payroll.Dataset
	var err error
	if ds.Reference, err = s.fetchTab(ctx, w.SheetID, TabReference); err != nil {
		return payroll.Dataset{}, err
	}
	if ds.Events, err = s.fetchTab(ctx, w.SheetID, TabEvents); err != nil {
		return payroll.Dataset{}, err
	}
	if ds.Payouts, err = s.fetchTab(ctx, w.SheetID, TabPayouts); err != nil {
		return payroll.Dataset{}, err
	}
	return ds, nil
}

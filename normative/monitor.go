/*
Package normative watches the regulatory reference pages that govern the
payroll rules (ARCA casas particulares categories, vacation and aguinaldo
help pages, Boletín Oficial) and reports whether they may have changed
since the last run.

ALGORITHM:
  For every configured source, best-effort fetch a short snippet (bounded
  read, whitespace-collapsed prefix). A failing source degrades to a fixed
  placeholder string, never an error. The snippets are folded, in
  configured order, into one sha256 fingerprint over "url::snippet" pairs,
  so both content changes and source-list changes are detected, and no
  snippet content can be reconstructed from the checkpoint.

CHECKPOINT SEMANTICS:
  The previous fingerprint is read from <stateDir>/rules_hash.json before
  the new one unconditionally overwrites it. A missing checkpoint counts
  as "changed" (first run must be reviewed). There is no debouncing: a
  transient one-character diff permanently resets the baseline.

DOWNSTREAM:
  A "changed" report blocks the automatic approval path; the validation
  gate folds it in as the "normativa" check.
*/
package normative

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	StatusNoChange = "no_change"
	StatusChanged  = "changed"

	// placeholderSnippet substitutes a source that could not be fetched in
	// this run. It participates in the fingerprint like any snippet.
	placeholderSnippet = "No se pudo consultar la fuente en esta corrida."

	changedSummary = "Se detectaron cambios o primera ejecución en fuentes ARCA/CNTCP. Revisar vigencias antes de aprobar."
)

// DefaultSources are the regulatory reference pages for the domestic
// employment regime.
var DefaultSources = []string{
	"https://www.arca.gob.ar/casasparticulares/categorias-y-remuneraciones/",
	"https://www.arca.gob.ar/casasparticulares/ayuda/empleador/vacaciones.asp",
	"https://www.arca.gob.ar/casasparticulares/ayuda/empleador/aguinaldo.asp",
	"https://www.boletinoficial.gob.ar/",
}

// Snippet is one source's contribution to the fingerprint.
type Snippet struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// Report is the monitor's verdict for one run.
type Report struct {
	Status   string    `json:"status"`
	Summary  string    `json:"summary,omitempty"`
	Sources  []string  `json:"sources"`
	Snippets []Snippet `json:"snippets,omitempty"`
}

// Changed reports whether automatic approval must be blocked.
func (r Report) Changed() bool { return r.Status != StatusNoChange }

// Monitor fetches and fingerprints the regulatory sources.
type Monitor struct {
	Sources    []string
	Client     *http.Client
	UserAgent  string
	ReadLimit  int64 // max bytes read per source
	SnippetLen int   // snippet prefix length in runes
}

// NewMonitor returns a monitor over the default sources with a 15s
// per-request timeout.
func NewMonitor() *Monitor {
	return &Monitor{
		Sources:    DefaultSources,
		Client:     &http.Client{Timeout: 15 * time.Second},
		UserAgent:  "warp-payroll-engine/1.0",
		ReadLimit:  4096,
		SnippetLen: 350,
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// fetchSnippet reads a bounded prefix of one source. Any failure, network
// or HTTP alike, degrades to the placeholder.
func (m *Monitor) fetchSnippet(ctx context.Context, source string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return placeholderSnippet
	}
	req.Header.Set("User-Agent", m.UserAgent)

	resp, err := m.Client.Do(req)
	if err != nil {
		return placeholderSnippet
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return placeholderSnippet
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, m.ReadLimit))
	if err != nil || len(raw) == 0 {
		return placeholderSnippet
	}

	runes := []rune(string(raw))
	if len(runes) > m.SnippetLen {
		runes = runes[:m.SnippetLen]
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(string(runes), " "))
}

// Check runs one monitoring pass against the given state directory.
// The returned error covers checkpoint I/O only; source fetches never fail.
func (m *Monitor) Check(ctx context.Context, stateDir string) (Report, error) {
	hasher := sha256.New()
	snippets := make([]Snippet, 0, len(m.Sources))
	for _, source := range m.Sources {
		snippet := m.fetchSnippet(ctx, source)
		snippets = append(snippets, Snippet{Source: source, Snippet: snippet})
		hasher.Write([]byte(source + "::" + snippet))
	}
	newHash := hex.EncodeToString(hasher.Sum(nil))

	oldHash, hadCheckpoint, err := readCheckpoint(stateDir)
	if err != nil {
		return Report{}, err
	}
	// Overwrite regardless of the comparison outcome; the comparison below
	// is against the value read above.
	if err := writeCheckpoint(stateDir, newHash); err != nil {
		return Report{}, err
	}

	if hadCheckpoint && oldHash == newHash {
		return Report{Status: StatusNoChange, Sources: m.Sources}, nil
	}
	return Report{
		Status:   StatusChanged,
		Summary:  changedSummary,
		Sources:  m.Sources,
		Snippets: snippets,
	}, nil
}

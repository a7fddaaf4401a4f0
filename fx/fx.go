/*
Package fx resolves the pacted USD/ARS exchange rate used by the sibling
invoicing workflow: the plain average of four quoted prices (blue buy/sell
and official buy/sell), rounded half-up.

SOURCE STRATEGY (blue/green):
  blue:  dolarhoy.com HTML, scraped with two price-pair regexes
  green: Bluelytics JSON API, a stable endpoint needing no scraping

  The blue path is tried first; any failure falls through to green. Only
  when both fail does Resolve return an error, naming both causes. There
  is no retry policy; a run gets one attempt per source.
*/
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DolarhoyURL   = "https://dolarhoy.com/"
	BluelyticsURL = "https://api.bluelytics.com.ar/v2/latest"
)

// ErrUnparseableQuote is returned when a source's payload does not contain
// the expected price points.
var ErrUnparseableQuote = errors.New("unparseable fx quote")

// Prices are the four market quotes feeding the pacted rate.
type Prices struct {
	BlueBuy      decimal.Decimal `json:"blue_buy"`
	BlueSell     decimal.Decimal `json:"blue_sell"`
	OfficialBuy  decimal.Decimal `json:"official_buy"`
	OfficialSell decimal.Decimal `json:"official_sell"`
}

// Quote is a resolved pacted rate and its inputs.
type Quote struct {
	Prices Prices          `json:"prices"`
	Rate   decimal.Decimal `json:"rate"`
	Source string          `json:"source"`
}

var four = decimal.NewFromInt(4)

// PactedRate is the agreed four-price average, rounded to the given number
// of places.
func PactedRate(p Prices, places int32) decimal.Decimal {
	sum := p.BlueBuy.Add(p.BlueSell).Add(p.OfficialBuy).Add(p.OfficialSell)
	return sum.Div(four).Round(places)
}

// parseAmount parses a quoted price string. Unlike the payroll parser a
// lone dot here is a decimal point; dolarhoy mixes "1.234,56" and "1234.56"
// shapes depending on magnitude.
func parseAmount(s string) (decimal.Decimal, error) {
	n := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if n == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(n, ",") && strings.Contains(n, ".") {
		n = strings.ReplaceAll(n, ".", "")
		n = strings.ReplaceAll(n, ",", ".")
	} else if strings.Contains(n, ",") {
		n = strings.ReplaceAll(n, ",", ".")
	}
	return decimal.NewFromString(n)
}

// =============================================================================
// BLUE PATH - dolarhoy HTML scraping
// =============================================================================

// Bounded repeats keep a section window around each heading; the RE2
// engine caps repeat counts at 1000.
var (
	blueSection     = regexp.MustCompile(`(?is)D[oó]lar Blue(.{0,1000}?)D[oó]lar`)
	officialSection = regexp.MustCompile(`(?is)D[oó]lar Oficial(.{0,1000}?)D[oó]lar`)
	blueLoose       = regexp.MustCompile(`(?is)D[oó]lar Blue(.{0,1000})`)
	officialLoose   = regexp.MustCompile(`(?is)D[oó]lar Oficial(.{0,1000})`)
	pricePoint      = regexp.MustCompile(`\$\s*([0-9.,]+)`)
)

func extractPricePair(section string) (buy, sell decimal.Decimal, err error) {
	matches := pricePoint.FindAllStringSubmatch(section, 2)
	if len(matches) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: insufficient price points", ErrUnparseableQuote)
	}
	if buy, err = parseAmount(matches[0][1]); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", ErrUnparseableQuote, err)
	}
	if sell, err = parseAmount(matches[1][1]); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", ErrUnparseableQuote, err)
	}
	return buy, sell, nil
}

// ParseDolarhoy extracts the four prices from dolarhoy HTML. The strict
// section regex stops at the next "Dólar" heading; when a section is the
// last one on the page the loose variant takes over.
func ParseDolarhoy(html string) (Prices, error) {
	blue := blueSection.FindStringSubmatch(html)
	if blue == nil {
		blue = blueLoose.FindStringSubmatch(html)
	}
	official := officialSection.FindStringSubmatch(html)
	if official == nil {
		official = officialLoose.FindStringSubmatch(html)
	}
	if blue == nil || official == nil {
		return Prices{}, fmt.Errorf("%w: missing Blue/Oficial sections", ErrUnparseableQuote)
	}

	var p Prices
	var err error
	if p.BlueBuy, p.BlueSell, err = extractPricePair(blue[1]); err != nil {
		return Prices{}, err
	}
	if p.OfficialBuy, p.OfficialSell, err = extractPricePair(official[1]); err != nil {
		return Prices{}, err
	}
	return p, nil
}

// =============================================================================
// GREEN PATH - Bluelytics JSON API
// =============================================================================

type bluelyticsQuote struct {
	ValueBuy  decimal.Decimal `json:"value_buy"`
	ValueSell decimal.Decimal `json:"value_sell"`
}

type bluelyticsPayload struct {
	Blue    bluelyticsQuote `json:"blue"`
	Oficial bluelyticsQuote `json:"oficial"`
}

// =============================================================================
// FETCHER
// =============================================================================

// Fetcher resolves market prices with the blue/green fallback strategy.
// Zero-value URLs fall back to the public endpoints.
type Fetcher struct {
	Client        *http.Client
	DolarhoyURL   string
	BluelyticsURL string
	UserAgent     string
}

// NewFetcher returns a fetcher against the public sources with a 15s
// per-request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:        &http.Client{Timeout: 15 * time.Second},
		DolarhoyURL:   DolarhoyURL,
		BluelyticsURL: BluelyticsURL,
		UserAgent:     "warp-payroll-engine/1.0",
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) fetchDolarhoy(ctx context.Context) (Prices, error) {
	body, err := f.get(ctx, f.DolarhoyURL)
	if err != nil {
		return Prices{}, err
	}
	return ParseDolarhoy(string(body))
}

func (f *Fetcher) fetchBluelytics(ctx context.Context) (Prices, error) {
	body, err := f.get(ctx, f.BluelyticsURL)
	if err != nil {
		return Prices{}, err
	}
	var payload bluelyticsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Prices{}, fmt.Errorf("%w: %v", ErrUnparseableQuote, err)
	}
	return Prices{
		BlueBuy:      payload.Blue.ValueBuy,
		BlueSell:     payload.Blue.ValueSell,
		OfficialBuy:  payload.Oficial.ValueBuy,
		OfficialSell: payload.Oficial.ValueSell,
	}, nil
}

// Fetch returns market prices, trying the blue path first and falling back
// to green. The returned source names which path succeeded.
func (f *Fetcher) Fetch(ctx context.Context) (Prices, string, error) {
	prices, blueErr := f.fetchDolarhoy(ctx)
	if blueErr == nil {
		return prices, "dolarhoy", nil
	}
	prices, greenErr := f.fetchBluelytics(ctx)
	if greenErr == nil {
		return prices, "bluelytics", nil
	}
	return Prices{}, "", fmt.Errorf("all fx sources failed: dolarhoy: %v; bluelytics: %v", blueErr, greenErr)
}

// Resolve fetches prices and computes the pacted rate.
func (f *Fetcher) Resolve(ctx context.Context, places int32) (Quote, error) {
	prices, source, err := f.Fetch(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Prices: prices, Rate: PactedRate(prices, places), Source: source}, nil
}

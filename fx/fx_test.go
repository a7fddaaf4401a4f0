package fx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/fx"
)

const dolarhoyFixture = `
<html><body>
<h2>Dólar Blue</h2>
<div>Compra $ 1.220,00</div>
<div>Venta $ 1.240,00</div>
<h2>Dólar Oficial</h2>
<div>Compra $ 1.030,50</div>
<div>Venta $ 1.070,50</div>
<h2>Dólar MEP</h2>
</body></html>`

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPactedRate_FourPriceAverage(t *testing.T) {
	p := fx.Prices{
		BlueBuy:      dec("1220"),
		BlueSell:     dec("1240"),
		OfficialBuy:  dec("1030.50"),
		OfficialSell: dec("1070.50"),
	}
	require.True(t, fx.PactedRate(p, 2).Equal(dec("1140.25")))
}

func TestPactedRate_Rounding(t *testing.T) {
	p := fx.Prices{
		BlueBuy:      dec("1"),
		BlueSell:     dec("1"),
		OfficialBuy:  dec("1"),
		OfficialSell: dec("1.01"),
	}
	// 4.01 / 4 = 1.0025 -> 1.00 at 2 places, 1.003 at 3 places (half up)
	require.True(t, fx.PactedRate(p, 2).Equal(dec("1.00")))
	require.True(t, fx.PactedRate(p, 3).Equal(dec("1.003")))
}

func TestParseDolarhoy(t *testing.T) {
	p, err := fx.ParseDolarhoy(dolarhoyFixture)
	require.NoError(t, err)
	require.True(t, p.BlueBuy.Equal(dec("1220")))
	require.True(t, p.BlueSell.Equal(dec("1240")))
	require.True(t, p.OfficialBuy.Equal(dec("1030.50")))
	require.True(t, p.OfficialSell.Equal(dec("1070.50")))
}

func TestParseDolarhoy_NoisyMarkupBetweenHeadingAndPrices(t *testing.T) {
	// GIVEN: sections padded with hundreds of characters of markup, the
	// widest window the section regexes must span
	filler := strings.Repeat("<span class=\"ad\"></span>", 30)
	page := "<h2>Dólar Blue</h2>" + filler +
		"<div>Compra $ 1.220,00</div><div>Venta $ 1.240,00</div>" +
		"<h2>Dólar Oficial</h2>" + filler +
		"<div>Compra $ 1.030,50</div><div>Venta $ 1.070,50</div>"

	p, err := fx.ParseDolarhoy(page)
	require.NoError(t, err)
	require.True(t, p.BlueBuy.Equal(dec("1220")))
	require.True(t, p.OfficialSell.Equal(dec("1070.50")))
}

func TestParseDolarhoy_MissingSections(t *testing.T) {
	_, err := fx.ParseDolarhoy("<html>nothing here</html>")
	require.ErrorIs(t, err, fx.ErrUnparseableQuote)
}

func newFetcher(dolarhoy, bluelytics string) *fx.Fetcher {
	f := fx.NewFetcher()
	f.Client = &http.Client{Timeout: 2 * time.Second}
	f.DolarhoyURL = dolarhoy
	f.BluelyticsURL = bluelytics
	return f
}

func TestFetch_BluePathFirst(t *testing.T) {
	blue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(dolarhoyFixture))
	}))
	defer blue.Close()
	green := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("green source must not be called when blue succeeds")
	}))
	defer green.Close()

	prices, source, err := newFetcher(blue.URL, green.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "dolarhoy", source)
	require.True(t, prices.BlueBuy.Equal(dec("1220")))
}

func TestFetch_GreenFallback(t *testing.T) {
	// GIVEN: a failing blue source and a healthy Bluelytics endpoint
	blue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer blue.Close()
	green := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"blue":{"value_buy":1220,"value_sell":1240},"oficial":{"value_buy":1030.5,"value_sell":1070.5}}`))
	}))
	defer green.Close()

	// WHEN: fetching
	quote, err := newFetcher(blue.URL, green.URL).Resolve(context.Background(), 2)

	// THEN: the green path serves the same shape
	require.NoError(t, err)
	require.Equal(t, "bluelytics", quote.Source)
	require.True(t, quote.Rate.Equal(dec("1140.25")))
}

func TestFetch_BothFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	_, _, err := newFetcher(down.URL, down.URL).Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "dolarhoy")
	require.Contains(t, err.Error(), "bluelytics")
}

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/roster"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestImportAndLoadDataset(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	ds := payroll.Dataset{
		Reference: []payroll.Row{{"Período": "jun 2025", "Salario básico": "AR$779.400,00"}},
		Events:    []payroll.Row{{"Fecha": "10/06/2025", "Monto adicional/descuento": "AR$12.000,00"}},
	}
	require.NoError(t, store.ImportDataset(ctx, "mariza", ds))

	w := roster.Worker{Key: "mariza", Name: "Mariza", Role: payroll.RoleMonthly}
	got, err := store.Load(ctx, w, payroll.Period{Year: 2025, Month: time.June})
	require.NoError(t, err)
	require.Equal(t, ds.Reference, got.Reference)
	require.Equal(t, ds.Events, got.Events)

	// The loaded snapshot is directly computable.
	_, err = payroll.NewEngine().Compute("mariza", "Mariza", payroll.Period{Year: 2025, Month: time.June}, got)
	require.NoError(t, err)
}

func TestImportDataset_ReplacesSnapshot(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	w := roster.Worker{Key: "mariza"}

	require.NoError(t, store.ImportDataset(ctx, "mariza", payroll.Dataset{
		Reference: []payroll.Row{{"Período": "may 2025"}},
	}))
	require.NoError(t, store.ImportDataset(ctx, "mariza", payroll.Dataset{
		Reference: []payroll.Row{{"Período": "jun 2025"}},
	}))

	got, err := store.Load(ctx, w, payroll.Period{Year: 2025, Month: time.June})
	require.NoError(t, err)
	require.Len(t, got.Reference, 1)
	require.Equal(t, "jun 2025", got.Reference[0]["Período"])
}

func TestPayoutLedgerAppendOnly(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	row := payroll.Row{"Total": "AR$871.072,00", "Recibo": "ReciboPago_202506.pdf"}
	require.NoError(t, store.AppendPayout(ctx, "mariza", "2025-06", row))
	require.NoError(t, store.AppendPayout(ctx, "mariza", "2025-07", row))

	payouts, err := store.ListPayouts(ctx, "mariza")
	require.NoError(t, err)
	require.Len(t, payouts, 2)
	require.Equal(t, "2025-06", payouts[0].Period)
	require.Equal(t, "AR$871.072,00", payouts[0].Row["Total"])

	other, err := store.ListPayouts(ctx, "irma")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestRunHistory(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, "run-1", "2025-06", "simulation", "OK", []byte(`{"run_id":"run-1"}`)))
	require.NoError(t, store.SaveRun(ctx, "run-2", "2025-07", "live", "REVISAR", []byte(`{"run_id":"run-2"}`)))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "run-2", runs[0].ID) // newest first
	require.Equal(t, "REVISAR", runs[0].GlobalStatus)
	require.JSONEq(t, `{"run_id":"run-1"}`, string(runs[1].Report))
}

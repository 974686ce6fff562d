package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vtfinance/billing_dashboard/internal/logger"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

type stubOrders struct {
	orders []store.Order
	err    error
}

func (s *stubOrders) BulkInsert(context.Context, []store.Order) (int64, error) { return 0, nil }
func (s *stubOrders) DeleteByDateRange(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (s *stubOrders) DedupLatestByKey(context.Context) (bool, error) { return false, nil }
func (s *stubOrders) DeletePaidPending(context.Context) (int64, error) { return 0, nil }
func (s *stubOrders) List(context.Context) ([]store.Order, error) {
	return s.orders, s.err
}

type stubPayments struct {
	payments []store.Payment
	err      error
}

func (s *stubPayments) BulkInsert(context.Context, []store.Payment) (int64, error) { return 0, nil }
func (s *stubPayments) DedupExactRows(context.Context) error                       { return nil }
func (s *stubPayments) List(context.Context) ([]store.Payment, error) {
	return s.payments, s.err
}

func newTestEngine(orders *stubOrders, payments *stubPayments) *Engine {
	engine := NewEngine(
		&store.Storage{Orders: orders, Payments: payments},
		&logger.Logger{MinLevel: logger.LevelError},
	)
	engine.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }
	return engine
}

func TestDashboardComputesAllSeries(t *testing.T) {
	orders := &stubOrders{orders: []store.Order{
		testOrder("100", "Acme", "01/03/2025", "R$ 100,00", store.StatusPaid),
		testOrder("101", "Acme", "08/03/2025", "R$ 200,00", store.StatusNew),
	}}
	payments := &stubPayments{payments: []store.Payment{
		testPayment("100", "Acme", "01/03/2025", "10/03/2025", "R$ 100,00"),
	}}

	dash := newTestEngine(orders, payments).Dashboard(context.Background(), Window{})

	require.Len(t, dash.ConversionRate, 1)
	require.InDelta(t, 50, dash.ConversionRate[0].Value, 1e-9)
	require.Len(t, dash.OverdueAging, 1)
	require.Len(t, dash.VouchersPaid, 1)
	require.Len(t, dash.CompaniesPaid, 1)
	require.Len(t, dash.AverageTicket, 1)
	require.Len(t, dash.PaymentLatency.MeanByMonth, 1)
	require.Len(t, dash.DebtorsByCount, 1)
	require.Len(t, dash.DebtorsByAmount, 1)
}

func TestDashboardDegradesToEmptySeriesOnStoreError(t *testing.T) {
	orders := &stubOrders{err: errors.New("connection refused")}
	payments := &stubPayments{err: errors.New("connection refused")}

	dash := newTestEngine(orders, payments).Dashboard(context.Background(), Window{})

	require.Empty(t, dash.ConversionRate)
	require.Empty(t, dash.VouchersPaid)
	require.Empty(t, dash.OverdueAging)
	require.Empty(t, dash.CashFlow.Forecast)
	require.Empty(t, dash.CashFlow.Actual)
	require.Empty(t, dash.PaymentLatency.MeanByMonth)
	require.Empty(t, dash.DebtorsByCount)
	require.Empty(t, dash.DebtorsByAmount)
}

func TestEngineOverdueDetailsOnStoreError(t *testing.T) {
	orders := &stubOrders{err: errors.New("connection refused")}
	engine := newTestEngine(orders, &stubPayments{})

	require.Empty(t, engine.OverdueDetails(context.Background(), Window{}, Bucket6To10))
	require.Empty(t, engine.DebtorDetails(context.Background(), Window{}, "Acme"))
}

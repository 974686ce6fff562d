package metrics

import (
	"context"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/logger"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

const component = "Metrics"

// Engine derives the dashboard series from the normalized orders and
// payments tables. It never fails outward: when the store errors, the
// affected series come back empty and the error is logged.
type Engine struct {
	storage *store.Storage
	log     *logger.Logger
	now     func() time.Time
}

func NewEngine(storage *store.Storage, log *logger.Logger) *Engine {
	return &Engine{storage: storage, log: log, now: time.Now}
}

func (e *Engine) load(ctx context.Context) ([]store.Order, []store.Payment) {
	orders, err := e.storage.Orders.List(ctx)
	if err != nil {
		e.log.Error(component, "Loading orders failed, serving empty series: %v", err)
		orders = nil
	}
	payments, err := e.storage.Payments.List(ctx)
	if err != nil {
		e.log.Error(component, "Loading payments failed, serving empty series: %v", err)
		payments = nil
	}
	return orders, payments
}

// Dashboard computes every series for the given window. The cash-flow
// window is pinned to the wall clock regardless of the filter.
func (e *Engine) Dashboard(ctx context.Context, w Window) Dashboard {
	orders, payments := e.load(ctx)
	now := e.now()

	return Dashboard{
		ConversionRate:  ConversionRateByMonth(orders, w),
		VouchersPaid:    VouchersPaidByMonth(payments, w),
		OverdueAging:    OverdueAging(orders, w, now),
		CashFlow:        CashFlow(orders, payments, now),
		PaymentLatency:  PaymentLatency(payments, w),
		CompaniesPaid:   CompaniesPaidByMonth(payments, w),
		AverageTicket:   AverageTicketByMonth(payments, w),
		DebtorsByCount:  DebtorsByCount(orders, payments, w),
		DebtorsByAmount: DebtorsByAmount(orders, w, now),
	}
}

// OverdueDetails lists the overdue orders behind one clicked aging bucket.
func (e *Engine) OverdueDetails(ctx context.Context, w Window, bucket string) []OverdueOrder {
	orders, err := e.storage.Orders.List(ctx)
	if err != nil {
		e.log.Error(component, "Loading orders failed, serving empty details: %v", err)
		return []OverdueOrder{}
	}
	return OverdueDetails(orders, w, e.now(), bucket)
}

// DebtorDetails lists the overdue orders of one company from the ranking.
func (e *Engine) DebtorDetails(ctx context.Context, w Window, company string) []OverdueOrder {
	orders, err := e.storage.Orders.List(ctx)
	if err != nil {
		e.log.Error(component, "Loading orders failed, serving empty details: %v", err)
		return []OverdueOrder{}
	}
	return DebtorDetails(orders, w, e.now(), company)
}

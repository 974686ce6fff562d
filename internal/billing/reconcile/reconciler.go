package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/logger"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

// Dedup strategy names, for logs and load-run records. ExactRowDedup
// collapses rows identical across every column (payments: no business key
// exists, and a true repeat payment identical in all fields is collapsed
// with the duplicates, a known source-data limitation). LatestByKeyDedup
// keeps, per order id, only the row with the maximum storage key.
const (
	ExactRowDedup    = "exact_row"
	LatestByKeyDedup = "latest_by_key"
)

// Engine runs the reconciliation & load sequence that keeps the stored
// tables consistent with the latest extract for a date window.
type Engine struct {
	storage *store.Storage
	log     *logger.Logger
}

func New(storage *store.Storage, appLogger *logger.Logger) *Engine {
	return &Engine{storage: storage, log: appLogger}
}

// Result reports what one run changed and which table operations failed.
// A failed operation leaves its table's prior state intact; the run carries
// on with the remaining tables, so cross-table consistency is not guaranteed
// for a partial run.
type Result struct {
	OrdersDeleted      int64
	OrdersInserted     int64
	PaymentsInserted   int64
	PaidPendingDeleted int64
	FailedOps          []string
}

func (r Result) Status() string {
	switch {
	case len(r.FailedOps) == 0:
		return store.RunStatusSuccess
	case r.OrdersInserted == 0 && r.PaymentsInserted == 0:
		return store.RunStatusFailure
	default:
		return store.RunStatusPartial
	}
}

// Run executes the load sequence for [start, end] inclusive:
//
//  1. payment-precedence cleanup (orders already settled must not stay
//     visible as pending)
//  2. windowed delete of orders (reloading a window is idempotent)
//  3. bulk append of this run's normalized rows
//  4. exact-row dedup of payments, latest-by-key dedup of orders
//  5. payment-precedence cleanup again, covering rows loaded in this run
func (e *Engine) Run(ctx context.Context, start, end time.Time, orders []store.Order, payments []store.Payment) Result {
	const component = "Reconciler"
	var res Result

	e.log.Info(component, "Starting reconciliation: window=%s..%s orders=%d payments=%d",
		start.Format(utils.DateLayout), end.Format(utils.DateLayout), len(orders), len(payments))

	deleted, err := e.storage.Orders.DeletePaidPending(ctx)
	if err != nil {
		e.failOp(&res, component, "orders.paid_pending_cleanup", err)
	} else {
		res.PaidPendingDeleted += deleted
	}

	deleted, err = e.storage.Orders.DeleteByDateRange(ctx, start, end)
	if err != nil {
		e.failOp(&res, component, "orders.windowed_delete", err)
	} else {
		res.OrdersDeleted = deleted
		e.log.Info(component, "Windowed delete completed: deletedRows=%d", deleted)
	}

	inserted, err := e.storage.Orders.BulkInsert(ctx, orders)
	if err != nil {
		e.failOp(&res, component, "orders.bulk_insert", err)
	} else {
		res.OrdersInserted = inserted
	}

	inserted, err = e.storage.Payments.BulkInsert(ctx, payments)
	if err != nil {
		e.failOp(&res, component, "payments.bulk_insert", err)
	} else {
		res.PaymentsInserted = inserted
	}

	if err := e.storage.Payments.DedupExactRows(ctx); err != nil {
		e.failOp(&res, component, "payments.dedup."+ExactRowDedup, err)
	} else {
		e.log.Info(component, "Payments dedup completed: strategy=%s", ExactRowDedup)
	}

	rebuilt, err := e.storage.Orders.DedupLatestByKey(ctx)
	switch {
	case err != nil:
		e.failOp(&res, component, "orders.dedup."+LatestByKeyDedup, err)
	case !rebuilt:
		e.log.Info(component, "Orders dedup skipped, table empty: strategy=%s", LatestByKeyDedup)
	default:
		e.log.Info(component, "Orders dedup completed: strategy=%s", LatestByKeyDedup)
	}

	deleted, err = e.storage.Orders.DeletePaidPending(ctx)
	if err != nil {
		e.failOp(&res, component, "orders.paid_pending_cleanup", err)
	} else {
		res.PaidPendingDeleted += deleted
	}

	e.log.Info(component, "Reconciliation completed: status=%s ordersDeleted=%d ordersInserted=%d paymentsInserted=%d paidPendingDeleted=%d",
		res.Status(), res.OrdersDeleted, res.OrdersInserted, res.PaymentsInserted, res.PaidPendingDeleted)
	return res
}

func (e *Engine) failOp(res *Result, component, op string, err error) {
	res.FailedOps = append(res.FailedOps, op)
	e.log.Error(component, "Table operation failed, prior state kept: op=%s error=%v", op, err)
}

// ParseWindow parses the batch window bounds (dd/mm/yyyy, inclusive).
func ParseWindow(initDate, endDate string) (time.Time, time.Time, error) {
	start, ok := utils.ParseDate(initDate)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid init date %q, expected dd/mm/yyyy", initDate)
	}
	end, ok := utils.ParseDate(endDate)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q, expected dd/mm/yyyy", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes init date %s", endDate, initDate)
	}
	return start, end, nil
}

package metrics

import (
	"time"

	"github.com/vtfinance/billing_dashboard/internal/store"
)

// Window is an optional inclusive [start, end] filter. A nil bound is
// unbounded; the zero Window selects everything.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func (w Window) contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Point is one (label, value) pair of an ordered series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DatedPoint is one point of a daily series.
type DatedPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// CashFlowSeries holds the forecast and actual cumulative daily series,
// both resetting at month boundaries.
type CashFlowSeries struct {
	Forecast []DatedPoint `json:"forecast"`
	Actual   []DatedPoint `json:"actual"`
}

// LatencyBucketShare is the share of a month's payments that settled inside
// one latency bucket, annotated with the total amount paid in it.
type LatencyBucketShare struct {
	Month      string  `json:"month"`
	Bucket     string  `json:"bucket"`
	Percent    float64 `json:"percent"`
	PaidAmount float64 `json:"paid_amount"`
}

// LatencySeries pairs the mean issue-to-payment latency per month with the
// per-bucket distribution.
type LatencySeries struct {
	MeanByMonth []Point              `json:"mean_by_month"`
	Buckets     []LatencyBucketShare `json:"buckets"`
}

// Dashboard is the full set of series the presentation layer renders for
// one date-range selection.
type Dashboard struct {
	ConversionRate  []Point        `json:"conversion_rate"`
	VouchersPaid    []Point        `json:"vouchers_paid"`
	OverdueAging    []Point        `json:"overdue_aging"`
	CashFlow        CashFlowSeries `json:"cash_flow"`
	PaymentLatency  LatencySeries  `json:"payment_latency"`
	CompaniesPaid   []Point        `json:"companies_paid"`
	AverageTicket   []Point        `json:"average_ticket"`
	DebtorsByCount  []Point        `json:"debtors_by_count"`
	DebtorsByAmount []Point        `json:"debtors_by_amount"`
}

// OverdueOrder is one drill-down detail row: an unpaid order with its age
// and aging bucket.
type OverdueOrder struct {
	store.Order
	DaysSinceOrder int    `json:"days_since_order"`
	Bucket         string `json:"bucket,omitempty"`
}

package metrics

import (
	"sort"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

// Orders are expected to settle this many days after the order date.
const forecastSettlementDays = 5

// CashFlow builds the forecast-vs-actual cumulative daily series.
//
// Forecast: orders in status Novo or Pago e Liberado, predicted receipt at
// order date + 5 days, credit values summed per predicted day and
// accumulated within each calendar month.
//
// Actual: orders in status Pago e Liberado left-joined to payments on the
// order number; the settlement value falls back to the order's credit value
// and the settlement date to the order date when the join finds no payment
// or the payment value is unparseable.
//
// Both series are clipped to [current month start - 2 months, current month
// start + 1 month), pinned to the wall-clock now and deliberately
// independent of the dashboard's date-range filter.
func CashFlow(orders []store.Order, payments []store.Payment, now time.Time) CashFlowSeries {
	currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := currentMonthStart.AddDate(0, -2, 0)
	windowEnd := currentMonthStart.AddDate(0, 1, 0)

	forecastByDay := make(map[time.Time]float64)
	for _, o := range orders {
		if o.Status != store.StatusNew && o.Status != store.StatusPaidAndReleased {
			continue
		}
		value, ok := utils.ParseCurrency(o.CreditValue)
		if !ok {
			continue
		}
		date, ok := utils.ParseDate(o.OrderDate)
		if !ok {
			continue
		}
		predicted := date.AddDate(0, 0, forecastSettlementDays)
		forecastByDay[predicted] += value
	}

	paymentsByOrder := make(map[string][]store.Payment)
	for _, p := range payments {
		if p.OrderNumber == "" {
			continue
		}
		paymentsByOrder[p.OrderNumber] = append(paymentsByOrder[p.OrderNumber], p)
	}

	actualByDay := make(map[time.Time]float64)
	for _, o := range orders {
		if o.Status != store.StatusPaidAndReleased {
			continue
		}
		orderDate, hasOrderDate := utils.ParseDate(o.OrderDate)
		creditValue, hasCredit := utils.ParseCurrency(o.CreditValue)

		matches := paymentsByOrder[o.OrderID]
		if len(matches) == 0 {
			// No settling payment found: fall back to the order's own
			// credit value and date.
			if hasOrderDate && hasCredit {
				actualByDay[orderDate] += creditValue
			}
			continue
		}
		for _, p := range matches {
			value, ok := utils.ParseCurrency(p.Value)
			if !ok {
				if !hasCredit {
					continue
				}
				value = creditValue
			}
			date, ok := utils.ParseDate(p.PaymentDate)
			if !ok {
				if !hasOrderDate {
					continue
				}
				date = orderDate
			}
			actualByDay[date] += value
		}
	}

	return CashFlowSeries{
		Forecast: cumulativeByMonth(forecastByDay, windowStart, windowEnd),
		Actual:   cumulativeByMonth(actualByDay, windowStart, windowEnd),
	}
}

// cumulativeByMonth orders the daily sums, accumulates them with a reset at
// every month boundary, then clips to [start, end).
func cumulativeByMonth(byDay map[time.Time]float64, start, end time.Time) []DatedPoint {
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	points := []DatedPoint{}
	var running float64
	var currentMonth utils.Month
	for i, d := range days {
		m := utils.MonthOf(d)
		if i == 0 || m != currentMonth {
			running = 0
			currentMonth = m
		}
		running += byDay[d]
		if !d.Before(start) && d.Before(end) {
			points = append(points, DatedPoint{Date: d, Value: running})
		}
	}
	return points
}

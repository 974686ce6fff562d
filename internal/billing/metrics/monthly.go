package metrics

import (
	"strings"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

// voucherUnitPrice is the fixed face value of one transit voucher.
const voucherUnitPrice = 4.5

// VouchersPaidByMonth estimates how many vouchers were settled per month by
// dividing the paid amount by the unit price. Month of the payment date.
func VouchersPaidByMonth(payments []store.Payment, w Window) []Point {
	totals := make(map[utils.Month]float64)
	for _, p := range payments {
		paidAt, ok := utils.ParseDate(p.PaymentDate)
		if !ok || !w.contains(paidAt) {
			continue
		}
		if value, ok := utils.ParseCurrency(p.Value); ok {
			totals[utils.MonthOf(paidAt)] += value
		}
	}
	points := sortedPoints(totals)
	for i := range points {
		points[i].Value /= voucherUnitPrice
	}
	return points
}

// AverageTicketByMonth is the paid amount per month divided by the number of
// distinct paying companies that month.
func AverageTicketByMonth(payments []store.Payment, w Window) []Point {
	totals := make(map[utils.Month]float64)
	companies := make(map[utils.Month]map[string]struct{})
	for _, p := range payments {
		paidAt, ok := utils.ParseDate(p.PaymentDate)
		if !ok || !w.contains(paidAt) {
			continue
		}
		value, ok := utils.ParseCurrency(p.Value)
		if !ok {
			continue
		}
		m := utils.MonthOf(paidAt)
		totals[m] += value
		if companies[m] == nil {
			companies[m] = make(map[string]struct{})
		}
		companies[m][strings.TrimSpace(p.CompanyName)] = struct{}{}
	}
	averages := make(map[utils.Month]float64, len(totals))
	for m, total := range totals {
		if n := len(companies[m]); n > 0 {
			averages[m] = total / float64(n)
		}
	}
	return sortedPoints(averages)
}

// CompaniesPaidByMonth counts distinct companies with at least one payment
// in each month.
func CompaniesPaidByMonth(payments []store.Payment, w Window) []Point {
	companies := make(map[utils.Month]map[string]struct{})
	for _, p := range payments {
		paidAt, ok := utils.ParseDate(p.PaymentDate)
		if !ok || !w.contains(paidAt) {
			continue
		}
		m := utils.MonthOf(paidAt)
		if companies[m] == nil {
			companies[m] = make(map[string]struct{})
		}
		companies[m][strings.TrimSpace(p.CompanyName)] = struct{}{}
	}
	counts := make(map[utils.Month]float64, len(companies))
	for m, set := range companies {
		counts[m] = float64(len(set))
	}
	return sortedPoints(counts)
}

func sortedPoints(byMonth map[utils.Month]float64) []Point {
	months := make([]utils.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	utils.SortMonths(months)

	points := make([]Point, 0, len(months))
	for _, m := range months {
		points = append(points, Point{Label: m.Label(), Value: byMonth[m]})
	}
	return points
}

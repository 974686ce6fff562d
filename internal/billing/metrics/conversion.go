package metrics

import (
	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

func isPaidStatus(status string) bool {
	return status == store.StatusPaid || status == store.StatusPaidAndReleased
}

// ConversionRateByMonth computes, per calendar month of the order date,
// paid_count/issued_count*100. Months without issued orders produce no row,
// so there is never a divide by zero.
func ConversionRateByMonth(orders []store.Order, w Window) []Point {
	issued := make(map[utils.Month]int)
	paid := make(map[utils.Month]int)

	for _, o := range orders {
		date, ok := utils.ParseDate(o.OrderDate)
		if !ok || !w.contains(date) {
			continue
		}
		m := utils.MonthOf(date)
		issued[m]++
		if isPaidStatus(o.Status) {
			paid[m]++
		}
	}

	months := make([]utils.Month, 0, len(issued))
	for m := range issued {
		months = append(months, m)
	}
	utils.SortMonths(months)

	points := make([]Point, 0, len(months))
	for _, m := range months {
		if issued[m] == 0 {
			continue
		}
		rate := float64(paid[m]) / float64(issued[m]) * 100
		points = append(points, Point{Label: m.Label(), Value: rate})
	}
	return points
}

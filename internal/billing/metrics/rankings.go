package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

const (
	rankingSize   = 10
	lateAfterDays = 5
)

// DebtorsByCount ranks companies by how many of their paid orders settled
// late, joining the window's orders to payments on the order number. The
// window filters the order date, not the payment date. A payment counts as
// late when it happened more than five days after issue; negative latencies
// are data noise and are skipped. Top ten, descending.
func DebtorsByCount(orders []store.Order, payments []store.Payment, w Window) []Point {
	companyByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		if o.OrderID == "" {
			continue
		}
		ordered, ok := utils.ParseDate(o.OrderDate)
		if !ok || !w.contains(ordered) {
			continue
		}
		companyByOrder[o.OrderID] = o.CompanyName
	}

	counts := make(map[string]float64)
	for _, p := range payments {
		company, ok := companyByOrder[p.OrderNumber]
		if !ok {
			continue
		}
		issued, ok := utils.ParseDate(p.IssueDate)
		if !ok {
			continue
		}
		paidAt, ok := utils.ParseDate(p.PaymentDate)
		if !ok {
			continue
		}
		days := utils.DaysBetween(issued, paidAt)
		if days <= lateAfterDays {
			continue
		}
		counts[company]++
	}
	return topN(counts, rankingSize)
}

// DebtorsByAmount ranks companies by the credit value sitting in orders
// still marked Novo more than five days after the order date. Top ten,
// descending.
func DebtorsByAmount(orders []store.Order, w Window, now time.Time) []Point {
	amounts := make(map[string]float64)
	for _, o := range orders {
		if o.Status != store.StatusNew {
			continue
		}
		ordered, ok := utils.ParseDate(o.OrderDate)
		if !ok || !w.contains(ordered) {
			continue
		}
		if utils.DaysBetween(ordered, now) <= lateAfterDays {
			continue
		}
		if value, ok := utils.ParseCurrency(o.CreditValue); ok {
			amounts[o.CompanyName] += value
		}
	}
	return topN(amounts, rankingSize)
}

// DebtorDetails returns one company's Novo orders more than five days old,
// for the ranking drill-down. Unlike the aging view there is no upper age
// cap: whatever DebtorsByAmount counted must show up here. Company match is
// case-insensitive.
func DebtorDetails(orders []store.Order, w Window, now time.Time, company string) []OverdueOrder {
	today := utils.NormalizeDay(now)

	details := []OverdueOrder{}
	for _, o := range orders {
		if o.Status != store.StatusNew || !strings.EqualFold(o.CompanyName, company) {
			continue
		}
		ordered, ok := utils.ParseDate(o.OrderDate)
		if !ok || !w.contains(ordered) {
			continue
		}
		days := utils.DaysBetween(ordered, today)
		if days <= lateAfterDays {
			continue
		}
		details = append(details, OverdueOrder{Order: o, DaysSinceOrder: days, Bucket: agingBucket(days)})
	}
	return details
}

func topN(byCompany map[string]float64, n int) []Point {
	points := make([]Point, 0, len(byCompany))
	for company, value := range byCompany {
		points = append(points, Point{Label: company, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	if len(points) > n {
		points = points[:n]
	}
	return points
}

package metrics

import (
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

// Aging buckets for unpaid orders, in display order. Ages below 5 or at 30
// and beyond fall outside this view.
const (
	BucketExactly5 = "5 dias"
	Bucket6To10    = "6 a 10 dias"
	Bucket11To29   = "11 a 29 dias"
)

var agingBucketOrder = []string{BucketExactly5, Bucket6To10, Bucket11To29}

func agingBucket(days int) string {
	switch {
	case days == 5:
		return BucketExactly5
	case days >= 6 && days <= 10:
		return Bucket6To10
	case days >= 11 && days < 30:
		return Bucket11To29
	default:
		return ""
	}
}

// overdueOrders returns the window's orders still in status Novo aged 5 to
// 29 days, each annotated with its age and bucket.
func overdueOrders(orders []store.Order, w Window, now time.Time) []OverdueOrder {
	today := utils.NormalizeDay(now)

	var overdue []OverdueOrder
	for _, o := range orders {
		if o.Status != store.StatusNew {
			continue
		}
		date, ok := utils.ParseDate(o.OrderDate)
		if !ok || !w.contains(date) {
			continue
		}
		days := utils.DaysBetween(date, today)
		bucket := agingBucket(days)
		if bucket == "" {
			continue
		}
		overdue = append(overdue, OverdueOrder{Order: o, DaysSinceOrder: days, Bucket: bucket})
	}
	return overdue
}

// OverdueAging buckets the window's unpaid orders by how many days past the
// order date they are, against the current date.
func OverdueAging(orders []store.Order, w Window, now time.Time) []Point {
	counts := make(map[string]int)
	for _, o := range overdueOrders(orders, w, now) {
		counts[o.Bucket]++
	}

	points := make([]Point, 0, len(agingBucketOrder))
	for _, bucket := range agingBucketOrder {
		if counts[bucket] > 0 {
			points = append(points, Point{Label: bucket, Value: float64(counts[bucket])})
		}
	}
	return points
}

// OverdueDetails returns the detail rows behind one clicked aging bucket.
// No selection means no rows.
func OverdueDetails(orders []store.Order, w Window, now time.Time, bucket string) []OverdueOrder {
	if bucket == "" {
		return []OverdueOrder{}
	}
	details := []OverdueOrder{}
	for _, o := range overdueOrders(orders, w, now) {
		if o.Bucket == bucket {
			details = append(details, o)
		}
	}
	return details
}

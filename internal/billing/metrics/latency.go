package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vtfinance/billing_dashboard/internal/billing/utils"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

// Latency buckets for issue-to-payment time, in display order.
const (
	LatencyBucket0To5  = "0-5 dias"
	LatencyBucket6To10 = "6-10 dias"
	LatencyBucketOver  = "10+ dias"
)

var latencyBucketOrder = []string{LatencyBucket0To5, LatencyBucket6To10, LatencyBucketOver}

func latencyBucket(days int) string {
	switch {
	case days <= 5:
		return LatencyBucket0To5
	case days <= 10:
		return LatencyBucket6To10
	default:
		return LatencyBucketOver
	}
}

// PaymentLatency computes the mean days between issue and payment per month
// of the payment date, plus the percentage of payments (and the amount
// paid) per latency bucket and month. Payments missing either date are
// skipped; the window filters on the payment date.
func PaymentLatency(payments []store.Payment, w Window) LatencySeries {
	type bucketAgg struct {
		count  int
		amount float64
	}
	latencies := make(map[utils.Month][]float64)
	buckets := make(map[utils.Month]map[string]bucketAgg)
	totals := make(map[utils.Month]int)

	for _, p := range payments {
		issued, ok := utils.ParseDate(p.IssueDate)
		if !ok {
			continue
		}
		paidAt, ok := utils.ParseDate(p.PaymentDate)
		if !ok || !w.contains(paidAt) {
			continue
		}
		days := utils.DaysBetween(issued, paidAt)
		m := utils.MonthOf(paidAt)

		latencies[m] = append(latencies[m], float64(days))
		totals[m]++

		if buckets[m] == nil {
			buckets[m] = make(map[string]bucketAgg)
		}
		bucket := latencyBucket(days)
		agg := buckets[m][bucket]
		agg.count++
		if value, ok := utils.ParseCurrency(p.Value); ok {
			agg.amount += value
		}
		buckets[m][bucket] = agg
	}

	months := make([]utils.Month, 0, len(latencies))
	for m := range latencies {
		months = append(months, m)
	}
	utils.SortMonths(months)

	series := LatencySeries{MeanByMonth: []Point{}, Buckets: []LatencyBucketShare{}}
	for _, m := range months {
		series.MeanByMonth = append(series.MeanByMonth, Point{
			Label: m.Label(),
			Value: stat.Mean(latencies[m], nil),
		})
		for _, bucket := range latencyBucketOrder {
			agg, ok := buckets[m][bucket]
			if !ok {
				continue
			}
			series.Buckets = append(series.Buckets, LatencyBucketShare{
				Month:      m.Label(),
				Bucket:     bucket,
				Percent:    float64(agg.count) / float64(totals[m]) * 100,
				PaidAmount: agg.amount,
			})
		}
	}
	return series
}

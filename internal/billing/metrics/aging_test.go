package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vtfinance/billing_dashboard/internal/store"
)

var agingNow = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func TestOverdueAgingBuckets(t *testing.T) {
	orders := []store.Order{
		testOrder("1", "Acme", "10/03/2025", "R$ 100,00", store.StatusNew), // 5 days
		testOrder("2", "Acme", "05/03/2025", "R$ 100,00", store.StatusNew), // 10 days
		testOrder("3", "Beta", "20/02/2025", "R$ 100,00", store.StatusNew), // 23 days
		testOrder("4", "Beta", "14/02/2025", "R$ 100,00", store.StatusNew), // 29 days
		testOrder("5", "Beta", "13/02/2025", "R$ 100,00", store.StatusNew), // 30 days, out
		testOrder("6", "Beta", "11/03/2025", "R$ 100,00", store.StatusNew), // 4 days, out
		testOrder("7", "Beta", "05/03/2025", "R$ 100,00", store.StatusPaid),
	}

	points := OverdueAging(orders, Window{}, agingNow)
	require.Equal(t, []Point{
		{Label: BucketExactly5, Value: 1},
		{Label: Bucket6To10, Value: 1},
		{Label: Bucket11To29, Value: 2},
	}, points)
}

func TestOverdueAgingOmitsEmptyBuckets(t *testing.T) {
	orders := []store.Order{
		testOrder("1", "Acme", "10/03/2025", "R$ 100,00", store.StatusNew),
	}
	points := OverdueAging(orders, Window{}, agingNow)
	require.Equal(t, []Point{{Label: BucketExactly5, Value: 1}}, points)
}

func TestOverdueDetails(t *testing.T) {
	orders := []store.Order{
		testOrder("1", "Acme", "10/03/2025", "R$ 100,00", store.StatusNew),
		testOrder("2", "Beta", "05/03/2025", "R$ 100,00", store.StatusNew),
	}

	details := OverdueDetails(orders, Window{}, agingNow, Bucket6To10)
	require.Len(t, details, 1)
	require.Equal(t, "2", details[0].OrderID)
	require.Equal(t, 10, details[0].DaysSinceOrder)
	require.Equal(t, Bucket6To10, details[0].Bucket)

	require.Empty(t, OverdueDetails(orders, Window{}, agingNow, ""))
	require.Empty(t, OverdueDetails(orders, Window{}, agingNow, "whatever"))
}

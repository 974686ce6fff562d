package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vtfinance/billing_dashboard/internal/store"
)

var rankingNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestDebtorsByCount(t *testing.T) {
	orders := []store.Order{
		testOrder("100", "Acme", "01/03/2025", "R$ 100,00", store.StatusPaid),
		testOrder("101", "Beta", "01/03/2025", "R$ 100,00", store.StatusPaid),
		testOrder("102", "Acme", "01/03/2025", "R$ 100,00", store.StatusPaid),
	}
	payments := []store.Payment{
		testPayment("100", "Acme", "01/03/2025", "10/03/2025", "R$ 100,00"), // 9 days late
		testPayment("102", "Acme", "01/03/2025", "12/03/2025", "R$ 100,00"), // 11 days late
		testPayment("101", "Beta", "01/03/2025", "03/03/2025", "R$ 100,00"), // on time
		testPayment("999", "Gama", "01/03/2025", "14/03/2025", "R$ 100,00"), // no matching order
	}

	points := DebtorsByCount(orders, payments, Window{})
	require.Equal(t, []Point{{Label: "Acme", Value: 2}}, points)
}

func TestDebtorsByCountWindowFiltersOrderDate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	w := Window{Start: &start, End: &end}

	orders := []store.Order{
		// Ordered before the window, paid late inside it: not counted.
		testOrder("100", "Acme", "10/01/2025", "R$ 100,00", store.StatusPaid),
		// Ordered inside the window, paid late after it: still counted.
		testOrder("101", "Beta", "20/03/2025", "R$ 100,00", store.StatusPaid),
	}
	payments := []store.Payment{
		testPayment("100", "Acme", "01/03/2025", "10/03/2025", "R$ 100,00"),
		testPayment("101", "Beta", "20/03/2025", "10/04/2025", "R$ 100,00"),
	}

	points := DebtorsByCount(orders, payments, w)
	require.Equal(t, []Point{{Label: "Beta", Value: 1}}, points)
}

func TestDebtorsByCountTruncatesToTen(t *testing.T) {
	var orders []store.Order
	var payments []store.Payment
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("%d", 100+i)
		company := fmt.Sprintf("Empresa %02d", i)
		orders = append(orders, testOrder(id, company, "01/03/2025", "R$ 100,00", store.StatusPaid))
		// Each company settles one more payment late than the last.
		for j := 0; j <= i; j++ {
			payments = append(payments, store.Payment{
				OrderNumber: id,
				CompanyName: company,
				IssueDate:   "01/03/2025",
				PaymentDate: "10/03/2025",
				Value:       fmt.Sprintf("R$ %d,00", j+1),
			})
		}
	}

	points := DebtorsByCount(orders, payments, Window{})
	require.Len(t, points, 10)
	require.Equal(t, "Empresa 11", points[0].Label)
	require.InDelta(t, 12, points[0].Value, 1e-9)
	require.Equal(t, "Empresa 02", points[9].Label)
}

func TestDebtorsByAmount(t *testing.T) {
	orders := []store.Order{
		testOrder("1", "Acme", "05/03/2025", "R$ 100,00", store.StatusNew), // 10 days old
		testOrder("2", "Acme", "06/03/2025", "R$ 50,00", store.StatusNew),  // 9 days old
		testOrder("3", "Beta", "08/03/2025", "R$ 300,00", store.StatusNew), // 7 days old
		testOrder("4", "Beta", "12/03/2025", "R$ 999,00", store.StatusNew), // 3 days old, not overdue
		testOrder("5", "Gama", "05/03/2025", "R$ 900,00", store.StatusPaid),
	}

	points := DebtorsByAmount(orders, Window{}, rankingNow)
	require.Equal(t, []Point{
		{Label: "Beta", Value: 300},
		{Label: "Acme", Value: 150},
	}, points)
}

func TestDebtorDetails(t *testing.T) {
	orders := []store.Order{
		testOrder("1", "Acme", "05/03/2025", "R$ 100,00", store.StatusNew),
		testOrder("2", "Beta", "05/03/2025", "R$ 300,00", store.StatusNew),
	}

	details := DebtorDetails(orders, Window{}, rankingNow, "acme")
	require.Len(t, details, 1)
	require.Equal(t, "1", details[0].OrderID)

	require.Empty(t, DebtorDetails(orders, Window{}, rankingNow, "Gama"))
}

func TestDebtorDetailsMatchesAmountRanking(t *testing.T) {
	orders := []store.Order{
		// 43 days old: past the aging view's cap but still a debtor.
		testOrder("1", "Acme", "31/01/2025", "R$ 100,00", store.StatusNew),
		// Exactly 5 days old: in the aging view, not yet a debtor.
		testOrder("2", "Acme", "10/03/2025", "R$ 50,00", store.StatusNew),
	}

	ranked := DebtorsByAmount(orders, Window{}, rankingNow)
	require.Equal(t, []Point{{Label: "Acme", Value: 100}}, ranked)

	details := DebtorDetails(orders, Window{}, rankingNow, "Acme")
	require.Len(t, details, 1)
	require.Equal(t, "1", details[0].OrderID)
	require.Equal(t, 43, details[0].DaysSinceOrder)
}

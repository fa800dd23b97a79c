package reports

import (
	"math"
	"testing"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func sampleData() ([]BillFact, []OrderFact) {
	bills := []BillFact{
		{Customer: "Alice", Total: 30.0, Paid: true, IssueDate: day(2, 10), OrderDate: day(1, 10)},
		{Customer: "Bob", Total: 20.0, Paid: false, IssueDate: day(2, 12), OrderDate: day(2, 6)},
		{Customer: "Alice", Total: 10.0, Paid: true, IssueDate: day(3, 9), OrderDate: day(3, 8)},
	}
	orders := []OrderFact{
		{Customer: "Alice", Total: 30.0, Date: day(1, 10), State: models.StateCompleted, Products: []string{"chicken - white", "chicken - brown"}},
		{Customer: "Bob", Total: 20.0, Date: day(2, 6), State: models.StatePending, Products: []string{"chicken - white"}},
		{Customer: "Alice", Total: 10.0, Date: day(3, 8), State: models.StateCancelled, Products: []string{"quail - speckled"}},
	}
	return bills, orders
}

func TestBuild(t *testing.T) {
	bills, orders := sampleData()
	snap := Build(bills, orders)

	t.Run("totals and counts", func(t *testing.T) {
		if math.Abs(snap.TotalSales-60.0) > 0.01 {
			t.Errorf("TotalSales = %v, want 60.0", snap.TotalSales)
		}
		if snap.TotalOrders != 3 {
			t.Errorf("TotalOrders = %d, want 3", snap.TotalOrders)
		}
		if snap.PaidOrders != 2 || snap.UnpaidOrders != 1 {
			t.Errorf("Paid/Unpaid = %d/%d, want 2/1", snap.PaidOrders, snap.UnpaidOrders)
		}
		if snap.CancelledOrders != 1 {
			t.Errorf("CancelledOrders = %d, want 1", snap.CancelledOrders)
		}
		if math.Abs(snap.AverageTicket-20.0) > 0.01 {
			t.Errorf("AverageTicket = %v, want 20.0", snap.AverageTicket)
		}
	})

	t.Run("best customer by spend", func(t *testing.T) {
		if snap.BestCustomer != "Alice" {
			t.Errorf("BestCustomer = %q, want Alice", snap.BestCustomer)
		}
	})

	t.Run("most sold product", func(t *testing.T) {
		if snap.MostSoldProduct != "chicken - white" {
			t.Errorf("MostSoldProduct = %q, want chicken - white", snap.MostSoldProduct)
		}
	})

	t.Run("last order date formatted", func(t *testing.T) {
		if snap.LastOrderDate != "2026-03-03 08:00" {
			t.Errorf("LastOrderDate = %q, want 2026-03-03 08:00", snap.LastOrderDate)
		}
	})

	t.Run("day with least sales", func(t *testing.T) {
		// day 2 sums 50, day 3 sums 10
		if snap.DayWithLeastSales != "2026-03-03" {
			t.Errorf("DayWithLeastSales = %q, want 2026-03-03", snap.DayWithLeastSales)
		}
	})

	t.Run("order to bill latency", func(t *testing.T) {
		// 24h + 6h + 1h over three bills
		want := (24.0 + 6.0 + 1.0) / 3.0
		if math.Abs(snap.AvgOrderToBillHours-want) > 0.01 {
			t.Errorf("AvgOrderToBillHours = %v, want %v", snap.AvgOrderToBillHours, want)
		}
	})

	t.Run("orders per day sorted ascending", func(t *testing.T) {
		if len(snap.OrdersPerDay) != 3 {
			t.Fatalf("OrdersPerDay has %d points, want 3", len(snap.OrdersPerDay))
		}
		for i := 1; i < len(snap.OrdersPerDay); i++ {
			if snap.OrdersPerDay[i-1].Label >= snap.OrdersPerDay[i].Label {
				t.Errorf("OrdersPerDay not sorted: %q before %q", snap.OrdersPerDay[i-1].Label, snap.OrdersPerDay[i].Label)
			}
		}
	})

	t.Run("orders per state uses fixed buckets", func(t *testing.T) {
		if len(snap.OrdersPerState) != len(models.KnownStates) {
			t.Fatalf("OrdersPerState has %d points, want %d", len(snap.OrdersPerState), len(models.KnownStates))
		}
		got := map[string]float64{}
		for _, p := range snap.OrdersPerState {
			got[p.Label] = p.Value
		}
		if got["PENDING"] != 1 || got["COMPLETED"] != 1 || got["CANCELLED"] != 1 || got["SHIPPED"] != 0 {
			t.Errorf("OrdersPerState = %v", got)
		}
	})

	t.Run("paid distribution", func(t *testing.T) {
		if len(snap.PaidDistribution) != 2 {
			t.Fatalf("PaidDistribution has %d points, want 2", len(snap.PaidDistribution))
		}
		if snap.PaidDistribution[0].Value != 2 || snap.PaidDistribution[1].Value != 1 {
			t.Errorf("PaidDistribution = %v", snap.PaidDistribution)
		}
	})

	t.Run("top customers descending", func(t *testing.T) {
		if len(snap.TopCustomers) != 2 {
			t.Fatalf("TopCustomers has %d points, want 2", len(snap.TopCustomers))
		}
		if snap.TopCustomers[0].Label != "Alice" || snap.TopCustomers[1].Label != "Bob" {
			t.Errorf("TopCustomers = %v", snap.TopCustomers)
		}
	})
}

func TestBuildEmpty(t *testing.T) {
	bills, orders := sampleData()

	for _, tt := range []struct {
		name   string
		bills  []BillFact
		orders []OrderFact
	}{
		{"no data at all", nil, nil},
		{"bills without orders", bills, nil},
		{"orders without bills", nil, orders},
	} {
		t.Run(tt.name, func(t *testing.T) {
			snap := Build(tt.bills, tt.orders)

			if snap.TotalSales != 0 || snap.TotalOrders != 0 {
				t.Errorf("Expected zero totals, got sales=%v orders=%d", snap.TotalSales, snap.TotalOrders)
			}
			for name, got := range map[string]string{
				"BestCustomer":      snap.BestCustomer,
				"MostSoldProduct":   snap.MostSoldProduct,
				"LastOrderDate":     snap.LastOrderDate,
				"DayWithLeastSales": snap.DayWithLeastSales,
			} {
				if got != NoData {
					t.Errorf("%s = %q, want %q", name, got, NoData)
				}
			}
			if snap.OrdersPerDay == nil || snap.TopCustomers == nil {
				t.Error("Expected empty slices, not nil, for chart series")
			}
			if len(snap.OrdersPerDay) != 0 || len(snap.TopCustomers) != 0 {
				t.Error("Expected empty chart series")
			}
		})
	}
}

func TestBestCustomerTieBreak(t *testing.T) {
	bills := []BillFact{
		{Customer: "Zoe", Total: 50.0, IssueDate: day(1, 10), OrderDate: day(1, 9)},
		{Customer: "Ann", Total: 50.0, IssueDate: day(1, 11), OrderDate: day(1, 9)},
	}
	if got := bestCustomer(bills); got != "Ann" {
		t.Errorf("bestCustomer tie = %q, want Ann", got)
	}
}

func TestTopNCapsAtN(t *testing.T) {
	values := map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7}
	points := topN(values, 5)
	if len(points) != 5 {
		t.Fatalf("topN returned %d points, want 5", len(points))
	}
	if points[0].Label != "g" || points[4].Label != "c" {
		t.Errorf("topN order = %v", points)
	}
}

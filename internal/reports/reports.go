// Package reports computes the statistics snapshot: KPIs and chart
// series derived from customer bills and orders. Everything here is
// pure computation over in-memory facts; loading and role filtering
// happen in the service layer.
package reports

import (
	"sort"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
)

// NoData is the sentinel used for string KPIs when the filtered
// dataset is empty.
const NoData = "N/A"

const dayFormat = "2006-01-02"

// BillFact is the slice of a bill that reporting needs.
type BillFact struct {
	Customer  string
	Total     float64
	Paid      bool
	IssueDate time.Time
	OrderDate time.Time
}

// OrderFact is the slice of an order that reporting needs. Products
// holds the "type - color" label of each line.
type OrderFact struct {
	Customer string
	Total    float64
	Date     time.Time
	State    models.OrderState
	Products []string
}

// SeriesPoint is one labeled value in a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Snapshot is the full read-only statistics view. Recomputed from
// scratch on every request; nothing here is persisted.
type Snapshot struct {
	TotalSales          float64       `json:"total_sales"`
	TotalOrders         int           `json:"total_orders"`
	PaidOrders          int           `json:"paid_orders"`
	UnpaidOrders        int           `json:"unpaid_orders"`
	AverageTicket       float64       `json:"average_ticket"`
	BestCustomer        string        `json:"best_customer"`
	MostSoldProduct     string        `json:"most_sold_product"`
	LastOrderDate       string        `json:"last_order_date"`
	DayWithLeastSales   string        `json:"day_with_least_sales"`
	CancelledOrders     int           `json:"cancelled_orders"`
	AvgOrderToBillHours float64       `json:"avg_order_to_bill_hours"`
	OrdersPerDay        []SeriesPoint `json:"orders_per_day"`
	OrdersPerState      []SeriesPoint `json:"orders_per_state"`
	PaidDistribution    []SeriesPoint `json:"paid_distribution"`
	TopCustomers        []SeriesPoint `json:"top_customers"`
	TopProducts         []SeriesPoint `json:"top_products"`
}

// Build computes the snapshot from customer-filtered bills and orders.
// If either collection is empty the zero-valued snapshot is returned
// immediately: absence of data is a normal reporting state, never an
// error.
func Build(bills []BillFact, orders []OrderFact) Snapshot {
	if len(bills) == 0 || len(orders) == 0 {
		return emptySnapshot()
	}

	snap := Snapshot{
		TotalOrders:   len(orders),
		BestCustomer:  bestCustomer(bills),
		LastOrderDate: lastOrderDate(orders),
	}

	for _, b := range bills {
		snap.TotalSales += b.Total
		if b.Paid {
			snap.PaidOrders++
		}
	}
	snap.UnpaidOrders = len(bills) - snap.PaidOrders

	var orderTotal float64
	for _, o := range orders {
		orderTotal += o.Total
		if o.State.IsCancelled() {
			snap.CancelledOrders++
		}
	}
	snap.AverageTicket = orderTotal / float64(len(orders))

	snap.MostSoldProduct = mostSoldProduct(orders)
	snap.DayWithLeastSales = dayWithLeastSales(bills)
	snap.AvgOrderToBillHours = avgOrderToBillHours(bills)

	snap.OrdersPerDay = ordersPerDay(orders)
	snap.OrdersPerState = ordersPerState(orders)
	snap.PaidDistribution = []SeriesPoint{
		{Label: "paid", Value: float64(snap.PaidOrders)},
		{Label: "unpaid", Value: float64(snap.UnpaidOrders)},
	}
	snap.TopCustomers = topN(spendByCustomer(bills), 5)
	snap.TopProducts = topN(countByProduct(orders), 5)

	return snap
}

func emptySnapshot() Snapshot {
	return Snapshot{
		BestCustomer:      NoData,
		MostSoldProduct:   NoData,
		LastOrderDate:     NoData,
		DayWithLeastSales: NoData,
		OrdersPerDay:      []SeriesPoint{},
		OrdersPerState:    []SeriesPoint{},
		PaidDistribution:  []SeriesPoint{},
		TopCustomers:      []SeriesPoint{},
		TopProducts:       []SeriesPoint{},
	}
}

func spendByCustomer(bills []BillFact) map[string]float64 {
	spend := make(map[string]float64)
	for _, b := range bills {
		spend[b.Customer] += b.Total
	}
	return spend
}

// bestCustomer returns the name with the maximum summed spend. Ties
// break to the lexicographically smallest name so the result is
// deterministic regardless of map iteration order.
func bestCustomer(bills []BillFact) string {
	spend := spendByCustomer(bills)
	if len(spend) == 0 {
		return NoData
	}

	best := ""
	bestSpend := 0.0
	for name, total := range spend {
		if best == "" || total > bestSpend || (total == bestSpend && name < best) {
			best = name
			bestSpend = total
		}
	}
	return best
}

func countByProduct(orders []OrderFact) map[string]float64 {
	counts := make(map[string]float64)
	for _, o := range orders {
		for _, label := range o.Products {
			counts[label]++
		}
	}
	return counts
}

func mostSoldProduct(orders []OrderFact) string {
	counts := countByProduct(orders)
	if len(counts) == 0 {
		return NoData
	}

	best := ""
	bestCount := 0.0
	for label, count := range counts {
		if best == "" || count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

func lastOrderDate(orders []OrderFact) string {
	var last time.Time
	for _, o := range orders {
		if o.Date.After(last) {
			last = o.Date
		}
	}
	if last.IsZero() {
		return NoData
	}
	return last.Format("2006-01-02 15:04")
}

// dayWithLeastSales picks the calendar day with the minimum summed
// bill total among days that had at least one bill.
func dayWithLeastSales(bills []BillFact) string {
	perDay := make(map[string]float64)
	for _, b := range bills {
		perDay[b.IssueDate.Format(dayFormat)] += b.Total
	}
	if len(perDay) == 0 {
		return NoData
	}

	worst := ""
	worstSum := 0.0
	for day, sum := range perDay {
		if worst == "" || sum < worstSum || (sum == worstSum && day < worst) {
			worst = day
			worstSum = sum
		}
	}
	return worst
}

// avgOrderToBillHours is the mean latency, in hours, between an order
// being placed and its bill being issued.
func avgOrderToBillHours(bills []BillFact) float64 {
	var total float64
	var n int
	for _, b := range bills {
		if b.IssueDate.IsZero() || b.OrderDate.IsZero() {
			continue
		}
		total += b.IssueDate.Sub(b.OrderDate).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func ordersPerDay(orders []OrderFact) []SeriesPoint {
	perDay := make(map[string]float64)
	for _, o := range orders {
		perDay[o.Date.Format(dayFormat)]++
	}

	points := make([]SeriesPoint, 0, len(perDay))
	for day, count := range perDay {
		points = append(points, SeriesPoint{Label: day, Value: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

// ordersPerState buckets orders into the fixed canonical state set.
// Unknown tags fall into whichever bucket matches case-insensitively,
// or are dropped; the chart stays a fixed small set of labels.
func ordersPerState(orders []OrderFact) []SeriesPoint {
	points := make([]SeriesPoint, len(models.KnownStates))
	for i, state := range models.KnownStates {
		points[i] = SeriesPoint{Label: string(state)}
		for _, o := range orders {
			if models.ParseState(string(o.State)) == state {
				points[i].Value++
			}
		}
	}
	return points
}

// topN returns the n largest entries of a label->value map, descending
// by value, ties broken lexicographically by label.
func topN(values map[string]float64, n int) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(values))
	for label, value := range values {
		points = append(points, SeriesPoint{Label: label, Value: value})
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

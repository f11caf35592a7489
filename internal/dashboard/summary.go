package dashboard

import (
	"sort"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold is the dashboard's low-stock cut-off (strictly below).
	LowStockThreshold = 10
	RecentOrderCount  = 5
)

// Snapshot is the raw input of one refresh.
type Snapshot struct {
	Products []model.Product
	Orders   []model.Order
	Students []model.Student
	Activity []activity.Event
}

type Summary struct {
	Period        Period
	GeneratedAt   time.Time
	Products      int
	UnitsInStock  int
	LowStock      int
	Students      int
	PendingOrders int
	ClaimedOrders int
	Revenue       decimal.Decimal
	AverageOrder  decimal.Decimal
	RecentOrders  []model.Order
	Activity      []activity.Event
}

// Aggregate reduces a snapshot into the dashboard cards. It does not touch the network.
func Aggregate(s Snapshot, period Period, now time.Time) Summary {
	sum := Summary{
		Period:      period,
		GeneratedAt: now,
		Products:    len(s.Products),
		Students:    len(s.Students),
		Activity:    s.Activity,
	}
	for _, p := range s.Products {
		if p.Quantity > 0 {
			sum.UnitsInStock += p.Quantity
		}
		if p.Quantity < LowStockThreshold {
			sum.LowStock++
		}
	}
	for _, o := range s.Orders {
		if o.Status == model.OrderPending {
			sum.PendingOrders++
		}
	}

	claimed := ClaimedIn(s.Orders, period, now)
	sum.ClaimedOrders = len(claimed)
	sum.Revenue = Revenue(claimed)
	sum.AverageOrder = AverageOrderValue(claimed)
	sum.RecentOrders = RecentOrders(s.Orders, RecentOrderCount)
	return sum
}

// ClaimedIn keeps claimed orders created inside the window.
func ClaimedIn(orders []model.Order, period Period, now time.Time) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != model.OrderClaimed {
			continue
		}
		if period.Contains(o.CreatedAt.TimePtr(), now) {
			out = append(out, o)
		}
	}
	return out
}

func Revenue(orders []model.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Amount)
	}
	return total
}

// AverageOrderValue is the mean amount, rounded to centavos. Empty input yields zero.
func AverageOrderValue(orders []model.Order) decimal.Decimal {
	if len(orders) == 0 {
		return decimal.Zero
	}
	amounts := make(stats.Float64Data, len(orders))
	for i, o := range orders {
		amounts[i] = o.Amount.InexactFloat64()
	}
	mean, err := amounts.Mean()
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(mean).Round(2)
}

// RecentOrders returns the n newest orders by creation time; undated orders sort last.
func RecentOrders(orders []model.Order, n int) []model.Order {
	sorted := append([]model.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt.TimePtr(), sorted[j].CreatedAt.TimePtr()
		switch {
		case a == nil && b == nil:
			return sorted[i].ID > sorted[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return sorted[i].ID > sorted[j].ID
		}
		return a.After(*b)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

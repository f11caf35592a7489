package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	orderRepo "github.com/fekuna/bao-console/internal/order/repository"
	orderUC "github.com/fekuna/bao-console/internal/order/usecase"
	productRepo "github.com/fekuna/bao-console/internal/product/repository"
	productUC "github.com/fekuna/bao-console/internal/product/usecase"
	studentRepo "github.com/fekuna/bao-console/internal/student/repository"
	studentUC "github.com/fekuna/bao-console/internal/student/usecase"
	"github.com/fekuna/bao-console/internal/testutil/fakebao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 15, 14, 0, 0, 0, time.Local)

func mkOrder(id int64, status model.OrderStatus, amount string, created *time.Time) model.Order {
	o := model.Order{ID: id, ProductID: 1, Status: status, Amount: decimal.RequireFromString(amount)}
	if created != nil {
		ts := model.NewTimestamp(*created)
		o.CreatedAt = &ts
	}
	return o
}

func at(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestPeriodSince(t *testing.T) {
	since, ok := PeriodToday.Since(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.Local), since)

	since, _ = PeriodWeek.Since(now)
	assert.Equal(t, now.AddDate(0, 0, -7), since)

	since, _ = PeriodMonth.Since(now)
	assert.Equal(t, time.Date(2025, 4, 15, 14, 0, 0, 0, time.Local), since)

	since, _ = PeriodYear.Since(now)
	assert.Equal(t, time.Date(2024, 5, 15, 14, 0, 0, 0, time.Local), since)

	_, ok = PeriodAll.Since(now)
	assert.False(t, ok)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	p, err = ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, p)

	_, err = ParsePeriod("decade")
	assert.Error(t, err)
}

func TestRevenueWindows(t *testing.T) {
	orders := []model.Order{
		mkOrder(1, model.OrderClaimed, "100", at(2*time.Hour)),      // today
		mkOrder(2, model.OrderClaimed, "50.25", at(3*24*time.Hour)), // this week
		mkOrder(3, model.OrderClaimed, "200", at(20*24*time.Hour)),  // this month
		mkOrder(4, model.OrderClaimed, "400", at(200*24*time.Hour)), // this year
		mkOrder(5, model.OrderClaimed, "800", at(800*24*time.Hour)), // older
		mkOrder(6, model.OrderClaimed, "7", nil),                    // undated
		mkOrder(7, model.OrderPending, "1000", at(time.Hour)),
		mkOrder(8, model.OrderCancelled, "1000", at(time.Hour)),
	}

	cases := map[Period]string{
		PeriodToday: "100",
		PeriodWeek:  "150.25",
		PeriodMonth: "350.25",
		PeriodYear:  "750.25",
		PeriodAll:   "1557.25",
	}
	for period, want := range cases {
		got := Revenue(ClaimedIn(orders, period, now))
		assert.Equal(t, want, got.String(), "period %s", period)
	}
}

func TestAggregate(t *testing.T) {
	snap := Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Pen", Quantity: 0},
			{ID: 2, Name: "Paper", Quantity: 9},
			{ID: 3, Name: "Gown", Quantity: 10},
			{ID: 4, Name: "Book", Quantity: 25},
		},
		Orders: []model.Order{
			mkOrder(1, model.OrderClaimed, "100", at(5*time.Hour)),
			mkOrder(2, model.OrderClaimed, "300", at(4*time.Hour)),
			mkOrder(3, model.OrderPending, "20", at(3*time.Hour)),
			mkOrder(4, model.OrderPending, "20", at(2*time.Hour)),
			mkOrder(5, model.OrderReady, "20", at(1*time.Hour)),
			mkOrder(6, model.OrderPending, "20", nil),
		},
		Students: []model.Student{{ID: 1}, {ID: 2}},
	}

	sum := Aggregate(snap, PeriodToday, now)

	assert.Equal(t, 4, sum.Products)
	assert.Equal(t, 44, sum.UnitsInStock)
	// quantity 10 is "low stock" by status but not under the dashboard's < 10 cut-off
	assert.Equal(t, 2, sum.LowStock)
	assert.Equal(t, 2, sum.Students)
	assert.Equal(t, 3, sum.PendingOrders)
	assert.Equal(t, 2, sum.ClaimedOrders)
	assert.Equal(t, "400", sum.Revenue.String())
	assert.Equal(t, "200", sum.AverageOrder.String())

	require.Len(t, sum.RecentOrders, RecentOrderCount)
	ids := make([]int64, len(sum.RecentOrders))
	for i, o := range sum.RecentOrders {
		ids[i] = o.ID
	}
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids)
}

func TestAverageOrderValueEmpty(t *testing.T) {
	assert.True(t, AverageOrderValue(nil).IsZero())
}

func TestServiceSummary(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	srv.SetClock(func() time.Time { return now.Add(-time.Hour) })
	pen := srv.AddProduct(model.Product{Name: "Pen", Category: model.CategorySupplies, Price: decimal.NewFromInt(15), Quantity: 4})
	srv.AddProduct(model.Product{Name: "Calculus", Category: model.CategoryBook, Price: decimal.NewFromInt(800), Quantity: 40})
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderClaimed, Amount: decimal.NewFromInt(30)})
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(15)})
	srv.AddStudent(model.Student{FirstName: "Lia", LastName: "Cruz", College: "CCS", Program: "BSIT"})

	log := logger.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Minute, log)
	client := srv.AdminClient()
	feed := activity.NewFeed(5)
	feed.Record(activity.NewEvent(activity.KindUpdated, activity.EntityProduct, pen.ID, "Product Pen updated"))

	svc := NewService(
		productUC.NewProductUseCase(productRepo.NewHTTPRepository(client), store, nil, log),
		orderUC.NewOrderUseCase(orderRepo.NewHTTPRepository(client), productRepo.NewHTTPRepository(client), store, nil, log),
		studentUC.NewStudentUseCase(studentRepo.NewHTTPRepository(client), store, nil, log),
		feed, store, log,
	)
	svc.now = func() time.Time { return now }

	sum, err := svc.Summary(context.Background(), PeriodToday)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Products)
	assert.Equal(t, 1, sum.LowStock)
	assert.Equal(t, 1, sum.PendingOrders)
	assert.Equal(t, "30", sum.Revenue.String())
	assert.Equal(t, 1, sum.Students)
	require.Len(t, sum.Activity, 1)
	assert.Equal(t, activity.KindUpdated, sum.Activity[0].Kind)
	assert.Equal(t, "Pen", sum.RecentOrders[0].ProductName(nil))

	// a second refresh is served from the cache
	_, err = svc.Summary(context.Background(), PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Count("GET /orders"))
	assert.Equal(t, 1, srv.Count("GET /products"))
	assert.Equal(t, 1, srv.Count("GET /students"))

	// a reload picks up orders placed by another client
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(15)})
	require.NoError(t, svc.Reload(context.Background()))
	sum, err = svc.Summary(context.Background(), PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.PendingOrders)
	assert.Equal(t, 2, srv.Count("GET /orders"))
}

func TestServiceSummaryToleratesStudentFailure(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	srv.AddAccount("lia@bao.edu", "secret1", model.RoleStudent, "Lia", "Cruz")
	client := srv.NewClient(srv.Session("lia@bao.edu"))

	log := logger.NewNop()
	svc := NewService(
		productUC.NewProductUseCase(productRepo.NewHTTPRepository(client), nil, nil, log),
		orderUC.NewOrderUseCase(orderRepo.NewHTTPRepository(client), productRepo.NewHTTPRepository(client), nil, nil, log),
		studentUC.NewStudentUseCase(studentRepo.NewHTTPRepository(client), nil, nil, log),
		nil, nil, log,
	)

	sum, err := svc.Summary(context.Background(), PeriodAll)
	require.NoError(t, err)
	assert.Zero(t, sum.Students)
	assert.Empty(t, sum.Activity)
}

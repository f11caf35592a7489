package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order/dto"
	"github.com/fekuna/bao-console/internal/order/repository"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	productRepo "github.com/fekuna/bao-console/internal/product/repository"
	"github.com/fekuna/bao-console/internal/testutil/fakebao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv  *fakebao.Server
	uc   *orderUseCase
	feed *activity.Feed
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := fakebao.New()
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Minute, log)
	bus := activity.NewBus(log)
	feed := activity.NewFeed(10)
	require.NoError(t, activity.Wire(bus, feed, store, log))

	client := srv.AdminClient()
	uc := NewOrderUseCase(repository.NewHTTPRepository(client), productRepo.NewHTTPRepository(client), store, bus, log)
	return &fixture{srv: srv, uc: uc.(*orderUseCase), feed: feed}
}

func TestCreateOrderComputesAmount(t *testing.T) {
	f := setup(t)
	p := f.srv.AddProduct(model.Product{Name: "Lab Gown", Category: model.CategoryUniform, Price: decimal.RequireFromString("275.50"), Quantity: 30})
	pickup := time.Date(2030, 6, 1, 9, 0, 0, 0, time.Local)

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{ProductID: p.ID, Quantity: 3, DateToClaim: pickup})
	require.NoError(t, err)

	assert.Equal(t, "826.5", o.Amount.String())
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Equal(t, "Lab Gown", o.ProductName(nil))

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(f.srv.LastBody("POST /orders"), &sent))
	assert.Equal(t, "2030-06-01T09:00:00", sent["dateToClaim"])
	assert.Equal(t, "pending", sent["status"])
	assert.EqualValues(t, 826.5, sent["amount"])
}

func TestCreateOrderValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	future := time.Now().Add(48 * time.Hour)

	_, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{Quantity: 1, DateToClaim: future})
	assert.EqualError(t, err, "Product is required")

	_, err = f.uc.CreateOrder(ctx, &dto.CreateOrderInput{ProductID: 1, Quantity: 0, DateToClaim: future})
	assert.EqualError(t, err, "Quantity must be at least 1")

	_, err = f.uc.CreateOrder(ctx, &dto.CreateOrderInput{ProductID: 1, Quantity: 1})
	assert.EqualError(t, err, "Pickup date is required")

	_, err = f.uc.CreateOrder(ctx, &dto.CreateOrderInput{ProductID: 1, Quantity: 1, DateToClaim: future, Status: "lost"})
	assert.True(t, apperrors.IsValidation(err))

	assert.Zero(t, f.srv.Requests())

	_, err = f.uc.CreateOrder(ctx, &dto.CreateOrderInput{ProductID: 42, Quantity: 1, DateToClaim: future})
	assert.EqualError(t, err, "Product #42 does not exist")
	assert.Zero(t, f.srv.Count("POST /orders"))
}

func TestListOrdersFiltersAndUnknownProduct(t *testing.T) {
	f := setup(t)
	pen := f.srv.AddProduct(model.Product{Name: "Ballpen", Category: model.CategorySupplies, Price: decimal.NewFromInt(12), Quantity: 50})
	f.srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(24)})
	f.srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderClaimed, Amount: decimal.NewFromInt(12)})
	f.srv.AddOrder(model.Order{ProductID: 999, Status: model.OrderPending, Amount: decimal.NewFromInt(100)})
	ctx := context.Background()

	all, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Status: "all"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, model.UnknownProductName, all[2].ProductName(nil))

	pending, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Status: "Pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	byName, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Search: "BALLPEN"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	unknown, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Search: "unknown"})
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.EqualValues(t, 3, unknown[0].ID)

	again, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Search: "BALLPEN"})
	require.NoError(t, err)
	assert.Equal(t, byName, again)
	assert.Equal(t, 1, f.srv.Count("GET /orders"))
}

func TestUpdateOrderClaimedStampsDate(t *testing.T) {
	f := setup(t)
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)
	f.uc.now = func() time.Time { return fixed }
	pen := f.srv.AddProduct(model.Product{Name: "Ballpen", Category: model.CategorySupplies, Price: decimal.NewFromInt(12), Quantity: 50})
	o := f.srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderReady, Amount: decimal.NewFromInt(12)})

	status := "Claimed"
	updated, err := f.uc.UpdateOrder(context.Background(), &dto.UpdateOrderInput{ID: o.ID, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.OrderClaimed, updated.Status)
	require.NotNil(t, updated.DateClaimed)
	assert.True(t, fixed.Equal(updated.DateClaimed.Time))

	recent := f.feed.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, activity.KindStatusChanged, recent[0].Kind)
	assert.Equal(t, "Order #1 status changed to claimed", recent[0].Description)
}

func TestUpdateOrderNoChangeSendsNothing(t *testing.T) {
	f := setup(t)
	o := f.srv.AddOrder(model.Order{ProductID: 1, Status: model.OrderPending, Amount: decimal.NewFromInt(12)})

	status := "pending"
	got, err := f.uc.UpdateOrder(context.Background(), &dto.UpdateOrderInput{ID: o.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Zero(t, f.srv.Count("PUT /orders/:id"))
}

func TestUpdateOrderServerFailure(t *testing.T) {
	f := setup(t)
	o := f.srv.AddOrder(model.Order{ProductID: 1, Status: model.OrderPending, Amount: decimal.NewFromInt(12)})
	f.srv.FailNext("PUT /orders/:id", http.StatusInternalServerError, "database is locked")

	status := "ready"
	_, err := f.uc.UpdateOrder(context.Background(), &dto.UpdateOrderInput{ID: o.ID, Status: &status})
	assert.EqualError(t, err, "failed to update order: database is locked")
}

func TestDeleteOrderRefreshesList(t *testing.T) {
	f := setup(t)
	o := f.srv.AddOrder(model.Order{ProductID: 1, Status: model.OrderPending, Amount: decimal.NewFromInt(12)})
	ctx := context.Background()

	before, err := f.uc.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, f.uc.DeleteOrder(ctx, o.ID))

	after, err := f.uc.ListOrders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, after)
	assert.Equal(t, 2, f.srv.Count("GET /orders"))
}

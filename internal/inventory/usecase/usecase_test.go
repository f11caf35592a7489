package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/inventory"
	"github.com/fekuna/bao-console/internal/inventory/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/product/repository"
	"github.com/fekuna/bao-console/internal/testutil/fakebao"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv    *fakebao.Server
	feed   *activity.Feed
	locker *inventory.LocalLocker
	uc     inventory.UseCase
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
	locker := inventory.NewLocalLocker()

	return &fixture{
		srv:    srv,
		feed:   feed,
		locker: locker,
		uc:     NewInventoryUseCase(repository.NewHTTPRepository(srv.AdminClient()), locker, store, bus, log),
	}
}

func (f *fixture) product(name string, qty int) model.Product {
	return f.srv.AddProduct(model.Product{
		Name: name, Category: model.CategorySupplies, Price: decimal.NewFromInt(12), Quantity: qty,
		StoredStatus: string(model.DeriveStatus(qty)),
	})
}

func TestAdjustStockAddsUnitsAndRederivesStatus(t *testing.T) {
	f := setup(t)
	p := f.product("Ballpen", 4)

	m, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Change: 20, Reason: "restock"})
	require.NoError(t, err)

	assert.Equal(t, 4, m.QuantityBefore)
	assert.Equal(t, 24, m.QuantityAfter)
	assert.Equal(t, 20, m.Change())
	assert.True(t, m.StatusChanged())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(f.srv.LastBody("PUT /products/:id"), &body))
	assert.EqualValues(t, 24, body["quantity"])
	assert.Equal(t, "in stock", body["status"])

	recent := f.feed.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, activity.KindStatusChanged, recent[0].Kind)
	assert.Equal(t, "Product Ballpen status changed to in stock (restock)", recent[0].Description)
}

func TestAdjustStockSetRecordsCount(t *testing.T) {
	f := setup(t)
	p := f.product("Notebook", 30)
	zero := 0

	m, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Set: &zero})
	require.NoError(t, err)
	assert.Equal(t, model.StatusOutOfStock, m.Product.Status())

	stored, ok := f.srv.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, 0, stored.Quantity)
}

func TestAdjustStockUnchangedSendsNoUpdate(t *testing.T) {
	f := setup(t)
	p := f.product("Ruler", 15)
	same := 15

	m, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Set: &same})
	require.NoError(t, err)
	assert.Zero(t, m.Change())
	assert.Zero(t, f.srv.Count("PUT /products/:id"))
	assert.Empty(t, f.feed.Recent(1))
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	f := setup(t)
	p := f.product("Ballpen", 3)

	_, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Change: -5})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Insufficient stock: Ballpen has 3", err.Error())
	assert.Zero(t, f.srv.Count("PUT /products/:id"))
}

func TestAdjustStockValidatesBeforeRequests(t *testing.T) {
	f := setup(t)
	neg := -1

	tests := []struct {
		name  string
		input dto.AdjustStockInput
		want  string
	}{
		{"no product", dto.AdjustStockInput{Change: 1}, "Product is required"},
		{"zero change", dto.AdjustStockInput{ProductID: 1}, "Change must not be zero"},
		{"negative count", dto.AdjustStockInput{ProductID: 1, Set: &neg}, "Quantity must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := f.uc.AdjustStock(context.Background(), &input)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
	assert.Zero(t, f.srv.Requests())
}

func TestAdjustStockHonoursHeldLock(t *testing.T) {
	f := setup(t)
	p := f.product("Ballpen", 3)
	ctx := context.Background()

	ok, err := f.locker.Acquire(ctx, inventory.LockKey(p.ID), "other-console", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: p.ID, Change: 1})
	assert.True(t, errors.Is(err, ErrStockLocked))
	assert.Zero(t, f.srv.Requests())

	require.NoError(t, f.locker.Release(ctx, inventory.LockKey(p.ID), "other-console"))
	_, err = f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: p.ID, Change: 1})
	assert.NoError(t, err)
}

func TestAdjustStockReleasesLockOnFailure(t *testing.T) {
	f := setup(t)
	p := f.product("Ballpen", 3)
	f.srv.FailNext("PUT /products/:id", 500, "database is locked")

	_, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Change: 1})
	require.Error(t, err)
	assert.Equal(t, "failed to adjust stock: database is locked", err.Error())

	_, err = f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, Change: 1})
	assert.NoError(t, err)
}

func TestListLowStock(t *testing.T) {
	f := setup(t)
	f.product("Notebook", 8)
	f.product("Ballpen", 2)
	f.product("Eraser", 0)
	f.product("Paper", 40)
	ctx := context.Background()

	got, err := f.uc.ListLowStock(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ballpen", "Notebook"}, names(got))

	got, err = f.uc.ListLowStock(ctx, &dto.LowStockFilters{Threshold: 5, IncludeZero: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Eraser", "Ballpen"}, names(got))

	_, err = f.uc.ListLowStock(ctx, &dto.LowStockFilters{Threshold: -1})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 1, f.srv.Count("GET /products"))
}

func names(ps []model.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

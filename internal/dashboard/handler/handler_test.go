package handler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/dashboard"
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

func TestWatchRefreshRefetches(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	pen := srv.AddProduct(model.Product{Name: "Ballpen", Category: model.CategorySupplies, Price: decimal.NewFromInt(12), Quantity: 30})
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(12)})

	log := logger.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Hour, log)
	client := srv.AdminClient()
	svc := dashboard.NewService(
		productUC.NewProductUseCase(productRepo.NewHTTPRepository(client), store, nil, log),
		orderUC.NewOrderUseCase(orderRepo.NewHTTPRepository(client), productRepo.NewHTTPRepository(client), store, nil, log),
		studentUC.NewStudentUseCase(studentRepo.NewHTTPRepository(client), store, nil, log),
		nil, store, log,
	)
	h := NewDashboardHandler(svc, "@every 30s", log)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, h.render(ctx, &out, dashboard.PeriodAll))

	// placed by another console; no local event reaches the cache
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(24)})
	srv.AddOrder(model.Order{ProductID: pen.ID, Status: model.OrderPending, Amount: decimal.NewFromInt(36)})

	out.Reset()
	require.NoError(t, h.refresh(ctx, &out, dashboard.PeriodAll))
	assert.Regexp(t, `Pending orders\s+3`, out.String())
	assert.Equal(t, 2, srv.Count("GET /orders"))
}

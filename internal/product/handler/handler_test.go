package handler

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/product/repository"
	"github.com/fekuna/bao-console/internal/product/usecase"
	"github.com/fekuna/bao-console/internal/testutil/fakebao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, srv *fakebao.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	log := logger.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Minute, log)
	uc := usecase.NewProductUseCase(repository.NewHTTPRepository(srv.AdminClient()), store, nil, log)
	cmd := NewProductHandler(uc, log).Command()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDeleteDeclinedSendsNoRequest(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	p := srv.AddProduct(model.Product{Name: "Pen", Category: model.CategorySupplies, Price: decimal.NewFromInt(10), Quantity: 5})

	out, err := run(t, srv, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete product #1?")
	assert.Zero(t, srv.Count("DELETE /products/:id"))

	_, ok := srv.Product(p.ID)
	assert.True(t, ok)
}

func TestDeleteConfirmed(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	srv.AddProduct(model.Product{Name: "Pen", Category: model.CategorySupplies, Price: decimal.NewFromInt(10), Quantity: 5})

	out, err := run(t, srv, "", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted product #1")
	assert.Equal(t, 1, srv.Count("DELETE /products/:id"))
}

func TestListRendersDerivedStatus(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	srv.AddProduct(model.Product{Name: "PE Shirt", Category: model.CategoryUniform, Price: decimal.RequireFromString("350"), Quantity: 0, StoredStatus: "Available"})

	out, err := run(t, srv, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PE Shirt")
	assert.Contains(t, out, "350.00")
	assert.Contains(t, out, "out of stock")
	assert.NotContains(t, out, "Available")
}

func TestCreateFromFlags(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()

	out, err := run(t, srv, "", "create", "--name", "Calculus", "--category", "book", "--price", "₱1,250.50", "--quantity", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Created product #1 Calculus (in stock)")

	products := srv.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "1250.5", products[0].Price.String())
}

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice(" 99.90 ")
	require.NoError(t, err)
	assert.Equal(t, "99.9", d.String())

	_, err = ParsePrice("abc")
	assert.Error(t, err)
}

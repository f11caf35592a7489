package shop

import (
	"context"
	"time"

	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/fekuna/bao-console/internal/uniform"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	products product.UseCase
	uniforms uniform.UseCase
	orders   order.UseCase
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewService(products product.UseCase, uniforms uniform.UseCase, orders order.UseCase, log logger.ZapLogger) *Service {
	return &Service{
		products: products,
		uniforms: uniforms,
		orders:   orders,
		logger:   log,
		now:      time.Now,
	}
}

// Catalog loads products and uniform variants concurrently and builds the storefront.
func (s *Service) Catalog(ctx context.Context) ([]Item, error) {
	var products []model.Product
	var variants []model.UniformVariant
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ListProducts(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		variants, err = s.uniforms.ListUniforms(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildCatalog(products, variants), nil
}

// NewFlow starts an order flow in the browse state.
func (s *Service) NewFlow() *Flow {
	return &Flow{svc: s, state: StateBrowse}
}

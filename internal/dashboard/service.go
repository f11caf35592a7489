package dashboard

import (
	"context"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/fekuna/bao-console/internal/student"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const activityItems = 10

type Service struct {
	products product.UseCase
	orders   order.UseCase
	students student.UseCase
	feed     *activity.Feed
	store    *cache.Store
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewService(products product.UseCase, orders order.UseCase, students student.UseCase, feed *activity.Feed, store *cache.Store, log logger.ZapLogger) *Service {
	return &Service{
		products: products,
		orders:   orders,
		students: students,
		feed:     feed,
		store:    store,
		logger:   log,
		now:      time.Now,
	}
}

// Reload drops the cached collections the summary reads, so the next Summary refetches
// changes made by other clients.
func (s *Service) Reload(ctx context.Context) error {
	return s.store.Invalidate(ctx, cache.KeyProducts, cache.KeyOrders, cache.KeyStudents)
}

// Summary fetches the three lists concurrently through the shared cache and aggregates them.
func (s *Service) Summary(ctx context.Context, period Period) (*Summary, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Products, err = s.products.ListProducts(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.Orders, err = s.orders.ListOrders(gctx, nil)
		return err
	})
	g.Go(func() error {
		students, err := s.students.ListStudents(gctx, nil)
		if err != nil {
			// a students failure leaves that card at zero
			s.logger.Warn("dashboard: students unavailable", zap.Error(err))
			students = []model.Student{}
		}
		snap.Students = students
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if s.feed != nil {
		snap.Activity = s.feed.Recent(activityItems)
	}

	sum := Aggregate(snap, period, s.now())
	s.logger.Debug("dashboard refreshed",
		zap.String("period", string(period)),
		zap.Int("products", sum.Products),
		zap.Int("orders", len(snap.Orders)),
		zap.String("revenue", sum.Revenue.StringFixed(2)),
	)
	return &sum, nil
}

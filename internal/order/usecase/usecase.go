package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order"
	"github.com/fekuna/bao-console/internal/order/dto"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo     order.Repository
	products product.Repository
	cache    *cache.Store
	events   activity.Publisher
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewOrderUseCase(repo order.Repository, products product.Repository, store *cache.Store, events activity.Publisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		cache:    store,
		events:   events,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	all, err := cache.Load(ctx, uc.cache, cache.KeyOrders, uc.repo.FindAll)
	if err != nil {
		return nil, err
	}
	all = uc.attachProducts(ctx, all)
	if filters == nil {
		return all, nil
	}
	return listing.Filter(all, filters.Search, filters.Status,
		func(o model.Order) []string {
			return []string{strconv.FormatInt(o.ID, 10), o.ProductName(nil), string(o.Status)}
		},
		func(o model.Order) string { return string(o.Status) },
	), nil
}

// attachProducts embeds the product for orders the server returned bare. Orders whose
// product no longer exists keep a nil Product and display as UnknownProductName.
func (uc *orderUseCase) attachProducts(ctx context.Context, orders []model.Order) []model.Order {
	bare := false
	for _, o := range orders {
		if o.Product == nil {
			bare = true
			break
		}
	}
	if !bare {
		return orders
	}
	products, err := cache.Load(ctx, uc.cache, cache.KeyProducts, uc.products.FindAll)
	if err != nil {
		uc.logger.Warn("could not resolve order products", zap.Error(err))
		return orders
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]model.Order, len(orders))
	for i, o := range orders {
		if o.Product == nil {
			if p, ok := byID[o.ProductID]; ok {
				pc := p
				o.Product = &pc
			}
		}
		out[i] = o
	}
	return out
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resolved := uc.attachProducts(ctx, []model.Order{*o})
	return &resolved[0], nil
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if input.ProductID <= 0 {
		return nil, apperrors.NewValidationError("Product is required")
	}
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}
	if input.DateToClaim.IsZero() {
		return nil, apperrors.NewValidationError("Pickup date is required")
	}
	status := model.OrderPending
	if input.Status != "" {
		s, ok := model.ParseOrderStatus(input.Status)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown order status %q", input.Status))
		}
		status = s
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Product #%d does not exist", input.ProductID))
		}
		return nil, errors.Wrap(err, "failed to create order")
	}

	body := &dto.OrderBody{
		ProductID:   p.ID,
		DateToClaim: model.NewTimestamp(input.DateToClaim),
		Status:      status,
		Amount:      model.OrderAmount(p.Price, input.Quantity),
	}
	o, err := uc.repo.Create(ctx, body)
	if err != nil {
		uc.logger.Error("failed to create order",
			zap.Int64("product_id", p.ID),
			zap.Int("quantity", input.Quantity),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed to create order")
	}
	if o.Product == nil {
		o.Product = p
	}
	uc.publish(activity.KindCreated, o.ID, fmt.Sprintf("Order #%d created for %s", o.ID, p.Name))
	return o, nil
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error) {
	current, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	p := &dto.OrderPatch{}
	next := current.Status
	if input.Status != nil {
		s, ok := model.ParseOrderStatus(*input.Status)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown order status %q", *input.Status))
		}
		if s != current.Status {
			p.Status = &s
			next = s
		}
	}
	if input.DateClaimed != nil {
		ts := model.NewTimestamp(*input.DateClaimed)
		p.DateClaimed = &ts
	} else if p.Status != nil && next == model.OrderClaimed && current.DateClaimed.TimePtr() == nil {
		ts := model.NewTimestamp(uc.now())
		p.DateClaimed = &ts
	}
	if p.Empty() {
		return current, nil
	}

	updated, err := uc.repo.Update(ctx, input.ID, p)
	if err != nil {
		uc.logger.Error("failed to update order", zap.Int64("order_id", input.ID), zap.Error(err))
		return nil, errors.Wrap(err, "failed to update order")
	}
	kind, desc := activity.KindUpdated, fmt.Sprintf("Order #%d updated", updated.ID)
	if p.Status != nil {
		kind = activity.KindStatusChanged
		desc = fmt.Sprintf("Order #%d status changed to %s", updated.ID, updated.Status)
	}
	uc.publish(kind, updated.ID, desc)
	resolved := uc.attachProducts(ctx, []model.Order{*updated})
	return &resolved[0], nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete order", zap.Int64("order_id", id), zap.Error(err))
		return errors.Wrap(err, "failed to delete order")
	}
	uc.publish(activity.KindDeleted, id, fmt.Sprintf("Order #%d deleted", id))
	return nil
}

func (uc *orderUseCase) publish(kind activity.Kind, id int64, desc string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(activity.NewEvent(kind, activity.EntityOrder, id, desc))
}

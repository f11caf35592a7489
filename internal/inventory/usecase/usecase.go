package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/inventory"
	"github.com/fekuna/bao-console/internal/inventory/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	productDTO "github.com/fekuna/bao-console/internal/product/dto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const lockTTL = 10 * time.Second

var ErrStockLocked = errors.New("Stock is being adjusted elsewhere, try again")

type inventoryUseCase struct {
	repo   inventory.Repository
	locker inventory.Locker
	cache  *cache.Store
	events activity.Publisher
	logger logger.ZapLogger
	now    func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, store *cache.Store, events activity.Publisher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		cache:  store,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.LowStockFilters{}
	}
	if filters.Threshold < 0 {
		return nil, apperrors.NewValidationError("Threshold must be at least 0")
	}
	all, err := cache.Load(ctx, uc.cache, cache.KeyProducts, uc.repo.FindAll)
	if err != nil {
		return nil, err
	}

	var out []model.Product
	for _, p := range all {
		switch {
		case p.Quantity <= 0:
			if filters.IncludeZero {
				out = append(out, p)
			}
		case filters.Threshold > 0:
			if p.Quantity < filters.Threshold {
				out = append(out, p)
			}
		case p.Status() == model.StatusLowStock:
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.Movement, error) {
	if input.ProductID == 0 {
		return nil, apperrors.NewValidationError("Product is required")
	}
	if input.Set == nil && input.Change == 0 {
		return nil, apperrors.NewValidationError("Change must not be zero")
	}
	if input.Set != nil && *input.Set < 0 {
		return nil, apperrors.NewValidationError("Quantity must be at least 0")
	}

	// 1. Lock the product
	key := inventory.LockKey(input.ProductID)
	owner := uuid.New().String()
	acquired, err := uc.locker.Acquire(ctx, key, owner, lockTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire stock lock")
	}
	if !acquired {
		return nil, ErrStockLocked
	}
	defer func() {
		if err := uc.locker.Release(context.Background(), key, owner); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.String("key", key), zap.Error(err))
		}
	}()

	// 2. Read the current quantity fresh, never from cache
	current, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to adjust stock")
	}

	next := current.Quantity + input.Change
	if input.Set != nil {
		next = *input.Set
	}
	if next < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Insufficient stock: %s has %d", current.Name, current.Quantity))
	}
	if next == current.Quantity {
		return &dto.Movement{Product: *current, QuantityBefore: next, QuantityAfter: next, Reason: input.Reason, At: uc.now()}, nil
	}

	// 3. Write quantity and derived status together
	status := model.DeriveStatus(next)
	updated, err := uc.repo.Update(ctx, current.ID, &productDTO.ProductPatch{Quantity: &next, Status: &status})
	if err != nil {
		uc.logger.Error("failed to adjust stock", zap.Int64("product_id", current.ID), zap.Int("quantity", next), zap.Error(err))
		return nil, errors.Wrap(err, "failed to adjust stock")
	}

	m := &dto.Movement{
		Product:        *updated,
		QuantityBefore: current.Quantity,
		QuantityAfter:  updated.Quantity,
		Reason:         strings.TrimSpace(input.Reason),
		At:             uc.now(),
	}
	uc.logger.Info("stock adjusted",
		zap.Int64("product_id", updated.ID),
		zap.Int("before", m.QuantityBefore),
		zap.Int("after", m.QuantityAfter),
		zap.String("reason", m.Reason),
	)
	uc.publish(m)
	return m, nil
}

func (uc *inventoryUseCase) publish(m *dto.Movement) {
	if uc.events == nil {
		return
	}
	kind := activity.KindUpdated
	desc := fmt.Sprintf("Product %s stock adjusted from %d to %d", m.Product.Name, m.QuantityBefore, m.QuantityAfter)
	if m.StatusChanged() {
		kind = activity.KindStatusChanged
		desc = fmt.Sprintf("Product %s status changed to %s", m.Product.Name, m.Product.Status())
	}
	if m.Reason != "" {
		desc += " (" + m.Reason + ")"
	}
	uc.events.Publish(activity.NewEvent(kind, activity.EntityProduct, m.Product.ID, desc))
}

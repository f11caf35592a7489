package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/pkg/patch"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/fekuna/bao-console/internal/product/dto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	cache  *cache.Store
	events activity.Publisher
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, store *cache.Store, events activity.Publisher, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  store,
		events: events,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	body, err := NewProductBody(input)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.Create(ctx, body)
	if err != nil {
		uc.logger.Error("failed to create product", zap.String("name", body.Name), zap.Error(err))
		return nil, errors.Wrap(err, "failed to create product")
	}
	uc.publish(activity.KindCreated, p.ID, fmt.Sprintf("Product %s created", p.Name))
	return p, nil
}

// NewProductBody validates a create form and builds the request body with the derived status.
func NewProductBody(input *dto.CreateProductInput) (*dto.ProductBody, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}
	category, ok := model.ParseCategory(input.Category)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown category %q", input.Category))
	}
	if input.Price.IsNegative() {
		return nil, apperrors.NewValidationError("Price must be at least 0")
	}
	return &dto.ProductBody{
		Name:     input.Name,
		Category: category,
		Price:    input.Price,
		Status:   model.DeriveStatus(input.Quantity),
		Quantity: input.Quantity,
		Image:    input.Image,
	}, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	all, err := cache.Load(ctx, uc.cache, cache.KeyProducts, uc.repo.FindAll)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		return all, nil
	}
	out := listing.Filter(all, filters.Search, filters.Category,
		func(p model.Product) []string { return []string{p.Name, string(p.Category)} },
		func(p model.Product) string { return string(p.Category) },
	)
	if filters.InStock {
		stocked := make([]model.Product, 0, len(out))
		for _, p := range out {
			if p.InStock() {
				stocked = append(stocked, p)
			}
		}
		out = stocked
	}
	return out, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	current, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	p := &dto.ProductPatch{
		Name:     patch.String(current.Name, input.Name),
		Price:    patch.Decimal(current.Price, input.Price),
		Quantity: patch.Int(current.Quantity, input.Quantity),
		Image:    patch.String(derefString(current.Image), input.Image),
	}
	if p.Name != nil && *p.Name == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}
	if input.Category != nil {
		c, ok := model.ParseCategory(*input.Category)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown category %q", *input.Category))
		}
		if c != current.Category {
			p.Category = &c
		}
	}
	if p.Price != nil && p.Price.IsNegative() {
		return nil, apperrors.NewValidationError("Price must be at least 0")
	}
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			return nil, apperrors.NewValidationError("Quantity must be at least 0")
		}
		status := model.DeriveStatus(*p.Quantity)
		p.Status = &status
	}
	if p.Empty() {
		return current, nil
	}

	updated, err := uc.repo.Update(ctx, input.ID, p)
	if err != nil {
		uc.logger.Error("failed to update product", zap.Int64("product_id", input.ID), zap.Error(err))
		return nil, errors.Wrap(err, "failed to update product")
	}
	kind, desc := activity.KindUpdated, fmt.Sprintf("Product %s updated", updated.Name)
	if p.Status != nil && current.Status() != updated.Status() {
		kind = activity.KindStatusChanged
		desc = fmt.Sprintf("Product %s status changed to %s", updated.Name, updated.Status())
	}
	uc.publish(kind, updated.ID, desc)
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return errors.Wrap(err, "failed to delete product")
	}
	uc.publish(activity.KindDeleted, id, fmt.Sprintf("Product #%d deleted", id))
	return nil
}

func (uc *productUseCase) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	name := filepath.Base(filename)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", apperrors.NewValidationError("Image must be a png, jpg, gif or webp file")
	}
	url, err := uc.repo.UploadImage(ctx, name, content)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}
	return url, nil
}

func (uc *productUseCase) Drift(ctx context.Context, fix bool) ([]dto.DriftRow, error) {
	all, err := uc.ListProducts(ctx, nil)
	if err != nil {
		return nil, err
	}
	var rows []dto.DriftRow
	for _, p := range all {
		if !p.Drifted() {
			continue
		}
		row := dto.DriftRow{Product: p, Stored: p.StoredStatus, Derived: p.Status()}
		if fix {
			status := p.Status()
			if _, err := uc.repo.Update(ctx, p.ID, &dto.ProductPatch{Status: &status}); err != nil {
				uc.logger.Warn("failed to fix product status", zap.Int64("product_id", p.ID), zap.Error(err))
			} else {
				row.Fixed = true
			}
		}
		rows = append(rows, row)
	}
	if fix && len(rows) > 0 {
		if err := uc.cache.Invalidate(ctx, cache.KeyProducts); err != nil {
			uc.logger.Warn("failed to invalidate products", zap.Error(err))
		}
	}
	return rows, nil
}

func (uc *productUseCase) publish(kind activity.Kind, id int64, desc string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(activity.NewEvent(kind, activity.EntityProduct, id, desc))
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package usecase

import (
	"context"

	"github.com/fekuna/bao-console/internal/category"
	"github.com/fekuna/bao-console/internal/category/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	products product.UseCase
	logger   logger.ZapLogger
}

func NewCategoryUseCase(products product.UseCase, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		products: products,
		logger:   log,
	}
}

// ListCategories summarises the cached product list per category, in the fixed category order.
func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]dto.CategorySummary, error) {
	all, err := uc.products.ListProducts(ctx, nil)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[model.Category]*dto.CategorySummary, len(model.Categories))
	for _, c := range model.Categories {
		byCategory[c] = &dto.CategorySummary{Category: c, StockValue: decimal.Zero}
	}
	for _, p := range all {
		s, ok := byCategory[p.Category]
		if !ok {
			// unknown categories from the server are shown under Other
			uc.logger.Debug("product with unknown category", zap.Int64("product_id", p.ID), zap.String("category", string(p.Category)))
			s = byCategory[model.CategoryOther]
		}
		s.Products++
		switch p.Status() {
		case model.StatusOutOfStock:
			s.OutOfStock++
			continue
		case model.StatusLowStock:
			s.LowStock++
		}
		s.Units += p.Quantity
		s.StockValue = s.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	includeEmpty := filters != nil && filters.IncludeEmpty
	out := make([]dto.CategorySummary, 0, len(model.Categories))
	for _, c := range model.Categories {
		s := byCategory[c]
		if s.Products == 0 && !includeEmpty {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

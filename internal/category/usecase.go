package category

import (
	"context"

	"github.com/fekuna/bao-console/internal/category/dto"
)

type UseCase interface {
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]dto.CategorySummary, error)
}

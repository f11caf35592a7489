package inventory

import (
	"context"

	"github.com/fekuna/bao-console/internal/inventory/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type UseCase interface {
	ListLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Product, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.Movement, error)
}

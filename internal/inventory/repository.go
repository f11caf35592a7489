package inventory

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	productDTO "github.com/fekuna/bao-console/internal/product/dto"
)

// Repository is the slice of the product store stock control needs.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, patch *productDTO.ProductPatch) (*model.Product, error)
}

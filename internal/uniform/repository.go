package uniform

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/uniform/dto"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.UniformVariant, error)
	FindByProduct(ctx context.Context, productID int64) ([]model.UniformVariant, error)
	Create(ctx context.Context, body *dto.VariantBody) (*model.UniformVariant, error)
	Delete(ctx context.Context, id int64) error
}

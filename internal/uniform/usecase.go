package uniform

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/uniform/dto"
)

type UseCase interface {
	ListUniforms(ctx context.Context, filters *dto.UniformFilters) ([]model.UniformVariant, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.UniformVariant, error)
	AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.UniformVariant, error)
	DeleteVariant(ctx context.Context, id int64) error

	// CreateUniformProduct creates a Uniform product and then its variants. The steps are
	// not transactional: on a variant failure the product and the variants created so far
	// are returned with the error.
	CreateUniformProduct(ctx context.Context, input *dto.CreateUniformProductInput) (*dto.UniformProductResult, error)
}

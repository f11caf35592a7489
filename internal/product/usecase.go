package product

import (
	"context"
	"io"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)

	// Drift reports products whose stored status disagrees with their quantity; fix
	// rewrites the stored status.
	Drift(ctx context.Context, fix bool) ([]dto.DriftRow, error)
}

package product

import (
	"context"
	"io"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, body *dto.ProductBody) (*model.Product, error)
	Update(ctx context.Context, id int64, patch *dto.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int64) error

	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

package order

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order/dto"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	Create(ctx context.Context, body *dto.OrderBody) (*model.Order, error)
	Update(ctx context.Context, id int64, patch *dto.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
}

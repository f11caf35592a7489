package order

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order/dto"
)

type UseCase interface {
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

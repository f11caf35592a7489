package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order"
	"github.com/fekuna/bao-console/internal/order/dto"
)

type httpRepository struct {
	client *apiclient.Client
}

func NewHTTPRepository(client *apiclient.Client) order.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := r.client.Do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	if err := r.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *httpRepository) Create(ctx context.Context, body *dto.OrderBody) (*model.Order, error) {
	var o model.Order
	if err := r.client.Do(ctx, http.MethodPost, "/orders", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *httpRepository) Update(ctx context.Context, id int64, patch *dto.OrderPatch) (*model.Order, error) {
	var o model.Order
	if err := r.client.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), patch, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil)
}

package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/uniform"
	"github.com/fekuna/bao-console/internal/uniform/dto"
)

type httpRepository struct {
	client *apiclient.Client
}

func NewHTTPRepository(client *apiclient.Client) uniform.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) FindAll(ctx context.Context) ([]model.UniformVariant, error) {
	var out []model.UniformVariant
	if err := r.client.Do(ctx, http.MethodGet, "/uniforms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) FindByProduct(ctx context.Context, productID int64) ([]model.UniformVariant, error) {
	var out []model.UniformVariant
	if err := r.client.Do(ctx, http.MethodGet, fmt.Sprintf("/uniforms/%d", productID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) Create(ctx context.Context, body *dto.VariantBody) (*model.UniformVariant, error) {
	var v model.UniformVariant
	if err := r.client.Do(ctx, http.MethodPost, "/uniforms", body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/uniforms/%d", id), nil, nil)
}

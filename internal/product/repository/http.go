package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/fekuna/bao-console/internal/product/dto"
	"github.com/pkg/errors"
)

type httpRepository struct {
	client *apiclient.Client
}

func NewHTTPRepository(client *apiclient.Client) product.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := r.client.DoProtected(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := r.client.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *httpRepository) Create(ctx context.Context, body *dto.ProductBody) (*model.Product, error) {
	var p model.Product
	if err := r.client.Do(ctx, http.MethodPost, "/products", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *httpRepository) Update(ctx context.Context, id int64, patch *dto.ProductPatch) (*model.Product, error) {
	var p model.Product
	if err := r.client.Do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (r *httpRepository) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	if err := r.client.Upload(ctx, "/upload-image", "file", filename, content, &res); err != nil {
		return "", err
	}
	if res.URL == "" {
		return "", errors.New("upload response carried no url")
	}
	return res.URL, nil
}

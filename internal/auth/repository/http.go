package repository

import (
	"context"
	"net/http"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/auth/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type httpRepository struct {
	client *apiclient.Client
}

func NewHTTPRepository(client *apiclient.Client) auth.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	var res dto.LoginResult
	if err := r.client.Do(ctx, http.MethodPost, "/auth/login", input, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *httpRepository) Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResult, error) {
	var res dto.RegisterResult
	if err := r.client.Do(ctx, http.MethodPost, "/auth/register", input, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *httpRepository) Logout(ctx context.Context) error {
	return r.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (r *httpRepository) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := r.client.DoProtected(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

package auth

import (
	"context"

	"github.com/fekuna/bao-console/internal/auth/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type Repository interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)
}

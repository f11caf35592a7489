package auth

import (
	"context"

	"github.com/fekuna/bao-console/internal/auth/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*model.User, error)
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)

	// Current returns the cached identity, asking the server only when none is held.
	Current(ctx context.Context) (*model.User, error)
	IsAuthenticated() bool
	CanOpen(ctx context.Context, view View) error
}

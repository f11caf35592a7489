package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/auth/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type authUseCase struct {
	repo   auth.Repository
	store  auth.TokenStore
	logger logger.ZapLogger

	mu   sync.RWMutex
	user *model.User
}

func NewAuthUseCase(repo auth.Repository, store auth.TokenStore, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:   repo,
		store:  store,
		logger: log,
	}
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}

	res, err := uc.repo.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	if res.SessionID == "" {
		return nil, errors.New("login response carried no session")
	}
	if err := uc.store.Save(res.SessionID); err != nil {
		return nil, err
	}

	u := res.User
	uc.setUser(&u)
	uc.logger.Info("logged in", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	return &u, nil
}

func (uc *authUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Role = model.Role(strings.ToLower(strings.TrimSpace(string(input.Role))))

	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("Passwords do not match")
	}
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("Role must be 'admin' or 'student'")
	}
	if input.Role == model.RoleStudent && (strings.TrimSpace(input.College) == "" || strings.TrimSpace(input.Program) == "") {
		return nil, apperrors.NewValidationError("College and program required for students")
	}
	if input.Role == model.RoleAdmin {
		input.College, input.Program = "", ""
	}

	return uc.repo.Register(ctx, input)
}

// Logout always drops the local session, even when the server call fails.
func (uc *authUseCase) Logout(ctx context.Context) error {
	var remoteErr error
	if uc.store.Token() != "" {
		remoteErr = uc.repo.Logout(ctx)
		if remoteErr != nil {
			uc.logger.Warn("server logout failed", zap.Error(remoteErr))
		}
	}
	uc.setUser(nil)
	if err := uc.store.Clear(); err != nil {
		return err
	}
	return remoteErr
}

func (uc *authUseCase) Me(ctx context.Context) (*model.User, error) {
	u, err := uc.repo.Me(ctx)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			// stale session on the server side
			uc.setUser(nil)
			if clearErr := uc.store.Clear(); clearErr != nil {
				uc.logger.Warn("failed to clear session", zap.Error(clearErr))
			}
		}
		return nil, err
	}
	uc.setUser(u)
	return u, nil
}

func (uc *authUseCase) Current(ctx context.Context) (*model.User, error) {
	uc.mu.RLock()
	u := uc.user
	uc.mu.RUnlock()
	if u != nil {
		return u, nil
	}
	if !uc.IsAuthenticated() {
		return nil, auth.ErrNotAuthenticated
	}
	return uc.Me(ctx)
}

func (uc *authUseCase) IsAuthenticated() bool {
	return uc.store.Token() != ""
}

func (uc *authUseCase) CanOpen(ctx context.Context, view auth.View) error {
	u, err := uc.Current(ctx)
	if err != nil {
		return err
	}
	return auth.Allowed(u, view)
}

func (uc *authUseCase) setUser(u *model.User) {
	uc.mu.Lock()
	uc.user = u
	uc.mu.Unlock()
}

package usecase

import (
	"context"

	"github.com/fekuna/bao-console/internal/appointment"
	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type appointmentUseCase struct {
	repo   appointment.Repository
	logger logger.ZapLogger
}

func NewAppointmentUseCase(repo appointment.Repository, log logger.ZapLogger) appointment.UseCase {
	return &appointmentUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *appointmentUseCase) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *appointmentUseCase) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *appointmentUseCase) CreateAppointment(ctx context.Context, input *dto.CreateAppointmentInput) (*model.Appointment, error) {
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}
	a, err := uc.repo.Create(ctx, input)
	if err != nil {
		uc.logger.Debug("appointment create unavailable", zap.Error(err))
		return nil, errors.Wrap(err, "failed to create appointment")
	}
	return a, nil
}

func (uc *appointmentUseCase) UpdateAppointment(ctx context.Context, id int64, input *dto.UpdateAppointmentInput) (*model.Appointment, error) {
	a, err := uc.repo.Update(ctx, id, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update appointment")
	}
	return a, nil
}

func (uc *appointmentUseCase) DeleteAppointment(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete appointment")
	}
	return nil
}

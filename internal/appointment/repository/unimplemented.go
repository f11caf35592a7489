package repository

import (
	"context"

	"github.com/fekuna/bao-console/internal/appointment"
	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
)

// unimplementedRepository stands in until the backend grows an appointments store.
type unimplementedRepository struct{}

func NewUnimplementedRepository() appointment.Repository {
	return unimplementedRepository{}
}

func (unimplementedRepository) FindAll(ctx context.Context) ([]model.Appointment, error) {
	return []model.Appointment{}, nil
}

func (unimplementedRepository) FindByID(ctx context.Context, id int64) (*model.Appointment, error) {
	return nil, apperrors.ErrNotImplemented
}

func (unimplementedRepository) Create(ctx context.Context, input *dto.CreateAppointmentInput) (*model.Appointment, error) {
	return nil, apperrors.ErrNotImplemented
}

func (unimplementedRepository) Update(ctx context.Context, id int64, input *dto.UpdateAppointmentInput) (*model.Appointment, error) {
	return nil, apperrors.ErrNotImplemented
}

func (unimplementedRepository) Delete(ctx context.Context, id int64) error {
	return apperrors.ErrNotImplemented
}

package appointment

import (
	"context"

	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Appointment, error)
	FindByID(ctx context.Context, id int64) (*model.Appointment, error)
	Create(ctx context.Context, input *dto.CreateAppointmentInput) (*model.Appointment, error)
	Update(ctx context.Context, id int64, input *dto.UpdateAppointmentInput) (*model.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

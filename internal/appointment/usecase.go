package appointment

import (
	"context"

	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/model"
)

type UseCase interface {
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	CreateAppointment(ctx context.Context, input *dto.CreateAppointmentInput) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, input *dto.UpdateAppointmentInput) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

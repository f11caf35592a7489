package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/appointment/repository"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentsAreStubbed(t *testing.T) {
	uc := NewAppointmentUseCase(repository.NewUnimplementedRepository(), logger.NewNop())
	ctx := context.Background()

	list, err := uc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = uc.GetAppointment(ctx, 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotImplemented))

	_, err = uc.CreateAppointment(ctx, &dto.CreateAppointmentInput{StudentID: 1, Date: "2025-06-01", Time: "09:00", Purpose: "ID claim"})
	assert.EqualError(t, err, "failed to create appointment: not yet implemented")

	purpose := "x"
	_, err = uc.UpdateAppointment(ctx, 1, &dto.UpdateAppointmentInput{Purpose: &purpose})
	assert.True(t, errors.Is(err, apperrors.ErrNotImplemented))

	assert.True(t, errors.Is(uc.DeleteAppointment(ctx, 1), apperrors.ErrNotImplemented))
}

func TestCreateAppointmentValidatesFirst(t *testing.T) {
	uc := NewAppointmentUseCase(repository.NewUnimplementedRepository(), logger.NewNop())

	_, err := uc.CreateAppointment(context.Background(), &dto.CreateAppointmentInput{StudentID: 1})
	assert.True(t, apperrors.IsValidation(err))
}

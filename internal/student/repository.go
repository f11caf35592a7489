package student

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/student/dto"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Student, error)
	FindByID(ctx context.Context, id int64) (*model.Student, error)
	Create(ctx context.Context, input *dto.CreateStudentInput) (*model.Student, error)
	Update(ctx context.Context, id int64, patch *dto.StudentPatch) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

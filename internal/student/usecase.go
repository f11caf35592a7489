package student

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/student/dto"
)

type UseCase interface {
	ListStudents(ctx context.Context, filters *dto.StudentFilters) ([]model.Student, error)
	GetStudent(ctx context.Context, id int64) (*model.Student, error)
	CreateStudent(ctx context.Context, input *dto.CreateStudentInput) (*model.Student, error)
	UpdateStudent(ctx context.Context, input *dto.UpdateStudentInput) (*model.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

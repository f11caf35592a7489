package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/pkg/patch"
	"github.com/fekuna/bao-console/internal/student"
	"github.com/fekuna/bao-console/internal/student/dto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type studentUseCase struct {
	repo   student.Repository
	cache  *cache.Store
	events activity.Publisher
	logger logger.ZapLogger
}

func NewStudentUseCase(repo student.Repository, store *cache.Store, events activity.Publisher, log logger.ZapLogger) student.UseCase {
	return &studentUseCase{
		repo:   repo,
		cache:  store,
		events: events,
		logger: log,
	}
}

func (uc *studentUseCase) ListStudents(ctx context.Context, filters *dto.StudentFilters) ([]model.Student, error) {
	all, err := cache.Load(ctx, uc.cache, cache.KeyStudents, uc.repo.FindAll)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		return all, nil
	}
	return listing.Filter(all, filters.Search, filters.College,
		func(s model.Student) []string { return []string{s.FirstName, s.LastName, s.College, s.Program} },
		func(s model.Student) string { return s.College },
	), nil
}

func (uc *studentUseCase) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *studentUseCase) CreateStudent(ctx context.Context, input *dto.CreateStudentInput) (*model.Student, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.College = strings.TrimSpace(input.College)
	input.Program = strings.TrimSpace(input.Program)
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}

	s, err := uc.repo.Create(ctx, input)
	if err != nil {
		uc.logger.Error("failed to create student", zap.Error(err))
		return nil, errors.Wrap(err, "failed to create student")
	}
	uc.publish(activity.KindCreated, s.ID, fmt.Sprintf("Student %s created", s.FullName()))
	return s, nil
}

func (uc *studentUseCase) UpdateStudent(ctx context.Context, input *dto.UpdateStudentInput) (*model.Student, error) {
	current, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update student")
	}

	p := &dto.StudentPatch{
		FirstName: patch.String(current.FirstName, input.FirstName),
		LastName:  patch.String(current.LastName, input.LastName),
		College:   patch.String(current.College, input.College),
		Program:   patch.String(current.Program, input.Program),
	}
	for _, v := range []*string{p.FirstName, p.LastName, p.College, p.Program} {
		if v != nil && *v == "" {
			return nil, apperrors.NewValidationError("Student fields cannot be blank")
		}
	}
	if p.Empty() {
		return current, nil
	}

	s, err := uc.repo.Update(ctx, input.ID, p)
	if err != nil {
		uc.logger.Error("failed to update student", zap.Int64("student_id", input.ID), zap.Error(err))
		return nil, errors.Wrap(err, "failed to update student")
	}
	uc.publish(activity.KindUpdated, s.ID, fmt.Sprintf("Student %s updated", s.FullName()))
	return s, nil
}

func (uc *studentUseCase) DeleteStudent(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete student", zap.Int64("student_id", id), zap.Error(err))
		return errors.Wrap(err, "failed to delete student")
	}
	uc.publish(activity.KindDeleted, id, fmt.Sprintf("Student #%d deleted", id))
	return nil
}

func (uc *studentUseCase) publish(kind activity.Kind, id int64, desc string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(activity.NewEvent(kind, activity.EntityStudent, id, desc))
}

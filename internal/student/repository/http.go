package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/student"
	"github.com/fekuna/bao-console/internal/student/dto"
)

type httpRepository struct {
	client *apiclient.Client
}

func NewHTTPRepository(client *apiclient.Client) student.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) FindAll(ctx context.Context) ([]model.Student, error) {
	var out []model.Student
	if err := r.client.DoProtected(ctx, http.MethodGet, "/students", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	var s model.Student
	if err := r.client.DoProtected(ctx, http.MethodGet, fmt.Sprintf("/students/%d", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *httpRepository) Create(ctx context.Context, input *dto.CreateStudentInput) (*model.Student, error) {
	var s model.Student
	if err := r.client.Do(ctx, http.MethodPost, "/students", input, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *httpRepository) Update(ctx context.Context, id int64, patch *dto.StudentPatch) (*model.Student, error) {
	var s model.Student
	if err := r.client.Do(ctx, http.MethodPut, fmt.Sprintf("/students/%d", id), patch, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/students/%d", id), nil, nil)
}

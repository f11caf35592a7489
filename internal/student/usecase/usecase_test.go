package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/student"
	"github.com/fekuna/bao-console/internal/student/dto"
	"github.com/fekuna/bao-console/internal/student/repository"
	"github.com/fekuna/bao-console/internal/testutil/fakebao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv  *fakebao.Server
	feed *activity.Feed
	uc   student.UseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := fakebao.New()
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Minute, log)
	bus := activity.NewBus(log)
	feed := activity.NewFeed(10)
	require.NoError(t, activity.Wire(bus, feed, store, log))

	uc := NewStudentUseCase(repository.NewHTTPRepository(srv.AdminClient()), store, bus, log)
	return &fixture{srv: srv, feed: feed, uc: uc}
}

func str(s string) *string { return &s }

func TestListStudentsFilters(t *testing.T) {
	f := setup(t)
	f.srv.AddStudent(model.Student{FirstName: "Ana", LastName: "Cruz", College: "CCS", Program: "BSIT"})
	f.srv.AddStudent(model.Student{FirstName: "Ben", LastName: "Tan", College: "COE", Program: "BSCE"})
	f.srv.AddStudent(model.Student{FirstName: "Cara", LastName: "Lim", College: "CCS", Program: "BSCS"})
	ctx := context.Background()

	all, err := f.uc.ListStudents(ctx, &dto.StudentFilters{College: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ccs, err := f.uc.ListStudents(ctx, &dto.StudentFilters{College: "ccs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Cara"}, []string{ccs[0].FirstName, ccs[1].FirstName})

	found, err := f.uc.ListStudents(ctx, &dto.StudentFilters{Search: "bsce"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ben", found[0].FirstName)

	// all three reads came from one fetch
	assert.Equal(t, 1, f.srv.Count("GET /students"))
}

func TestCreateStudentReloadsList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.ListStudents(ctx, nil)
	require.NoError(t, err)

	s, err := f.uc.CreateStudent(ctx, &dto.CreateStudentInput{FirstName: " Dana ", LastName: "Uy", College: "CBA", Program: "BSA"})
	require.NoError(t, err)
	assert.Equal(t, "Dana", s.FirstName)

	list, err := f.uc.ListStudents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
	assert.Equal(t, 2, f.srv.Count("GET /students"))

	recent := f.feed.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, activity.KindCreated, recent[0].Kind)
}

func TestCreateStudentValidation(t *testing.T) {
	f := setup(t)

	_, err := f.uc.CreateStudent(context.Background(), &dto.CreateStudentInput{FirstName: "Dana"})

	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "LastName is required")
	assert.Zero(t, f.srv.Count("POST /students"))
}

func TestUpdateStudentSendsOnlyChangedFields(t *testing.T) {
	f := setup(t)
	seeded := f.srv.AddStudent(model.Student{FirstName: "Ana", LastName: "Cruz", College: "CCS", Program: "BSIT"})

	s, err := f.uc.UpdateStudent(context.Background(), &dto.UpdateStudentInput{
		ID:        seeded.ID,
		FirstName: str("Ana"),
		Program:   str("BSCS"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BSCS", s.Program)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(f.srv.LastBody("PUT /students/:id"), &body))
	assert.Equal(t, map[string]interface{}{"program": "BSCS"}, body)
}

func TestUpdateStudentNoChangesSkipsRequest(t *testing.T) {
	f := setup(t)
	seeded := f.srv.AddStudent(model.Student{FirstName: "Ana", LastName: "Cruz", College: "CCS", Program: "BSIT"})

	s, err := f.uc.UpdateStudent(context.Background(), &dto.UpdateStudentInput{ID: seeded.ID, College: str("CCS")})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, s.ID)
	assert.Zero(t, f.srv.Count("PUT /students/:id"))
}

func TestDeleteStudentFailureIsWrapped(t *testing.T) {
	f := setup(t)

	err := f.uc.DeleteStudent(context.Background(), 404)

	require.Error(t, err)
	assert.Equal(t, "failed to delete student: Student not found", err.Error())
}

func TestDeleteStudent(t *testing.T) {
	f := setup(t)
	seeded := f.srv.AddStudent(model.Student{FirstName: "Ana", LastName: "Cruz", College: "CCS", Program: "BSIT"})

	require.NoError(t, f.uc.DeleteStudent(context.Background(), seeded.ID))
	assert.Empty(t, f.srv.Students())
}

func TestListStudentsRequiresAdmin(t *testing.T) {
	srv := fakebao.New()
	defer srv.Close()
	srv.AddAccount("s@bao.edu", "pw", model.RoleStudent, "Ana", "Cruz")
	log := logger.NewNop()
	uc := NewStudentUseCase(repository.NewHTTPRepository(srv.NewClient(srv.Session("s@bao.edu"))), nil, nil, log)

	_, err := uc.ListStudents(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, "Admin access required", err.Error())
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))
}

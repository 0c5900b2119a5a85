package services

import (
	"context"
	"database/sql"
	"slices"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/dbx"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/users"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/workouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

type fakeUsers struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = "acc-" + u.UserName
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsers) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

type fakeWorkouts struct {
	rows     map[string]models.Workout
	patches  []map[string]any
	writeErr error
}

func (f *fakeWorkouts) Create(_ context.Context, w *models.Workout) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if cur, ok := f.rows[w.ID]; ok && cur.OwnerID != w.OwnerID {
		return common.ErrAlreadyExists
	}
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWorkouts) Get(_ context.Context, ownerID, id string) (*models.Workout, error) {
	w, ok := f.rows[id]
	if !ok || w.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return &w, nil
}

func (f *fakeWorkouts) Update(_ context.Context, w *models.Workout) error {
	if cur, ok := f.rows[w.ID]; !ok || cur.OwnerID != w.OwnerID {
		return common.ErrNotFound
	}
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWorkouts) Patch(_ context.Context, ownerID, id string, cols map[string]any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.patches = append(f.patches, cols)
	return nil
}

func (f *fakeWorkouts) Delete(_ context.Context, ownerID, id string) error {
	if w, ok := f.rows[id]; !ok || w.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeWorkouts) ListByUser(_ context.Context, ownerID, userID string) ([]models.Workout, error) {
	out := []models.Workout{}
	for _, w := range f.rows {
		if w.OwnerID == ownerID && w.UserID == userID {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b models.Workout) int { return b.Date.Compare(a.Date) })
	return out, nil
}

type fakeExercises struct {
	rows    map[string]models.Exercise
	patches []map[string]any
}

func (f *fakeExercises) Create(_ context.Context, e *models.Exercise) error {
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExercises) Get(_ context.Context, ownerID, id string) (*models.Exercise, error) {
	e, ok := f.rows[id]
	if !ok || e.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return &e, nil
}

func (f *fakeExercises) Update(_ context.Context, e *models.Exercise) error {
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExercises) Patch(_ context.Context, ownerID, id string, cols map[string]any) error {
	f.patches = append(f.patches, cols)
	return nil
}

func (f *fakeExercises) Delete(_ context.Context, ownerID, id string) error {
	if _, ok := f.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeExercises) ListByWorkout(_ context.Context, ownerID, workoutID string) ([]models.Exercise, error) {
	out := []models.Exercise{}
	for _, e := range f.rows {
		if e.OwnerID == ownerID && e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.Exercise) int { return a.Position - b.Position })
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsers
	w *fakeWorkouts
	e *fakeExercises
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsers{byName: map[string]*models.User{}},
		w: &fakeWorkouts{rows: map[string]models.Workout{}},
		e: &fakeExercises{rows: map[string]models.Exercise{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Workouts(dbx.DBTX) workouts.Repository        { return m.w }
func (m *fakeRepoManager) Exercises(dbx.DBTX) exercises.Repository      { return m.e }

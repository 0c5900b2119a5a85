package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubMigrate(t *testing.T, fn func(context.Context, *sql.DB) ([]*goose.MigrationResult, error)) {
	t.Helper()
	orig := migrate
	migrate = fn
	t.Cleanup(func() { migrate = orig })
}

func TestRepositories(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager()
	assert.NotNil(t, m.Users(db))
	assert.NotNil(t, m.Workouts(db))
	assert.NotNil(t, m.Exercises(db))
}

func TestRunMigrations(t *testing.T) {
	m := NewPostgresRepositoryManager()

	t.Run("ok", func(t *testing.T) {
		called := false
		stubMigrate(t, func(context.Context, *sql.DB) ([]*goose.MigrationResult, error) {
			called = true
			return []*goose.MigrationResult{{Source: &goose.Source{Path: "00001_users.sql"}}}, nil
		})
		require.NoError(t, m.RunMigrations(context.Background(), nil))
		assert.True(t, called)
	})

	t.Run("provider error", func(t *testing.T) {
		stubMigrate(t, func(context.Context, *sql.DB) ([]*goose.MigrationResult, error) {
			return nil, errors.New("boom")
		})
		err := m.RunMigrations(context.Background(), nil)
		assert.EqualError(t, err, "migrate: boom")
	})

	t.Run("failed step", func(t *testing.T) {
		stubMigrate(t, func(context.Context, *sql.DB) ([]*goose.MigrationResult, error) {
			return []*goose.MigrationResult{
				{Source: &goose.Source{Path: "00001_users.sql"}},
				{Source: &goose.Source{Path: "00002_workouts.sql"}, Error: errors.New("syntax")},
			}, nil
		})
		err := m.RunMigrations(context.Background(), nil)
		assert.EqualError(t, err, "migrate 00002_workouts.sql: syntax")
	})
}

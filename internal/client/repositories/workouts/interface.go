package workouts

import (
	"context"
	"iter"

	"github.com/dmitrijs2005/gympro/internal/client/models"
)

type Repository interface {
	// Get returns nil without error when the workout is not cached.
	Get(ctx context.Context, id string) (*models.Workout, error)

	// Snapshot lists the user's workouts, newest first.
	Snapshot(ctx context.Context, userID string) ([]models.Workout, error)

	// Watch yields Snapshot now and after every change to the table.
	Watch(ctx context.Context, userID string) iter.Seq2[[]models.Workout, error]

	// Upsert replaces the whole record.
	Upsert(ctx context.Context, w models.Workout) error
	UpsertMany(ctx context.Context, ws []models.Workout) error

	// Delete removes the workout and, by cascade, its exercises.
	Delete(ctx context.Context, id string) error
	DeleteAllByParent(ctx context.Context, userID string) error
}

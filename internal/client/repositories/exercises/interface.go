package exercises

import (
	"context"
	"iter"

	"github.com/dmitrijs2005/gympro/internal/client/models"
)

type Repository interface {
	// Get returns nil without error when the exercise is not cached.
	Get(ctx context.Context, id string) (*models.Exercise, error)
	Snapshot(ctx context.Context, workoutID string) ([]models.Exercise, error)
	Watch(ctx context.Context, workoutID string) iter.Seq2[[]models.Exercise, error]

	// Upsert replaces the whole record. UpsertMany writes all records in one
	// transaction.
	Upsert(ctx context.Context, e models.Exercise) error
	UpsertMany(ctx context.Context, es []models.Exercise) error

	Delete(ctx context.Context, id string) error

	// MaxPosition reports false when the workout has no cached exercises.
	MaxPosition(ctx context.Context, workoutID string) (int, bool, error)
}

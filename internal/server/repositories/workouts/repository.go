// Package workouts stores workout documents in Postgres. Every query is
// scoped by owner_id.
package workouts

import (
	"context"

	"github.com/dmitrijs2005/gympro/internal/server/models"
)

type Repository interface {
	// Create inserts w, or overwrites it when the same owner already stored
	// that id. An id held by another owner fails with common.ErrAlreadyExists.
	Create(ctx context.Context, w *models.Workout) error
	Get(ctx context.Context, ownerID, id string) (*models.Workout, error)
	Update(ctx context.Context, w *models.Workout) error
	// Patch sets the given columns. Column names are trusted.
	Patch(ctx context.Context, ownerID, id string, columns map[string]any) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByUser(ctx context.Context, ownerID, userID string) ([]models.Workout, error)
}

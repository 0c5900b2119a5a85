// Package exercises stores exercise documents in Postgres. Every query is
// scoped by owner_id.
package exercises

import (
	"context"

	"github.com/dmitrijs2005/gympro/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Exercise) error
	Get(ctx context.Context, ownerID, id string) (*models.Exercise, error)
	Update(ctx context.Context, e *models.Exercise) error
	Patch(ctx context.Context, ownerID, id string, columns map[string]any) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByWorkout(ctx context.Context, ownerID, workoutID string) ([]models.Exercise, error)
}

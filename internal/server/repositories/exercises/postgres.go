package exercises

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/dbx"
	"github.com/dmitrijs2005/gympro/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, owner_id, workout_id, name, observations, image_url, position, updated_at FROM exercises`

func scanExercise(s dbx.Scanner) (models.Exercise, error) {
	var e models.Exercise
	var image sql.NullString
	if err := s.Scan(&e.ID, &e.OwnerID, &e.WorkoutID, &e.Name, &e.Observations, &image, &e.Position, &e.UpdatedAt); err != nil {
		return models.Exercise{}, err
	}
	if image.Valid {
		e.ImageURL = &image.String
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Exercise) error {
	query :=
		`INSERT INTO exercises (id, owner_id, workout_id, name, observations, image_url, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   workout_id = EXCLUDED.workout_id,
		   name = EXCLUDED.name,
		   observations = EXCLUDED.observations,
		   image_url = EXCLUDED.image_url,
		   position = EXCLUDED.position,
		   updated_at = now()
		 WHERE exercises.owner_id = EXCLUDED.owner_id
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.OwnerID, e.WorkoutID, e.Name, e.Observations, e.ImageURL, e.Position).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (*models.Exercise, error) {
	e, err := scanExercise(r.db.QueryRowContext(ctx, selectColumns+` WHERE owner_id = $1 AND id = $2`, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Exercise) error {
	query :=
		`UPDATE exercises
		 SET workout_id = $3, name = $4, observations = $5, image_url = $6, position = $7, updated_at = now()
		 WHERE owner_id = $1 AND id = $2
		 `
	return r.execOne(ctx, query, e.OwnerID, e.ID, e.WorkoutID, e.Name, e.Observations, e.ImageURL, e.Position)
}

func (r *PostgresRepository) Patch(ctx context.Context, ownerID, id string, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	set, args := dbx.SetClause(columns, 3)
	query := fmt.Sprintf(`UPDATE exercises SET %s, updated_at = now() WHERE owner_id = $1 AND id = $2`, set)
	return r.execOne(ctx, query, append([]any{ownerID, id}, args...)...)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.execOne(ctx, `DELETE FROM exercises WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

func (r *PostgresRepository) ListByWorkout(ctx context.Context, ownerID, workoutID string) ([]models.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE owner_id = $1 AND workout_id = $2 ORDER BY position ASC, id ASC`, ownerID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanExercise)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

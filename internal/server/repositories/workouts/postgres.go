package workouts

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

const selectColumns = `SELECT id, owner_id, user_id, name, description, date, updated_at FROM workouts`

func scanWorkout(s dbx.Scanner) (models.Workout, error) {
	var w models.Workout
	err := s.Scan(&w.ID, &w.OwnerID, &w.UserID, &w.Name, &w.Description, &w.Date, &w.UpdatedAt)
	return w, err
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Workout) error {
	query :=
		`INSERT INTO workouts (id, owner_id, user_id, name, description, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   user_id = EXCLUDED.user_id,
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   date = EXCLUDED.date,
		   updated_at = now()
		 WHERE workouts.owner_id = EXCLUDED.owner_id
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		w.ID, w.OwnerID, w.UserID, w.Name, w.Description, w.Date).Scan(&w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (*models.Workout, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE owner_id = $1 AND id = $2`, ownerID, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &w, nil
}

func (r *PostgresRepository) Update(ctx context.Context, w *models.Workout) error {
	query :=
		`UPDATE workouts
		 SET user_id = $3, name = $4, description = $5, date = $6, updated_at = now()
		 WHERE owner_id = $1 AND id = $2
		 `
	return r.execOne(ctx, query, w.OwnerID, w.ID, w.UserID, w.Name, w.Description, w.Date)
}

func (r *PostgresRepository) Patch(ctx context.Context, ownerID, id string, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	set, args := dbx.SetClause(columns, 3)
	query := fmt.Sprintf(`UPDATE workouts SET %s, updated_at = now() WHERE owner_id = $1 AND id = $2`, set)
	return r.execOne(ctx, query, append([]any{ownerID, id}, args...)...)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.execOne(ctx, `DELETE FROM workouts WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, ownerID, userID string) ([]models.Workout, error) {
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE owner_id = $1 AND user_id = $2 ORDER BY date DESC, id ASC`, ownerID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanWorkout)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

// execOne runs a statement that must touch exactly the row it names.
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

package exercises

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/localdb"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/dbx"
)

type SQLiteRepository struct {
	db  *localdb.DB
	now func() time.Time
}

func NewSQLiteRepository(db *localdb.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const selectColumns = `SELECT id, workout_id, name, observations, image_url, position, last_synced_at FROM exercises`

func scanExercise(s dbx.Scanner) (models.Exercise, error) {
	var e models.Exercise
	var image sql.NullString
	var synced int64
	if err := s.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Observations, &image, &e.Position, &synced); err != nil {
		return models.Exercise{}, err
	}
	if image.Valid {
		e.ImageURL = &image.String
	}
	e.LastSyncedAt = time.UnixMilli(synced).UTC()
	return e, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Exercise, error) {
	e, err := scanExercise(r.db.Reader().QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise %s: %w", id, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) Snapshot(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	rows, err := r.db.Reader().QueryContext(ctx, selectColumns+` WHERE workout_id = ? ORDER BY position ASC, id ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanExercise)
	if err != nil {
		return nil, fmt.Errorf("failed to scan exercises: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) Watch(ctx context.Context, workoutID string) iter.Seq2[[]models.Exercise, error] {
	return localdb.Watch(ctx, r.db, func(ctx context.Context) ([]models.Exercise, error) {
		return r.Snapshot(ctx, workoutID)
	}, localdb.TableExercises)
}

const upsertQuery = `
	INSERT INTO exercises (id, workout_id, name, observations, image_url, position, last_synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		workout_id = excluded.workout_id,
		name = excluded.name,
		observations = excluded.observations,
		image_url = excluded.image_url,
		position = excluded.position,
		last_synced_at = excluded.last_synced_at
`

func (r *SQLiteRepository) Upsert(ctx context.Context, e models.Exercise) error {
	return r.UpsertMany(ctx, []models.Exercise{e})
}

func (r *SQLiteRepository) UpsertMany(ctx context.Context, es []models.Exercise) error {
	if len(es) == 0 {
		return nil
	}
	syncedAt := r.now().UnixMilli()
	return r.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range es {
			if e.ID == "" {
				return errors.New("exercise id is empty")
			}
			var image sql.NullString
			if e.ImageURL != nil {
				image = sql.NullString{String: *e.ImageURL, Valid: true}
			}
			_, err := tx.ExecContext(ctx, upsertQuery, e.ID, e.WorkoutID, e.Name, e.Observations, image, e.Position, syncedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert exercise %s: %w", e.ID, err)
			}
		}
		return nil
	}, localdb.TableExercises)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "delete exercise "+id, `DELETE FROM exercises WHERE id = ?`, id)
}

func (r *SQLiteRepository) exec(ctx context.Context, what, query string, args ...any) error {
	return r.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to %s: %w", what, err)
		}
		return nil
	}, localdb.TableExercises)
}

func (r *SQLiteRepository) MaxPosition(ctx context.Context, workoutID string) (int, bool, error) {
	var top sql.NullInt64
	err := r.db.Reader().QueryRowContext(ctx, `SELECT MAX(position) FROM exercises WHERE workout_id = ?`, workoutID).Scan(&top)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max position: %w", err)
	}
	if !top.Valid {
		return 0, false, nil
	}
	return int(top.Int64), true, nil
}

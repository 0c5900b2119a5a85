package workouts

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

// A workout delete cascades into exercises, so writers touch both tables.
var touched = []string{localdb.TableWorkouts, localdb.TableExercises}

type SQLiteRepository struct {
	db  *localdb.DB
	now func() time.Time
}

func NewSQLiteRepository(db *localdb.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const selectColumns = `SELECT id, user_id, name, description, date, last_synced_at FROM workouts`

func scanWorkout(s dbx.Scanner) (models.Workout, error) {
	var w models.Workout
	var date, synced int64
	if err := s.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &date, &synced); err != nil {
		return models.Workout{}, err
	}
	w.Date = time.UnixMilli(date).UTC()
	w.LastSyncedAt = time.UnixMilli(synced).UTC()
	return w, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Workout, error) {
	row := r.db.Reader().QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout %s: %w", id, err)
	}
	return &w, nil
}

func (r *SQLiteRepository) Snapshot(ctx context.Context, userID string) ([]models.Workout, error) {
	rows, err := r.db.Reader().QueryContext(ctx, selectColumns+` WHERE user_id = ? ORDER BY date DESC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanWorkout)
	if err != nil {
		return nil, fmt.Errorf("failed to scan workouts: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) Watch(ctx context.Context, userID string) iter.Seq2[[]models.Workout, error] {
	return localdb.Watch(ctx, r.db, func(ctx context.Context) ([]models.Workout, error) {
		return r.Snapshot(ctx, userID)
	}, localdb.TableWorkouts)
}

const upsertQuery = `
	INSERT INTO workouts (id, user_id, name, description, date, last_synced_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		user_id = excluded.user_id,
		name = excluded.name,
		description = excluded.description,
		date = excluded.date,
		last_synced_at = excluded.last_synced_at
`

func (r *SQLiteRepository) upsert(ctx context.Context, tx dbx.DBTX, w models.Workout, syncedAt int64) error {
	if w.ID == "" {
		return errors.New("workout id is empty")
	}
	_, err := tx.ExecContext(ctx, upsertQuery, w.ID, w.UserID, w.Name, w.Description, w.Date.UnixMilli(), syncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert workout %s: %w", w.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, w models.Workout) error {
	return r.UpsertMany(ctx, []models.Workout{w})
}

func (r *SQLiteRepository) UpsertMany(ctx context.Context, ws []models.Workout) error {
	if len(ws) == 0 {
		return nil
	}
	syncedAt := r.now().UnixMilli()
	return r.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for _, w := range ws {
			if err := r.upsert(ctx, tx, w, syncedAt); err != nil {
				return err
			}
		}
		return nil
	}, localdb.TableWorkouts)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return r.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete workout %s: %w", id, err)
		}
		return nil
	}, touched...)
}

func (r *SQLiteRepository) DeleteAllByParent(ctx context.Context, userID string) error {
	return r.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to delete workouts of %s: %w", userID, err)
		}
		return nil
	}, touched...)
}

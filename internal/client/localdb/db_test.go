package localdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gympro/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var n int
	err := db.Reader().QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{TableWorkouts, TableExercises, TableMetadata} {
		assert.True(t, tableExists(t, db, table), table)
	}
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "alice", "cache.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestOpen_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestForeignKeysCascade(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO workouts (id, user_id, name, date, last_synced_at) VALUES ('w1','u1','Legs',0,0)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO exercises (id, workout_id, name, position, last_synced_at) VALUES ('e1','w1','Squat',0,0)`)
		return err
	}, TableWorkouts, TableExercises)
	require.NoError(t, err)

	err = db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id='w1'`)
		return err
	}, TableWorkouts, TableExercises)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Reader().QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n))
	assert.Zero(t, n)

	err = db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO exercises (id, workout_id, name, position, last_synced_at) VALUES ('e2','missing','X',0,0)`)
		return err
	})
	require.Error(t, err, "foreign keys must be enforced")
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no change signal")
	}
}

func noSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected change signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChanges_NotifiesAfterCommitOnly(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ch, cancel := db.Changes(ctx, TableWorkouts)
	defer cancel()

	waitSignal(t, ch)

	err = db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return errors.New("abort")
	}, TableWorkouts)
	require.Error(t, err)
	noSignal(t, ch)

	require.NoError(t, db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error { return nil }, TableExercises))
	noSignal(t, ch)

	require.NoError(t, db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error { return nil }, TableWorkouts))
	waitSignal(t, ch)
}

func TestChanges_ClosedOnCancel(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ch, cancel := db.Changes(ctx, TableWorkouts, TableExercises)
	cancel()

	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", DSN(""))
	assert.Contains(t, DSN("/tmp/x.db"), "journal_mode(WAL)")
}

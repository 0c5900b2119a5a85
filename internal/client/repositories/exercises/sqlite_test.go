package exercises

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/localdb"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	db, err := localdb.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Reader().ExecContext(ctx, `INSERT INTO workouts (id, user_id, name, date, last_synced_at) VALUES ('w1','u1','Legs',0,0), ('w2','u1','Arms',0,0)`)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func ids(items []models.Exercise) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestUpsertAndGet_ImageURL(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	url := "https://x/y.jpg"
	require.NoError(t, r.Upsert(ctx, models.Exercise{ID: "e1", WorkoutID: "w1", Name: "Squat", ImageURL: &url}))
	require.NoError(t, r.Upsert(ctx, models.Exercise{ID: "e2", WorkoutID: "w1", Name: "Lunge", Position: 1}))

	e1, err := r.Get(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, e1.ImageURL)
	assert.Equal(t, url, *e1.ImageURL)

	e2, err := r.Get(ctx, "e2")
	require.NoError(t, err)
	assert.Nil(t, e2.ImageURL)

	missing, err := r.Get(ctx, "e3")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsert_UnknownWorkoutFails(t *testing.T) {
	r := setupRepo(t)
	require.Error(t, r.Upsert(context.Background(), models.Exercise{ID: "e1", WorkoutID: "nope"}))
}

func TestSnapshot_OrderedByPositionThenID(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.UpsertMany(ctx, []models.Exercise{
		{ID: "c", WorkoutID: "w1", Position: 1},
		{ID: "b", WorkoutID: "w1", Position: 0},
		{ID: "a", WorkoutID: "w1", Position: 1},
		{ID: "z", WorkoutID: "w2", Position: 0},
	}))

	items, err := r.Snapshot(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(items))
}

func TestMaxPosition(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	_, ok, err := r.MaxPosition(ctx, "w1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.UpsertMany(ctx, []models.Exercise{
		{ID: "a", WorkoutID: "w1", Position: 0},
		{ID: "b", WorkoutID: "w1", Position: 4},
	}))

	top, ok, err := r.MaxPosition(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, top)
}

func TestDelete(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.UpsertMany(ctx, []models.Exercise{
		{ID: "a", WorkoutID: "w1", Position: 0},
		{ID: "b", WorkoutID: "w1", Position: 1},
	}))

	require.NoError(t, r.Delete(ctx, "b"))
	require.NoError(t, r.Delete(ctx, "missing"))

	items, err := r.Snapshot(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(items))
}

func TestUpsertMany_IsAtomic(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	err := r.UpsertMany(ctx, []models.Exercise{
		{ID: "a", WorkoutID: "w1", Position: 0},
		{ID: "b", WorkoutID: "missing", Position: 1},
	})
	require.Error(t, err)

	items, err := r.Snapshot(ctx, "w1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWatch_SeesWrites(t *testing.T) {
	r := setupRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var seen [][]string
	for items, err := range r.Watch(ctx, "w1") {
		require.NoError(t, err)
		seen = append(seen, ids(items))
		if len(items) == 0 {
			require.NoError(t, r.Upsert(ctx, models.Exercise{ID: "e1", WorkoutID: "w1"}))
			continue
		}
		break
	}
	assert.Equal(t, [][]string{{}, {"e1"}}, seen)
}

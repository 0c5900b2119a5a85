package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/common"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseCreate_AssignsNextPosition(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	for i, name := range []string{"Squat", "Lunge", "Deadlift"} {
		id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: name, Position: 99})
		require.NoError(t, err)

		got, err := e.exercises.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i, got.Position)
	}
	assert.Zero(t, e.remoteE.totalCalls())
}

func TestExerciseCreate_OnlineSameIDInBothStores(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: "Squat"})
	require.NoError(t, err)

	cached, err := e.eCache.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, e.remoteE.has(id))
}

func TestExerciseCreate_UnknownWorkoutIsLocalFailure(t *testing.T) {
	e := newEnv(t, true)

	id, err := e.exercises.Create(context.Background(), models.Exercise{WorkoutID: "nope", Name: "Squat"})
	require.ErrorIs(t, err, common.ErrLocalStorage)
	assert.NotEmpty(t, id)
	assert.Zero(t, e.remoteE.callsOf("create"))
}

func TestExerciseUpdate_PatchesEditableFields(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: "Squat"})
	require.NoError(t, err)

	ex, err := e.exercises.Get(ctx, id)
	require.NoError(t, err)
	url := "https://x/y.jpg"
	ex.Name = "Front squat"
	ex.Observations = "slow eccentric"
	ex.ImageURL = &url
	require.NoError(t, e.exercises.Update(ctx, ex))

	require.Len(t, e.remoteE.patches[id], 1)
	assert.Equal(t, map[string]any{
		pb.FieldName:         "Front squat",
		pb.FieldObservations: "slow eccentric",
		pb.FieldImageURL:     url,
	}, e.remoteE.patches[id][0])

	cached, err := e.eCache.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, url, cached.Image())
}

func TestExerciseReorder_DensePositions(t *testing.T) {
	e := newEnv(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.seedWorkout(t, "w1")

	var created []models.Exercise
	for _, name := range []string{"a", "b", "c", "d"} {
		id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: name})
		require.NoError(t, err)
		ex, err := e.exercises.Get(ctx, id)
		require.NoError(t, err)
		created = append(created, ex)
	}

	reversed := []models.Exercise{created[3], created[2], created[1], created[0]}
	require.NoError(t, e.exercises.Reorder(ctx, reversed))

	e.online.Set(false)
	list := collect(e.exercises.ListByParent(ctx, "w1"))
	first := next(t, list)
	require.NoError(t, first.err)

	positions := make([]int, 0, len(first.items))
	for _, ex := range first.items {
		positions = append(positions, ex.Position)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, positions)
	assert.Equal(t, []string{created[3].ID, created[2].ID, created[1].ID, created[0].ID}, exerciseIDs(first.items))

	for i, ex := range reversed {
		patches := e.remoteE.patches[ex.ID]
		require.NotEmpty(t, patches)
		assert.Equal(t, map[string]any{pb.FieldPosition: i}, patches[len(patches)-1])
	}
}

func TestExerciseReorder_OfflineNoRemoteAndPatchFailuresSwallowed(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	items := []models.Exercise{
		{ID: "x", WorkoutID: "w1", Position: 5},
		{ID: "y", WorkoutID: "w1", Position: 7},
	}
	require.NoError(t, e.exercises.Reorder(ctx, items))
	assert.Zero(t, e.remoteE.totalCalls())

	e.online.Set(true)
	e.remoteE.failPatch = errTransport
	require.NoError(t, e.exercises.Reorder(ctx, []models.Exercise{items[1], items[0]}))
	assert.Equal(t, 2, e.remoteE.callsOf("patch"))

	y, err := e.eCache.Get(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, 0, y.Position)
}

func TestExerciseReorder_PatchesOnlyMovedItems(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	var created []models.Exercise
	for _, name := range []string{"a", "b", "c"} {
		id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: name})
		require.NoError(t, err)
		ex, err := e.exercises.Get(ctx, id)
		require.NoError(t, err)
		created = append(created, ex)
	}

	require.NoError(t, e.exercises.Reorder(ctx, []models.Exercise{created[1], created[0], created[2]}))

	assert.Equal(t, 2, e.remoteE.callsOf("patch"))
	assert.Equal(t, []map[string]any{{pb.FieldPosition: 0}}, e.remoteE.patches[created[1].ID])
	assert.Equal(t, []map[string]any{{pb.FieldPosition: 1}}, e.remoteE.patches[created[0].ID])
	assert.Empty(t, e.remoteE.patches[created[2].ID])
}

func TestExerciseDelete_ImageCleanupFailureDoesNotFailDelete(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	url := "https://x/y.jpg"
	id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: "Squat", ImageURL: &url})
	require.NoError(t, err)
	require.True(t, e.remoteE.has(id))

	e.assets.deleteErr = errTransport

	require.NoError(t, e.exercises.Delete(ctx, id))
	assert.Equal(t, []string{url}, e.assets.deleted, "asset deletion attempted")

	cached, err := e.eCache.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.False(t, e.remoteE.has(id))
}

func TestExerciseDelete_Offline(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	url := "https://x/y.jpg"
	id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: "Squat", ImageURL: &url})
	require.NoError(t, err)

	require.NoError(t, e.exercises.Delete(ctx, id))
	assert.Empty(t, e.assets.deleted)
	assert.Zero(t, e.remoteE.totalCalls())

	require.NoError(t, e.exercises.Delete(ctx, "never-cached"))
	assert.Zero(t, e.remoteE.totalCalls())
}

func TestExerciseDelete_UnresolvedStillDeletesRemotely(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()

	require.NoError(t, e.exercises.Delete(ctx, "ghost"))
	assert.Equal(t, 1, e.remoteE.callsOf("get"))
	assert.Equal(t, 1, e.remoteE.callsOf("delete"))
	assert.Empty(t, e.assets.deleted)
}

func TestExerciseDelete_LookupTransportFailure(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	url := "https://x/remote.png"
	e.remoteE.put(models.Exercise{ID: "r1", WorkoutID: "w1", Name: "Remote", ImageURL: &url})
	e.remoteE.failGet = errTransport

	require.NoError(t, e.exercises.Delete(ctx, "r1"))
	assert.Empty(t, e.assets.deleted, "image unknown, no cleanup")
	assert.Equal(t, 1, e.remoteE.callsOf("delete"))
	assert.False(t, e.remoteE.has("r1"))
}

func TestExerciseDelete_ResolvesFromRemote(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	url := "https://x/remote.png"
	e.remoteE.put(models.Exercise{ID: "r1", WorkoutID: "w1", Name: "Remote", ImageURL: &url})

	require.NoError(t, e.exercises.Delete(ctx, "r1"))
	assert.Equal(t, []string{url}, e.assets.deleted)
	assert.False(t, e.remoteE.has("r1"))

	cached, err := e.eCache.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestUploadImage_Preconditions(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	path := writeFile(t, "a.png", pngHeader)

	_, err := e.exercises.UploadImage(ctx, "", path)
	require.ErrorIs(t, err, common.ErrOffline)

	e.online.Set(true)
	e.sessionFor.userID = ""
	_, err = e.exercises.UploadImage(ctx, "", path)
	require.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.Empty(t, e.assets.uploaded)
}

func TestUploadImage_DetectsTypeAndUpdatesExercise(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.seedWorkout(t, "w1")

	id, err := e.exercises.Create(ctx, models.Exercise{WorkoutID: "w1", Name: "Squat"})
	require.NoError(t, err)

	url, err := e.exercises.UploadImage(ctx, id, writeFile(t, "photo", pngHeader))
	require.NoError(t, err)

	require.Len(t, e.assets.uploaded, 1)
	key := e.assets.uploaded[0]
	assert.True(t, strings.HasPrefix(key, "exercises/u1/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "image/png", e.assets.types[0])
	assert.Equal(t, "https://cdn.example/"+key, url)

	ex, err := e.exercises.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, url, ex.Image())
}

func TestUploadImage_UnknownTypeDefaultsToJPEG(t *testing.T) {
	e := newEnv(t, true)

	_, err := e.exercises.UploadImage(context.Background(), "", writeFile(t, "notes.txt", []byte("plain text")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(e.assets.uploaded[0], ".jpg"))
	assert.Equal(t, "image/jpeg", e.assets.types[0])
}

func TestUploadImage_TransportFailure(t *testing.T) {
	e := newEnv(t, true)
	e.assets.uploadErr = errTransport

	_, err := e.exercises.UploadImage(context.Background(), "", writeFile(t, "a.gif", []byte("GIF89a....")))
	require.ErrorIs(t, err, common.ErrRemoteTransport)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/connectivity"
	"github.com/dmitrijs2005/gympro/internal/client/localdb"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/exercises"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/workouts"
	"github.com/dmitrijs2005/gympro/internal/client/syncstate"
	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/logging"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection reset")

// fakeRemote is an in-memory RemoteStore that counts network calls.
// NewID is not a network call.
type fakeRemote[T models.Entity[T]] struct {
	mu      sync.Mutex
	docs    map[string]T
	patches map[string][]map[string]any
	calls   map[string]int
	ids     int
	prefix  string

	failList   error
	failGet    error
	failCreate error
	failDelete error
	failPatch  error
	// blockList makes List wait for ctx to be done.
	blockList bool
}

func newFakeRemote[T models.Entity[T]](prefix string) *fakeRemote[T] {
	return &fakeRemote[T]{
		docs:    make(map[string]T),
		patches: make(map[string][]map[string]any),
		calls:   make(map[string]int),
		prefix:  prefix,
	}
}

func (f *fakeRemote[T]) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeRemote[T]) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRemote[T]) callsOf(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote[T]) put(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[v.Key()] = v
}

func (f *fakeRemote[T]) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[id]
	return ok
}

func (f *fakeRemote[T]) NewID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids++
	return fmt.Sprintf("%s-%d", f.prefix, f.ids)
}

func (f *fakeRemote[T]) Create(ctx context.Context, id string, v T) (string, error) {
	f.count("create")
	if f.failCreate != nil {
		return "", f.failCreate
	}
	f.put(v)
	return id, nil
}

func (f *fakeRemote[T]) Get(ctx context.Context, id string) (T, error) {
	f.count("get")
	if f.failGet != nil {
		var zero T
		return zero, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.docs[id]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	return v, nil
}

func (f *fakeRemote[T]) Replace(ctx context.Context, id string, v T) error {
	f.count("replace")
	f.put(v)
	return nil
}

func (f *fakeRemote[T]) Patch(ctx context.Context, id string, fields map[string]any) error {
	f.count("patch")
	if f.failPatch != nil {
		return f.failPatch
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches[id] = append(f.patches[id], fields)
	return nil
}

func (f *fakeRemote[T]) Delete(ctx context.Context, id string) error {
	f.count("delete")
	if f.failDelete != nil {
		return f.failDelete
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeRemote[T]) List(ctx context.Context, parentID string) ([]T, error) {
	f.count("list")
	if f.blockList {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.failList != nil {
		return nil, f.failList
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, v := range f.docs {
		if v.Parent() == parentID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeAssets struct {
	mu        sync.Mutex
	deleted   []string
	uploaded  []string
	types     []string
	deleteErr error
	uploadErr error
}

func (f *fakeAssets) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, key)
	f.types = append(f.types, contentType)
	return "https://cdn.example/" + key, nil
}

func (f *fakeAssets) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

type fakeSession struct {
	userID string
	err    error
}

func (f fakeSession) CurrentUserID(context.Context) (string, error) { return f.userID, f.err }

type env struct {
	db         *localdb.DB
	wCache     *workouts.SQLiteRepository
	eCache     *exercises.SQLiteRepository
	meta       *metadata.SQLiteRepository
	remoteW    *fakeRemote[models.Workout]
	remoteE    *fakeRemote[models.Exercise]
	assets     *fakeAssets
	online     *connectivity.Manual
	sync       *syncstate.Coordinator
	prefs      *Preferences
	workouts   *WorkoutRepository
	exercises  *ExerciseRepository
	sessionFor *fakeSession
}

func newEnv(t *testing.T, online bool) *env {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &env{
		db:         db,
		wCache:     workouts.NewSQLiteRepository(db),
		eCache:     exercises.NewSQLiteRepository(db),
		meta:       metadata.NewSQLiteRepository(db),
		remoteW:    newFakeRemote[models.Workout]("w"),
		remoteE:    newFakeRemote[models.Exercise]("e"),
		assets:     &fakeAssets{},
		online:     connectivity.NewManual(online),
		sync:       syncstate.NewCoordinator(),
		sessionFor: &fakeSession{userID: "u1"},
	}
	e.prefs = NewPreferences(e.meta)
	e.workouts = NewWorkoutRepository(e.wCache, e.remoteW, e.online, e.sync, e.prefs, logging.Nop{})
	e.exercises = NewExerciseRepository(e.eCache, e.remoteE, e.assets, e.sessionFor, e.online, e.sync, logging.Nop{})
	return e
}

// seedWorkout puts a workout in the cache only.
func (e *env) seedWorkout(t *testing.T, id string) models.Workout {
	t.Helper()
	w := models.Workout{ID: id, UserID: "u1", Name: "Workout " + id, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, e.wCache.Upsert(context.Background(), w))
	return w
}

type emission[T any] struct {
	items []T
	err   error
}

// collect ranges over seq in the background. Emissions arrive on the
// returned channel, which is closed when the sequence ends.
func collect[T any](seq iter.Seq2[[]T, error]) <-chan emission[T] {
	out := make(chan emission[T], 16)
	go func() {
		defer close(out)
		for items, err := range seq {
			out <- emission[T]{items: items, err: err}
		}
	}()
	return out
}

func next[T any](t *testing.T, ch <-chan emission[T]) emission[T] {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "sequence ended")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
	}
	return emission[T]{}
}

func quiet[T any](t *testing.T, ch <-chan emission[T]) {
	t.Helper()
	select {
	case e, ok := <-ch:
		if ok {
			t.Fatalf("unexpected emission: %+v", e)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func exerciseIDs(items []models.Exercise) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func workoutIDs(items []models.Workout) []string {
	out := make([]string, 0, len(items))
	for _, w := range items {
		out = append(out, w.ID)
	}
	return out
}

func nopLogger() logging.Logger { return logging.Nop{} }

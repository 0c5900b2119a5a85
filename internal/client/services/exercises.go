package services

import (
	"context"
	"iter"

	"github.com/dmitrijs2005/gympro/internal/client/connectivity"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/exercises"
	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/logging"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
)

type ExerciseRepository struct {
	r       reconciler[models.Exercise]
	cache   exercises.Repository
	assets  AssetStore
	session SessionProvider
}

func NewExerciseRepository(
	local exercises.Repository,
	remote RemoteStore[models.Exercise],
	assets AssetStore,
	session SessionProvider,
	online connectivity.Monitor,
	sync SyncTracker,
	l logging.Logger,
) *ExerciseRepository {
	return &ExerciseRepository{
		r: reconciler[models.Exercise]{
			kind:   "exercises",
			local:  local,
			remote: remote,
			online: online,
			sync:   sync,
			logger: l.With("module", "exercises"),
		},
		cache:   local,
		assets:  assets,
		session: session,
	}
}

// Create appends the exercise after the last cached sibling.
func (e *ExerciseRepository) Create(ctx context.Context, exercise models.Exercise) (string, error) {
	op := e.r.op("create")

	id := e.r.remote.NewID()
	exercise.ID = id

	top, ok, err := e.cache.MaxPosition(ctx, exercise.WorkoutID)
	if err != nil {
		return id, common.E(common.KindLocalStorage, op, id, err)
	}
	exercise.Position = 0
	if ok {
		exercise.Position = top + 1
	}

	if err := e.cache.Upsert(ctx, exercise); err != nil {
		return id, common.E(common.KindLocalStorage, op, id, err)
	}

	e.r.mirror(ctx, op, id, func(ctx context.Context) error {
		_, err := e.r.remote.Create(ctx, id, exercise)
		return err
	})
	return id, nil
}

func imageField(ex models.Exercise) any {
	if ex.ImageURL == nil {
		return nil
	}
	return *ex.ImageURL
}

// Update caches the exercise and patches its editable fields remotely.
func (e *ExerciseRepository) Update(ctx context.Context, exercise models.Exercise) error {
	op := e.r.op("update")
	if exercise.ID == "" {
		return common.E(common.KindLocalStorage, op, "", errNoID)
	}

	if err := e.cache.Upsert(ctx, exercise); err != nil {
		return common.E(common.KindLocalStorage, op, exercise.ID, err)
	}

	e.r.mirror(ctx, op, exercise.ID, func(ctx context.Context) error {
		return e.r.remote.Patch(ctx, exercise.ID, map[string]any{
			pb.FieldName:         exercise.Name,
			pb.FieldObservations: exercise.Observations,
			pb.FieldImageURL:     imageField(exercise),
		})
	})
	return nil
}

// Delete removes the exercise. The lookup only finds the image to clean
// up: when it fails the delete goes ahead without the cleanup. When online
// the image is deleted first on a best-effort basis, then the remote
// document.
func (e *ExerciseRepository) Delete(ctx context.Context, id string) error {
	op := e.r.op("delete")

	var image string
	if exercise, err := e.r.get(ctx, id); err != nil {
		e.r.logger.Debug(ctx, "Exercise not resolved, image cleanup skipped", "op", op, "id", id, "error", err)
	} else {
		image = exercise.Image()
	}

	if err := e.cache.Delete(ctx, id); err != nil {
		return common.E(common.KindLocalStorage, op, id, err)
	}

	e.r.mirror(ctx, op, id, func(ctx context.Context) error {
		if image != "" && e.assets != nil {
			if err := e.assets.Delete(ctx, image); err != nil {
				e.r.logger.Debug(ctx, "Image cleanup failed", "id", id, "url", image, "error", err)
			}
		}
		return e.r.remote.Delete(ctx, id)
	})
	return nil
}

func (e *ExerciseRepository) Get(ctx context.Context, id string) (models.Exercise, error) {
	return e.r.get(ctx, id)
}

// ListByParent streams the workout's exercises ordered by position.
func (e *ExerciseRepository) ListByParent(ctx context.Context, workoutID string) iter.Seq2[[]models.Exercise, error] {
	return e.r.listByParent(ctx, workoutID)
}

// Reorder assigns positions 0..n-1 following the order of items. The cache
// is updated in one transaction; each position that differs from the cached
// one is then patched remotely.
func (e *ExerciseRepository) Reorder(ctx context.Context, items []models.Exercise) error {
	op := e.r.op("reorder")

	ordered := make([]models.Exercise, len(items))
	changed := make([]bool, len(items))
	for i, ex := range items {
		if ex.ID == "" {
			return common.E(common.KindLocalStorage, op, "", errNoID)
		}
		cached, err := e.cache.Get(ctx, ex.ID)
		if err != nil {
			return common.E(common.KindLocalStorage, op, ex.ID, err)
		}
		changed[i] = cached == nil || cached.Position != i
		ex.Position = i
		ordered[i] = ex
	}

	if err := e.cache.UpsertMany(ctx, ordered); err != nil {
		return common.E(common.KindLocalStorage, op, "", err)
	}

	if !e.r.online.Online(ctx) {
		return nil
	}
	for i, ex := range ordered {
		if !changed[i] {
			continue
		}
		if err := e.r.remote.Patch(ctx, ex.ID, map[string]any{pb.FieldPosition: ex.Position}); err != nil {
			e.r.logger.Warn(ctx, "Remote mirror failed", "op", op, "id", ex.ID, "error", err)
		}
	}
	return nil
}

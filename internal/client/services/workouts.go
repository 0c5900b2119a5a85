package services

import (
	"context"
	"errors"
	"iter"

	"github.com/dmitrijs2005/gympro/internal/client/connectivity"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/workouts"
	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/logging"
)

var errNoID = errors.New("entity has no id")

type WorkoutRepository struct {
	r     reconciler[models.Workout]
	prefs LastSyncRecorder
}

func NewWorkoutRepository(
	local workouts.Repository,
	remote RemoteStore[models.Workout],
	online connectivity.Monitor,
	sync SyncTracker,
	prefs LastSyncRecorder,
	l logging.Logger,
) *WorkoutRepository {
	return &WorkoutRepository{
		r: reconciler[models.Workout]{
			kind:   "workouts",
			local:  local,
			remote: remote,
			online: online,
			sync:   sync,
			logger: l.With("module", "workouts"),
		},
		prefs: prefs,
	}
}

// Create reserves an id, caches the workout and mirrors it when online. The
// id is returned even on failure.
func (w *WorkoutRepository) Create(ctx context.Context, workout models.Workout) (string, error) {
	op := w.r.op("create")

	id := w.r.remote.NewID()
	workout.ID = id

	if err := w.r.local.Upsert(ctx, workout); err != nil {
		return id, common.E(common.KindLocalStorage, op, id, err)
	}

	w.r.mirror(ctx, op, id, func(ctx context.Context) error {
		_, err := w.r.remote.Create(ctx, id, workout)
		return err
	})

	if w.prefs != nil {
		if err := w.prefs.UpdateLastSync(ctx); err != nil {
			w.r.logger.Warn(ctx, "Last sync not recorded", "error", err)
		}
	}
	return id, nil
}

// Update replaces the cached workout and the remote document.
func (w *WorkoutRepository) Update(ctx context.Context, workout models.Workout) error {
	op := w.r.op("update")
	if workout.ID == "" {
		return common.E(common.KindLocalStorage, op, "", errNoID)
	}

	if err := w.r.local.Upsert(ctx, workout); err != nil {
		return common.E(common.KindLocalStorage, op, workout.ID, err)
	}

	w.r.mirror(ctx, op, workout.ID, func(ctx context.Context) error {
		return w.r.remote.Replace(ctx, workout.ID, workout)
	})
	return nil
}

// Delete removes the workout and its cached exercises. Remote exercises of
// the workout are left to the caller.
func (w *WorkoutRepository) Delete(ctx context.Context, id string) error {
	op := w.r.op("delete")

	if err := w.r.local.Delete(ctx, id); err != nil {
		return common.E(common.KindLocalStorage, op, id, err)
	}

	w.r.mirror(ctx, op, id, func(ctx context.Context) error {
		return w.r.remote.Delete(ctx, id)
	})
	return nil
}

func (w *WorkoutRepository) Get(ctx context.Context, id string) (models.Workout, error) {
	return w.r.get(ctx, id)
}

// ListByParent streams the user's workouts, newest first.
func (w *WorkoutRepository) ListByParent(ctx context.Context, userID string) iter.Seq2[[]models.Workout, error] {
	return w.r.listByParent(ctx, userID)
}

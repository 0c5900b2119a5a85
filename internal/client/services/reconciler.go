package services

import (
	"context"
	"errors"
	"iter"

	"github.com/dmitrijs2005/gympro/internal/client/connectivity"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/client/stream"
	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/logging"
)

// reconciler holds the parts shared by the workout and exercise
// repositories.
type reconciler[T models.Entity[T]] struct {
	kind   string
	local  LocalStore[T]
	remote RemoteStore[T]
	online connectivity.Monitor
	sync   SyncTracker
	logger logging.Logger
}

func (r *reconciler[T]) op(name string) string {
	return r.kind + "." + name
}

func remoteFailure(op, id string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.E(common.KindNotFound, op, id, nil)
	}
	return common.E(common.KindRemoteTransport, op, id, err)
}

// mirror runs fn against the server when online. Failures are logged and
// dropped: the local write already succeeded.
func (r *reconciler[T]) mirror(ctx context.Context, op, id string, fn func(ctx context.Context) error) {
	if !r.online.Online(ctx) {
		r.logger.Debug(ctx, "Offline, remote mirror skipped", "op", op, "id", id)
		return
	}
	if err := fn(ctx); err != nil {
		r.logger.Warn(ctx, "Remote mirror failed", "op", op, "id", id, "error", err)
	}
}

// get serves the cache first, then the server when online, caching what it
// fetched.
func (r *reconciler[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	op := r.op("get")

	cached, err := r.local.Get(ctx, id)
	if err != nil {
		return zero, common.E(common.KindLocalStorage, op, id, err)
	}
	if cached != nil {
		return *cached, nil
	}

	if !r.online.Online(ctx) {
		return zero, common.E(common.KindNotFoundOffline, op, id, nil)
	}

	v, err := r.remote.Get(ctx, id)
	if err != nil {
		return zero, remoteFailure(op, id, err)
	}
	if err := r.local.Upsert(ctx, v); err != nil {
		return zero, common.E(common.KindLocalStorage, op, id, err)
	}
	return v, nil
}

// merge pulls the remote snapshot of parentID into the cache. Errors are
// logged and dropped.
func (r *reconciler[T]) merge(ctx context.Context, parentID string) {
	r.sync.Track(func() {
		items, err := r.remote.List(ctx, parentID)
		if err != nil {
			r.logger.Warn(ctx, "Remote fetch failed", "op", r.op("list"), "parent", parentID, "error", err)
			return
		}
		if err := r.local.UpsertMany(ctx, items); err != nil {
			r.logger.Warn(ctx, "Merge into cache failed", "op", r.op("list"), "parent", parentID, "error", err)
			return
		}
		r.logger.Debug(ctx, "Merged remote snapshot", "op", r.op("list"), "parent", parentID, "count", len(items))
	})
}

// listByParent yields the cached snapshot, then the snapshot after merging
// the server copy (online only), then every later change of the cache.
// Consecutive equal snapshots are dropped. A cache failure is yielded and
// ends the sequence; server failures are not surfaced.
func (r *reconciler[T]) listByParent(ctx context.Context, parentID string) iter.Seq2[[]T, error] {
	op := r.op("list")

	stages := func(yield func([]T, error) bool) {
		local, err := r.local.Snapshot(ctx, parentID)
		if err != nil {
			yield(nil, common.E(common.KindLocalStorage, op, parentID, err))
			return
		}
		if !yield(local, nil) {
			return
		}

		if r.online.Online(ctx) {
			r.merge(ctx, parentID)
			if ctx.Err() != nil {
				return
			}
			merged, err := r.local.Snapshot(ctx, parentID)
			if err != nil {
				r.logger.Warn(ctx, "Cache re-read failed", "op", op, "parent", parentID, "error", err)
			} else if !yield(merged, nil) {
				return
			}
		}

		for items, err := range r.local.Watch(ctx, parentID) {
			if err != nil {
				yield(nil, common.E(common.KindLocalStorage, op, parentID, err))
				return
			}
			if !yield(items, nil) {
				return
			}
		}
	}

	return stream.Distinct(stages, models.EqualSlices[T])
}

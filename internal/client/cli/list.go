package cli

import (
	"context"
	"iter"
	"time"
)

type snapshot[T any] struct {
	items []T
	err   error
}

// settle returns the newest snapshot that list yields within wait of the
// first one. A wait of zero returns the first snapshot.
func settle[T any](ctx context.Context, list func(context.Context) iter.Seq2[[]T, error], wait time.Duration) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan snapshot[T])
	go func() {
		defer close(ch)
		for items, err := range list(ctx) {
			select {
			case ch <- snapshot[T]{items: items, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	first, ok := <-ch
	if !ok {
		return nil, ctx.Err()
	}
	if first.err != nil || wait <= 0 {
		return first.items, first.err
	}

	latest := first.items
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return latest, nil
			}
			if s.err != nil {
				return latest, s.err
			}
			latest = s.items
		case <-timer.C:
			return latest, nil
		}
	}
}

// waitFor is zero while offline: only the cached snapshot is coming.
func (a *App) waitFor(ctx context.Context) time.Duration {
	if !a.online.Online(ctx) {
		return 0
	}
	return a.listWait
}

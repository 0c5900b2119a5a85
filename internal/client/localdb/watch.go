package localdb

import (
	"context"
	"iter"
)

// Watch runs query once right away and again after each committed write to
// one of tables. It stops when ctx is done, the consumer stops, or query
// fails (the error is yielded first).
func Watch[T any](ctx context.Context, db *DB, query func(ctx context.Context) (T, error), tables ...string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		changes, cancel := db.Changes(ctx, tables...)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}

			v, err := query(ctx)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

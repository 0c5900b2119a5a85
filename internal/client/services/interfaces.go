// Package services holds the repositories the CLI talks to. Each one writes
// to the local cache first and mirrors to the document server when the
// connectivity monitor says it is reachable. Reads are served from the cache
// and reconciled with the server on demand; nothing syncs in the background.
package services

import (
	"context"
	"io"
	"iter"
)

// LocalStore is the cache of one entity kind.
type LocalStore[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	Snapshot(ctx context.Context, parentID string) ([]T, error)
	Watch(ctx context.Context, parentID string) iter.Seq2[[]T, error]
	Upsert(ctx context.Context, v T) error
	UpsertMany(ctx context.Context, vs []T) error
	Delete(ctx context.Context, id string) error
}

// RemoteStore is the authoritative document collection of one entity kind.
type RemoteStore[T any] interface {
	// NewID reserves an id without writing.
	NewID() string
	Create(ctx context.Context, id string, v T) (string, error)
	Get(ctx context.Context, id string) (T, error)
	Replace(ctx context.Context, id string, v T) error
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, parentID string) ([]T, error)
}

type AssetStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// SyncTracker is satisfied by syncstate.Coordinator.
type SyncTracker interface {
	Track(fn func())
}

type SessionProvider interface {
	// CurrentUserID returns "" when nobody is logged in.
	CurrentUserID(ctx context.Context) (string, error)
}

type LastSyncRecorder interface {
	UpdateLastSync(ctx context.Context) error
}

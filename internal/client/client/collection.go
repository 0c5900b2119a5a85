package client

import (
	"context"

	"github.com/dmitrijs2005/gympro/internal/client/models"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

// Collection is the remote document collection of one entity kind. Each
// method makes a single attempt.
type Collection[T any] struct {
	c     *GRPCClient
	name  string
	codec Codec[T]
	newID func() string
}

func NewCollection[T any](c *GRPCClient, name string, codec Codec[T]) *Collection[T] {
	return &Collection[T]{c: c, name: name, codec: codec, newID: uuid.NewString}
}

func NewWorkouts(c *GRPCClient) *Collection[models.Workout] {
	return NewCollection(c, pb.CollectionWorkouts, WorkoutCodec)
}

func NewExercises(c *GRPCClient) *Collection[models.Exercise] {
	return NewCollection(c, pb.CollectionExercises, ExerciseCodec)
}

// NewID reserves a document id without writing anything.
func (r *Collection[T]) NewID() string {
	return r.newID()
}

func (r *Collection[T]) request(id string, extra map[string]any) (*structpb.Struct, error) {
	kv := map[string]any{pb.KeyCollection: r.name}
	if id != "" {
		kv[pb.KeyID] = id
	}
	for k, v := range extra {
		kv[k] = v
	}
	return pb.NewRequest(kv)
}

func (r *Collection[T]) encode(v T) (*structpb.Struct, error) {
	return structpb.NewStruct(r.codec.Encode(v))
}

// Create writes v under id and returns the id the server stored it under.
// An empty id lets the server mint one.
func (r *Collection[T]) Create(ctx context.Context, id string, v T) (string, error) {
	doc, err := r.encode(v)
	if err != nil {
		return "", err
	}
	req, err := r.request(id, map[string]any{pb.KeyData: doc})
	if err != nil {
		return "", err
	}
	resp, err := r.c.client.CreateDocument(ctx, req)
	if err != nil {
		return "", r.c.mapError(err)
	}
	if resp.GetValue() == "" {
		return "", ErrBadResponse
	}
	return resp.GetValue(), nil
}

// Get fails with common.ErrNotFound when the document does not exist.
func (r *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	req, err := r.request(id, nil)
	if err != nil {
		return zero, err
	}
	resp, err := r.c.client.GetDocument(ctx, req)
	if err != nil {
		return zero, r.c.mapError(err)
	}
	return r.codec.Decode(resp), nil
}

// Replace overwrites the whole document.
func (r *Collection[T]) Replace(ctx context.Context, id string, v T) error {
	doc, err := r.encode(v)
	if err != nil {
		return err
	}
	req, err := r.request(id, map[string]any{pb.KeyData: doc})
	if err != nil {
		return err
	}
	if _, err := r.c.client.ReplaceDocument(ctx, req); err != nil {
		return r.c.mapError(err)
	}
	return nil
}

// Patch updates the named fields only.
func (r *Collection[T]) Patch(ctx context.Context, id string, fields map[string]any) error {
	patch, err := structpb.NewStruct(fields)
	if err != nil {
		return err
	}
	req, err := r.request(id, map[string]any{pb.KeyFields: patch})
	if err != nil {
		return err
	}
	if _, err := r.c.client.PatchDocument(ctx, req); err != nil {
		return r.c.mapError(err)
	}
	return nil
}

func (r *Collection[T]) Delete(ctx context.Context, id string) error {
	req, err := r.request(id, nil)
	if err != nil {
		return err
	}
	if _, err := r.c.client.DeleteDocument(ctx, req); err != nil {
		return r.c.mapError(err)
	}
	return nil
}

// List fetches every document whose parent field equals parentID.
func (r *Collection[T]) List(ctx context.Context, parentID string) ([]T, error) {
	req, err := r.request("", map[string]any{pb.KeyParentID: parentID})
	if err != nil {
		return nil, err
	}
	resp, err := r.c.client.ListDocuments(ctx, req)
	if err != nil {
		return nil, r.c.mapError(err)
	}

	items := make([]T, 0, len(resp.GetValues()))
	for _, v := range resp.GetValues() {
		doc := v.GetStructValue()
		if doc == nil {
			return nil, ErrBadResponse
		}
		items = append(items, r.codec.Decode(doc))
	}
	return items, nil
}

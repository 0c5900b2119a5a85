package grpc

import (
	"context"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeUsers struct {
	registerErr error
	loginErr    error
	registered  []string
}

func (f *fakeUsers) Register(_ context.Context, userName, _ string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, userName)
	return &models.User{ID: "acc-" + userName, UserName: userName}, nil
}

func (f *fakeUsers) Login(_ context.Context, userName, password string) (string, string, error) {
	if f.loginErr != nil {
		return "", "", f.loginErr
	}
	return "acc-" + userName, "token-" + userName, nil
}

func (f *fakeUsers) AccountID(token string) (string, error) {
	switch token {
	case "token-alice":
		return "acc-alice", nil
	case "expired":
		return "", common.ErrTokenExpired
	default:
		return "", common.ErrInvalidToken
	}
}

type call struct {
	op, owner, collection, id string
}

type fakeDocuments struct {
	calls []call
	docs  map[string]*structpb.Struct
	err   error
}

func (f *fakeDocuments) record(op, owner, collection, id string) error {
	f.calls = append(f.calls, call{op, owner, collection, id})
	return f.err
}

func (f *fakeDocuments) Create(_ context.Context, owner, collection, id string, data *structpb.Struct) (string, error) {
	if err := f.record("create", owner, collection, id); err != nil {
		return "", err
	}
	if id == "" {
		id = "minted"
	}
	f.docs[id] = data
	return id, nil
}

func (f *fakeDocuments) Get(_ context.Context, owner, collection, id string) (*structpb.Struct, error) {
	if err := f.record("get", owner, collection, id); err != nil {
		return nil, err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocuments) Replace(_ context.Context, owner, collection, id string, data *structpb.Struct) error {
	return f.record("replace", owner, collection, id)
}

func (f *fakeDocuments) Patch(_ context.Context, owner, collection, id string, fields *structpb.Struct) error {
	return f.record("patch", owner, collection, id)
}

func (f *fakeDocuments) Delete(_ context.Context, owner, collection, id string) error {
	return f.record("delete", owner, collection, id)
}

func (f *fakeDocuments) List(_ context.Context, owner, collection, parentID string) ([]*structpb.Struct, error) {
	if err := f.record("list", owner, collection, parentID); err != nil {
		return nil, err
	}
	out := make([]*structpb.Struct, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

type fakeAssets struct {
	deleted []string
	err     error
}

func (f *fakeAssets) PresignUpload(_ context.Context, owner, key, contentType string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "https://s3/put/" + key, "https://cdn/" + key, nil
}

func (f *fakeAssets) DeleteAsset(_ context.Context, owner, url string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, owner+":"+url)
	return nil
}

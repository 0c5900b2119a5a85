package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/server/config"
)

// ObjectStore is the bucket holding exercise images.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// AssetService hands out upload URLs for exercise images and deletes them.
// Keys are "exercises/{account}/{name}{ext}".
type AssetService struct {
	store      ObjectStore
	publicBase string
	ttl        time.Duration
}

func NewAssetService(store ObjectStore, cfg *config.Config) *AssetService {
	return &AssetService{store: store, publicBase: cfg.PublicBaseURL(), ttl: cfg.PresignValidity}
}

var imageExts = map[string]bool{".gif": true, ".png": true, ".jpg": true}

func ownerPrefix(ownerID string) string {
	return "exercises/" + ownerID + "/"
}

func (s *AssetService) checkKey(ownerID, key string) error {
	prefix := ownerPrefix(ownerID)
	name, ok := strings.CutPrefix(key, prefix)
	if !ok || name == "" || strings.Contains(name, "/") || path.Clean(key) != key {
		return common.ErrForbidden
	}
	if !imageExts[path.Ext(name)] {
		return invalid("unsupported image extension %q", path.Ext(name))
	}
	return nil
}

// PresignUpload returns a PUT URL for key and the URL the object will be
// served from.
func (s *AssetService) PresignUpload(ctx context.Context, ownerID, key, contentType string) (string, string, error) {
	if err := s.checkKey(ownerID, key); err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", invalid("content type %q is not an image", contentType)
	}

	uploadURL, err := s.store.PresignPut(ctx, key, contentType, s.ttl)
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}
	return uploadURL, s.publicBase + "/" + key, nil
}

// DeleteAsset removes the object behind a public URL issued by
// PresignUpload.
func (s *AssetService) DeleteAsset(ctx context.Context, ownerID, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, s.publicBase+"/")
	if !ok {
		return common.ErrForbidden
	}
	if err := s.checkKey(ownerID, key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

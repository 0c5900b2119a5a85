package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// imageType maps a detected MIME type to the stored extension and content
// type. Anything that is not a GIF or PNG is stored as JPEG.
func imageType(m *mimetype.MIME) (ext, contentType string) {
	switch {
	case m.Is("image/gif"):
		return ".gif", "image/gif"
	case m.Is("image/png"):
		return ".png", "image/png"
	default:
		return ".jpg", "image/jpeg"
	}
}

// ImageKey is the object key of an uploaded exercise image.
func ImageKey(userID, ext string) string {
	return fmt.Sprintf("exercises/%s/%s%s", userID, uuid.NewString(), ext)
}

// UploadImage uploads the file at path and returns its public URL. When
// exerciseID is set, the exercise is updated to point at the new image.
// It needs connectivity and a logged-in user.
func (e *ExerciseRepository) UploadImage(ctx context.Context, exerciseID, path string) (string, error) {
	op := e.r.op("upload_image")

	if !e.r.online.Online(ctx) {
		return "", common.E(common.KindOffline, op, exerciseID, nil)
	}

	userID, err := e.session.CurrentUserID(ctx)
	if err != nil {
		return "", common.E(common.KindLocalStorage, op, exerciseID, err)
	}
	if userID == "" {
		return "", common.E(common.KindUnauthenticated, op, exerciseID, nil)
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: detect type: %w", op, err)
	}
	ext, contentType := imageType(m)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	url, err := e.assets.Upload(ctx, ImageKey(userID, ext), contentType, f)
	if err != nil {
		return "", remoteFailure(op, exerciseID, err)
	}

	if exerciseID == "" {
		return url, nil
	}

	exercise, err := e.r.get(ctx, exerciseID)
	if err != nil {
		return url, err
	}
	exercise.ImageURL = &url
	return url, e.Update(ctx, exercise)
}

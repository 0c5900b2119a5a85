package client

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gympro/internal/netx"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Assets stores exercise images in the object store behind the server.
type Assets struct {
	c    *GRPCClient
	http *http.Client
}

func NewAssets(c *GRPCClient, httpClient *http.Client) *Assets {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Assets{c: c, http: httpClient}
}

// Upload asks the server for a presigned PUT for key, sends body there and
// returns the public URL of the object.
func (a *Assets) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	req, err := pb.NewRequest(map[string]any{pb.KeyObjectKey: key, pb.KeyContentType: contentType})
	if err != nil {
		return "", err
	}
	resp, err := a.c.client.PresignUpload(ctx, req)
	if err != nil {
		return "", a.c.mapError(err)
	}

	uploadURL := pb.String(resp, pb.KeyUploadURL)
	publicURL := pb.String(resp, pb.KeyPublicURL)
	if uploadURL == "" || publicURL == "" {
		return "", ErrBadResponse
	}

	if err := netx.UploadToPresignedURL(ctx, a.http, uploadURL, contentType, body); err != nil {
		return "", err
	}
	return publicURL, nil
}

// Delete removes the object behind a public URL returned by Upload.
func (a *Assets) Delete(ctx context.Context, url string) error {
	if _, err := a.c.client.DeleteAsset(ctx, wrapperspb.String(url)); err != nil {
		return a.c.mapError(err)
	}
	return nil
}

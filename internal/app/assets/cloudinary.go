package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// callTimeout bounds every remote call. A slow asset store must not hold a
// request open indefinitely; timeouts surface as upload/delete failures and
// are handled by the usual rules (upload fatal, delete best-effort).
const callTimeout = 10 * time.Second

// Cloudinary is the production Store backed by the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
	log *zap.Logger
}

// NewCloudinary builds a Store from explicit credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, log: logger}, nil
}

// Upload stores the reader's bytes under folder/name and returns the
// delivery URL plus the public id needed for later deletion.
func (c *Cloudinary) Upload(ctx context.Context, folder, name string, r io.Reader) (Ref, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return Ref{}, fmt.Errorf("asset upload: %w", err)
	}
	if resp.Error.Message != "" {
		return Ref{}, fmt.Errorf("asset upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return Ref{}, errors.New("asset upload: empty URL in response")
	}
	return Ref{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete removes the remote object for the given public id.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("asset delete %q: %w", publicID, err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("asset delete %q: %s", publicID, resp.Result)
	}
	return nil
}

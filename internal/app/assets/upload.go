package assets

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

// UploadFromForm checks one multipart file against the constraints and
// streams it to the store under a fresh random name. Names never collide,
// so a retried upload cannot overwrite an asset still referenced by a
// document.
func UploadFromForm(ctx context.Context, s Store, fh *multipart.FileHeader, folder string, cons Constraints) (Ref, error) {
	if err := cons.Check(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return Ref{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Ref{}, err
	}
	defer f.Close()
	return s.Upload(ctx, folder, uuid.NewString(), f)
}

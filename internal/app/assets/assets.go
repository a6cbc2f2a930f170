// Package assets is the gateway to the remote image store (Cloudinary).
//
// Every image URL embedded in a document is jointly owned by that document
// and the remote store: replacing or removing the reference must also remove
// the remote object. Uploads are fatal on failure (the caller's operation
// fails); deletes are best-effort (logged, surfaced as warnings, never
// propagated).
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// Folders used by the upload paths. These mirror the public URL layout the
// site frontend expects.
const (
	FolderCompanyLogos = "company_images/logos"
	FolderTeam         = "company_images/team"
	FolderPartners     = "company_images/partners"
	FolderProperties   = "property_images"
	FolderAgents       = "agent_images"
	FolderBlogs        = "blog_images"
	FolderAttachments  = "quote_attachments"
)

// Ref identifies one stored asset: the canonical delivery URL and the
// opaque id the store uses for deletion.
type Ref struct {
	URL      string
	PublicID string
}

// Store uploads and deletes remote assets.
//
// Delete failures are expected to be treated as non-fatal by callers: a
// dangling remote object is less harmful than failing the write that
// orphaned it.
type Store interface {
	Upload(ctx context.Context, folder, name string, r io.Reader) (Ref, error)
	Delete(ctx context.Context, publicID string) error
}

// Constraints bound one upload before any bytes leave the process.
type Constraints struct {
	MaxBytes    int64
	AllowedExts []string // lowercase, with dot; empty means any
	ImagesOnly  bool     // require an image/* content type
}

// Per-kind upload constraints, matching the limits the site enforces.
var (
	LogoConstraints = Constraints{
		MaxBytes:    5 << 20,
		AllowedExts: []string{".jpg", ".jpeg", ".png", ".webp", ".svg"},
		ImagesOnly:  true,
	}
	TeamImageConstraints = Constraints{
		MaxBytes:    3 << 20,
		AllowedExts: []string{".jpg", ".jpeg", ".png", ".webp"},
		ImagesOnly:  true,
	}
	PartnerLogoConstraints = Constraints{
		MaxBytes:    2 << 20,
		AllowedExts: []string{".jpg", ".jpeg", ".png", ".webp", ".svg"},
		ImagesOnly:  true,
	}
	ImageConstraints = Constraints{
		MaxBytes:    5 << 20,
		AllowedExts: []string{".jpg", ".jpeg", ".png", ".webp"},
		ImagesOnly:  true,
	}
	AttachmentConstraints = Constraints{
		MaxBytes: 10 << 20,
	}
)

// ErrFileTooLarge and ErrBadFileType report constraint violations; they are
// client errors, not transport failures.
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrBadFileType  = errors.New("file type not allowed")
)

// Check validates an incoming file against the constraints.
func (c Constraints) Check(filename, contentType string, size int64) error {
	if c.MaxBytes > 0 && size > c.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, c.MaxBytes)
	}
	if c.ImagesOnly && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: only image files are allowed", ErrBadFileType)
	}
	if len(c.AllowedExts) > 0 {
		ext := strings.ToLower(path.Ext(filename))
		ok := false
		for _, a := range c.AllowedExts {
			if ext == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrBadFileType, ext)
		}
	}
	return nil
}

// publicIDRe extracts the path between the version marker and the final
// extension dot, e.g. ".../v123/folder/name.png" -> "folder/name".
var publicIDRe = regexp.MustCompile(`/v\d+/(.+)\.`)

// PublicIDFromURL derives the opaque asset id from a delivery URL.
// It is pure and side-effect free; ok is false for malformed input.
func PublicIDFromURL(url string) (id string, ok bool) {
	m := publicIDRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

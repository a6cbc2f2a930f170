// internal/app/features/blogs/admin.go
package blogs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/assets"
	blogstore "github.com/imanprime/estatecms/internal/app/store/blogs"
	"github.com/imanprime/estatecms/internal/app/system/authz"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

const maxMultipartMemory = 8 << 20

func blogIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "blogId"))
	if err != nil {
		respond.BadRequest(w, "invalid blog post id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseForm applies the multipart text fields to the post and, when set is
// non-nil, records the same changes as $set entries. Content is sanitized
// here so no write path stores raw HTML.
func (h *Handler) parseForm(r *http.Request, b *models.Blog, set bson.M) error {
	setStr := func(key, v string, dst *string) {
		*dst = v
		if set != nil {
			set[key] = v
		}
	}

	if v := r.FormValue("title"); v != "" {
		setStr("title", strings.TrimSpace(v), &b.Title)
	}
	if v := r.FormValue("content"); v != "" {
		setStr("content", h.sanitize.Sanitize(v), &b.Content)
	}
	if v := r.FormValue("excerpt"); v != "" {
		setStr("excerpt", strings.TrimSpace(v), &b.Excerpt)
	}
	if v := r.FormValue("author"); v != "" {
		setStr("author", strings.TrimSpace(v), &b.Author)
	}
	if v := r.FormValue("category"); v != "" {
		setStr("category", v, &b.Category)
	}
	if v := r.FormValue("status"); v != "" {
		setStr("status", v, &b.Status)
	}
	if v := r.FormValue("tags"); v != "" {
		var tags []string
		if err := json.Unmarshal([]byte(v), &tags); err != nil {
			return errors.New("tags must be a JSON array of strings")
		}
		b.Tags = tags
		if set != nil {
			set["tags"] = tags
		}
	}
	if v := r.FormValue("featured"); v != "" {
		f, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("featured must be true or false")
		}
		b.Featured = f
		if set != nil {
			set["featured"] = f
		}
	}
	if v := r.FormValue("publishDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return errors.New("publishDate must be RFC 3339")
		}
		b.PublishDate = t.UTC()
		if set != nil {
			set["publish_date"] = t.UTC()
		}
	}
	return nil
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, blogstore.ErrNotFound):
		respond.NotFound(w, "blog post")
	case errors.Is(err, blogstore.ErrDuplicateSlug):
		respond.Err(w, http.StatusConflict, err.Error())
	default:
		respond.Internal(w, h.Log, op, err)
	}
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, assets.ErrFileTooLarge) || errors.Is(err, assets.ErrBadFileType) {
		respond.BadRequest(w, err.Error())
		return
	}
	respond.Internal(w, h.Log, "asset upload", err)
}

// ListAdmin handles GET /admin/blogs across every status.
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	f := blogstore.Filter{
		Status:   query.Get(r, "status"),
		Category: query.Get(r, "category"),
		Tag:      query.Get(r, "tag"),
	}
	posts, total, err := h.Store.List(ctx, f, page)
	if err != nil {
		respond.Internal(w, h.Log, "list blogs", err)
		return
	}
	respond.List(w, "blog posts retrieved successfully", posts, paging.NewMeta(page, total))
}

// GetAdmin handles GET /admin/blogs/{blogId} without the publish gate.
func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get blog post")
		return
	}
	respond.OK(w, "blog post retrieved successfully", b)
}

// Create handles POST /admin/blogs. Multipart form with the post fields
// and an optional "image" file. Slug and read time are derived in the
// store.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.RequireUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var b models.Blog
	if err := h.parseForm(r, &b, nil); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	b.CreatedBy = userID

	// ReadTime is derived at insert; validate with a stand-in so a valid
	// post is not rejected for a field the caller cannot send.
	probe := b
	probe.ReadTime = models.EstimateReadTime(probe.Content)
	if errs := probe.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create blog post")
	defer cancel()

	if _, fh, err := r.FormFile("image"); err == nil {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderBlogs, assets.ImageConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		b.Image = ref.URL
	}

	created, err := h.Store.Create(ctx, b)
	if err != nil {
		h.writeStoreError(w, err, "create blog post")
		return
	}
	respond.Created(w, "blog post created successfully", created)
}

// Update handles PUT /admin/blogs/{blogId}. A changed title re-derives the
// slug; changed content re-derives the read time.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := blogIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update blog post")
	defer cancel()

	existing, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get blog post")
		return
	}

	merged := existing
	set := bson.M{}
	if err := h.parseForm(r, &merged, set); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if merged.Title != existing.Title {
		merged.Slug = models.Slugify(merged.Title, time.Now().UTC())
		set["slug"] = merged.Slug
	}
	if merged.Content != existing.Content {
		merged.ReadTime = models.EstimateReadTime(merged.Content)
		set["read_time"] = merged.ReadTime
	}
	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	var warnings []string
	if _, fh, err := r.FormFile("image"); err == nil {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderBlogs, assets.ImageConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		if old := existing.Image; old != "" && old != ref.URL {
			if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, old); wmsg != "" {
				warnings = append(warnings, wmsg)
			}
		}
		set["image"] = ref.URL
	}

	if len(set) == 0 {
		respond.BadRequest(w, "request body carries no updatable fields")
		return
	}

	updated, err := h.Store.UpdateFields(ctx, id, set)
	if err != nil {
		h.writeStoreError(w, err, "update blog post")
		return
	}
	respond.OKWithWarnings(w, "blog post updated successfully", updated, warnings)
}

// Delete handles DELETE /admin/blogs/{blogId}, releasing the cover image
// best-effort.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete blog post")
	defer cancel()

	b, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get blog post")
		return
	}
	if err := h.Store.Delete(ctx, id); err != nil {
		h.writeStoreError(w, err, "delete blog post")
		return
	}

	var warnings []string
	if b.Image != "" {
		if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, b.Image); wmsg != "" {
			warnings = append(warnings, wmsg)
		}
	}
	respond.OKWithWarnings(w, "blog post deleted successfully", nil, warnings)
}

// internal/app/features/blogs/public.go
package blogs

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	blogstore "github.com/imanprime/estatecms/internal/app/store/blogs"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// publiclyVisible reports whether a post may be served to readers.
func publiclyVisible(b models.Blog) bool {
	return b.Status == models.BlogPublished && !b.PublishDate.After(time.Now().UTC())
}

// lookupPublic resolves the {idOrSlug} route param: a valid hex id loads by
// id, anything else is treated as a slug. Both paths apply the publish gate.
func (h *Handler) lookupPublic(ctx context.Context, idOrSlug string) (models.Blog, error) {
	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		b, err := h.Store.GetByID(ctx, id)
		if err != nil {
			return models.Blog{}, err
		}
		if !publiclyVisible(b) {
			return models.Blog{}, blogstore.ErrNotFound
		}
		return b, nil
	}
	return h.Store.GetPublishedBySlug(ctx, idOrSlug)
}

// ListPublic handles GET /blogs: published posts whose date has passed.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	f := blogstore.Filter{
		Category:   query.Get(r, "category"),
		Tag:        query.Get(r, "tag"),
		PublicOnly: true,
	}
	posts, total, err := h.Store.List(ctx, f, page)
	if err != nil {
		respond.Internal(w, h.Log, "list blogs", err)
		return
	}
	respond.List(w, "blog posts retrieved successfully", posts, paging.NewMeta(page, total))
}

// Featured handles GET /blogs/featured.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t := true
	posts, _, err := h.Store.List(ctx, blogstore.Filter{Featured: &t, PublicOnly: true},
		paging.Params{Page: 1, Limit: paging.DefaultLimit})
	if err != nil {
		respond.Internal(w, h.Log, "featured blogs", err)
		return
	}
	respond.OK(w, "featured blog posts retrieved successfully", posts)
}

// GetPublic handles GET /blogs/{idOrSlug} and counts the view.
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.lookupPublic(ctx, chi.URLParam(r, "idOrSlug"))
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			respond.NotFound(w, "blog post")
		} else {
			respond.Internal(w, h.Log, "get blog post", err)
		}
		return
	}

	if err := h.Store.IncrementViews(ctx, b.ID); err != nil {
		h.Log.Warn("increment blog views",
			zap.String("blog_id", b.ID.Hex()),
			zap.Error(err))
	}
	b.Views++
	respond.OK(w, "blog post retrieved successfully", b)
}

// Like handles POST /blogs/{idOrSlug}/like and returns the new total.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.lookupPublic(ctx, chi.URLParam(r, "idOrSlug"))
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			respond.NotFound(w, "blog post")
		} else {
			respond.Internal(w, h.Log, "get blog post", err)
		}
		return
	}

	likes, err := h.Store.Like(ctx, b.ID)
	if err != nil {
		respond.Internal(w, h.Log, "like blog post", err)
		return
	}
	respond.OK(w, "blog post liked successfully", map[string]any{"likes": likes})
}

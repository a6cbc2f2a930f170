// internal/app/features/properties/public.go
package properties

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// landingLimit caps the featured strip on the landing page.
const landingLimit = 6

func propertyIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "propertyId"))
	if err != nil {
		respond.BadRequest(w, "invalid property id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// filterFromQuery builds the store filter shared by the public and admin
// lists. The public list forces PublicOnly regardless of the status param.
func filterFromQuery(r *http.Request, publicOnly bool) propertystore.Filter {
	f := propertystore.Filter{
		Status:     query.Get(r, "status"),
		Category:   query.Get(r, "category"),
		Location:   query.Get(r, "location"),
		Search:     query.Get(r, "search"),
		MinPrice:   query.Get(r, "minPrice"),
		MaxPrice:   query.Get(r, "maxPrice"),
		Bedrooms:   query.Get(r, "bedrooms"),
		Bathrooms:  query.Get(r, "bathrooms"),
		PublicOnly: publicOnly,
	}
	switch query.Get(r, "featured") {
	case "true":
		t := true
		f.Featured = &t
	case "false":
		fa := false
		f.Featured = &fa
	}
	if id, err := primitive.ObjectIDFromHex(query.Get(r, "agentId")); err == nil {
		f.AgentID = id
	}
	return f
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, publicOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	props, total, err := h.Store.List(ctx, filterFromQuery(r, publicOnly), page)
	if err != nil {
		respond.Internal(w, h.Log, "list properties", err)
		return
	}
	respond.List(w, "properties retrieved successfully", props, paging.NewMeta(page, total))
}

// ListPublic handles GET /properties. Only active listings are visible.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// Landing handles GET /properties/landing: the featured active listings.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	props, err := h.Store.Landing(ctx, landingLimit)
	if err != nil {
		respond.Internal(w, h.Log, "landing properties", err)
		return
	}
	respond.OK(w, "landing properties retrieved successfully", props)
}

// GetPublic handles GET /properties/{propertyId}. Non-active listings are
// hidden, and each successful view bumps the counter without touching
// updated_at.
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "property")
		} else {
			respond.Internal(w, h.Log, "get property", err)
		}
		return
	}
	if p.Status != models.PropertyActive {
		respond.NotFound(w, "property")
		return
	}

	if err := h.Store.IncrementViews(ctx, id); err != nil {
		// The read already succeeded; a lost count is not worth a 500.
		h.Log.Warn("increment property views",
			zap.String("property_id", id.Hex()),
			zap.Error(err))
	}
	p.Views++
	respond.OK(w, "property retrieved successfully", p)
}

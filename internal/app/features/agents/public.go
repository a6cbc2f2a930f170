// internal/app/features/agents/public.go
package agents

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
)

func agentIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "agentId"))
	if err != nil {
		respond.BadRequest(w, "invalid agent id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListActive handles GET /agents: the active roster shown on the site.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	f := agentstore.Filter{
		Specialization: query.Get(r, "specialization"),
		ActiveOnly:     true,
	}
	list, total, err := h.Store.List(ctx, f, page)
	if err != nil {
		respond.Internal(w, h.Log, "list agents", err)
		return
	}
	respond.List(w, "agents retrieved successfully", list, paging.NewMeta(page, total))
}

// GetPublic handles GET /agents/{agentId}: profile plus the agent's active
// listings. Inactive agents are hidden.
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, agentstore.ErrNotFound) {
			respond.NotFound(w, "agent")
		} else {
			respond.Internal(w, h.Log, "get agent", err)
		}
		return
	}
	if !a.IsActive {
		respond.NotFound(w, "agent")
		return
	}

	page := paging.Parse(r)
	props, _, err := h.Properties.List(ctx, propertystore.Filter{AgentID: id, PublicOnly: true}, page)
	if err != nil {
		respond.Internal(w, h.Log, "list agent properties", err)
		return
	}
	respond.OK(w, "agent retrieved successfully", map[string]any{
		"agent":      a,
		"properties": props,
	})
}

// internal/app/features/quotes/admin.go
package quotes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	quotestore "github.com/imanprime/estatecms/internal/app/store/quotes"
	"github.com/imanprime/estatecms/internal/app/system/authz"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

func quoteIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "quoteId"))
	if err != nil {
		respond.BadRequest(w, "invalid quote request id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, quotestore.ErrNotFound) {
		respond.NotFound(w, "quote request")
		return
	}
	respond.Internal(w, h.Log, op, err)
}

// List handles GET /admin/quotes with pipeline filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	f := quotestore.Filter{
		Status:      query.Get(r, "status"),
		Priority:    query.Get(r, "priority"),
		ProjectType: query.Get(r, "projectType"),
		Email:       strings.ToLower(query.Get(r, "email")),
	}
	reqs, total, err := h.Store.List(ctx, f, page)
	if err != nil {
		respond.Internal(w, h.Log, "list quote requests", err)
		return
	}
	respond.List(w, "quote requests retrieved successfully", reqs, paging.NewMeta(page, total))
}

// Stats handles GET /admin/quotes/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Store.GetStats(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "quote statistics", err)
		return
	}
	respond.OK(w, "quote statistics retrieved successfully", st)
}

// Get handles GET /admin/quotes/{quoteId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get quote request")
		return
	}
	respond.OK(w, "quote request retrieved successfully", q)
}

// updateBody is the admin patch. Pointer fields distinguish absent from
// explicit; assignedTo must reference an existing agent.
type updateBody struct {
	Status          *string    `json:"status"`
	Priority        *string    `json:"priority"`
	AssignedTo      *string    `json:"assignedTo"`
	FollowUpDate    *time.Time `json:"followUpDate"`
	EstimatedAmount *float64   `json:"estimatedQuoteAmount"`
}

func (b updateBody) empty() bool {
	return b.Status == nil && b.Priority == nil && b.AssignedTo == nil &&
		b.FollowUpDate == nil && b.EstimatedAmount == nil
}

// Update handles PUT /admin/quotes/{quoteId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	var body updateBody
	if err := respond.DecodeStrict(w, r, &body); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if body.empty() {
		respond.BadRequest(w, "request body carries no updatable fields")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update quote request")
	defer cancel()

	existing, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get quote request")
		return
	}

	merged := existing
	set := bson.M{}
	if body.Status != nil {
		merged.Status = *body.Status
		set["status"] = *body.Status
	}
	if body.Priority != nil {
		merged.Priority = *body.Priority
		set["priority"] = *body.Priority
	}
	if body.FollowUpDate != nil {
		t := body.FollowUpDate.UTC()
		merged.FollowUpDate = &t
		set["follow_up_date"] = t
	}
	if body.EstimatedAmount != nil {
		merged.EstimatedAmount = body.EstimatedAmount
		set["estimated_quote_amount"] = *body.EstimatedAmount
	}
	if body.AssignedTo != nil {
		agentID, err := primitive.ObjectIDFromHex(*body.AssignedTo)
		if err != nil {
			respond.BadRequest(w, "assignedTo must be a valid agent id")
			return
		}
		if _, err := h.Agents.GetByID(ctx, agentID); err != nil {
			if errors.Is(err, agentstore.ErrNotFound) {
				respond.NotFound(w, "agent")
			} else {
				respond.Internal(w, h.Log, "check agent", err)
			}
			return
		}
		merged.AssignedTo = &agentID
		set["assigned_to"] = agentID
	}

	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	updated, err := h.Store.UpdateFields(ctx, id, set)
	if err != nil {
		h.writeStoreError(w, err, "update quote request")
		return
	}
	respond.OK(w, "quote request updated successfully", updated)
}

// noteBody is the add-note payload.
type noteBody struct {
	Content string `json:"content"`
}

// AddNote handles POST /admin/quotes/{quoteId}/notes. Notes are
// append-only and stamped server-side.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	var body noteBody
	if err := respond.DecodeStrict(w, r, &body); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		respond.BadRequest(w, "note content is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add quote note")
	defer cancel()

	updated, err := h.Store.AddNote(ctx, id, models.QuoteNote{
		Content: strings.TrimSpace(body.Content),
		AddedBy: userID,
	})
	if err != nil {
		h.writeStoreError(w, err, "add quote note")
		return
	}
	respond.OK(w, "note added successfully", updated)
}

// Delete handles DELETE /admin/quotes/{quoteId}, releasing attachment
// assets best-effort.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete quote request")
	defer cancel()

	q, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get quote request")
		return
	}
	if err := h.Store.Delete(ctx, id); err != nil {
		h.writeStoreError(w, err, "delete quote request")
		return
	}

	urls := make([]string, 0, len(q.Attachments))
	for _, a := range q.Attachments {
		urls = append(urls, a.URL)
	}
	warnings := assets.BestEffortDeleteAll(ctx, h.Assets, h.Log, urls)
	respond.OKWithWarnings(w, "quote request deleted successfully", nil, warnings)
}

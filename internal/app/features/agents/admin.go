// internal/app/features/agents/admin.go
package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	"github.com/imanprime/estatecms/internal/app/system/authz"
	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

const maxMultipartMemory = 8 << 20

// parseForm applies the multipart text fields to the agent and, when set is
// non-nil, records the same changes as $set entries.
func parseForm(r *http.Request, a *models.Agent, set bson.M) error {
	setStr := func(key, v string, dst *string) {
		*dst = v
		if set != nil {
			set[key] = v
		}
	}

	if v := r.FormValue("name"); v != "" {
		setStr("name", strings.TrimSpace(v), &a.Name)
	}
	if v := r.FormValue("email"); v != "" {
		setStr("email", strings.ToLower(strings.TrimSpace(v)), &a.Email)
	}
	if v := r.FormValue("phone"); v != "" {
		setStr("phone", strings.TrimSpace(v), &a.Phone)
	}
	if v := r.FormValue("whatsappNumber"); v != "" {
		setStr("whatsapp_number", strings.TrimSpace(v), &a.WhatsAppNumber)
	}
	if v := r.FormValue("bio"); v != "" {
		setStr("bio", v, &a.Bio)
	}
	if v := r.FormValue("specialization"); v != "" {
		setStr("specialization", v, &a.Specialization)
	}
	if v := r.FormValue("experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("experience must be an integer")
		}
		a.Experience = n
		if set != nil {
			set["experience"] = n
		}
	}
	if v := r.FormValue("isActive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("isActive must be true or false")
		}
		a.IsActive = b
		if set != nil {
			set["is_active"] = b
		}
	}
	if v := r.FormValue("languages"); v != "" {
		var l []string
		if err := json.Unmarshal([]byte(v), &l); err != nil {
			return errors.New("languages must be a JSON array of strings")
		}
		a.Languages = l
		if set != nil {
			set["languages"] = l
		}
	}
	if v := r.FormValue("socialMedia"); v != "" {
		var sm models.AgentSocialMedia
		if err := json.Unmarshal([]byte(v), &sm); err != nil {
			return errors.New("socialMedia must be a JSON object")
		}
		a.SocialMedia = sm
		if set != nil {
			set["social_media"] = sm
		}
	}
	if v := r.FormValue("workingHours"); v != "" {
		var wh models.AgentWorkingHours
		if err := json.Unmarshal([]byte(v), &wh); err != nil {
			return errors.New("workingHours must be a JSON object")
		}
		a.WorkingHours = wh
		if set != nil {
			set["working_hours"] = wh
		}
	}
	if v := r.FormValue("certifications"); v != "" {
		var c []models.Certification
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return errors.New("certifications must be a JSON array")
		}
		a.Certifications = c
		if set != nil {
			set["certifications"] = c
		}
	}
	return nil
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, agentstore.ErrNotFound):
		respond.NotFound(w, "agent")
	case errors.Is(err, agentstore.ErrDuplicateEmail):
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

// agentWithCounts decorates an agent with its listing count for the admin
// dashboard.
type agentWithCounts struct {
	models.Agent
	PropertyCount int64 `json:"propertyCount"`
}

// List handles GET /admin/agents with per-agent property counts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	f := agentstore.Filter{Specialization: query.Get(r, "specialization")}
	if query.Get(r, "active") == "true" {
		f.ActiveOnly = true
	}
	list, total, err := h.Store.List(ctx, f, page)
	if err != nil {
		respond.Internal(w, h.Log, "list agents", err)
		return
	}

	out := make([]agentWithCounts, 0, len(list))
	for _, a := range list {
		n, err := h.Properties.CountActiveByAgent(ctx, a.ID)
		if err != nil {
			respond.Internal(w, h.Log, "count agent properties", err)
			return
		}
		out = append(out, agentWithCounts{Agent: a, PropertyCount: n})
	}
	respond.List(w, "agents retrieved successfully", out, paging.NewMeta(page, total))
}

// Get handles GET /admin/agents/{agentId}: the agent plus listing stats.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get agent")
		return
	}
	n, err := h.Properties.CountActiveByAgent(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "count agent properties", err)
		return
	}
	respond.OK(w, "agent retrieved successfully", map[string]any{
		"agent":         a,
		"propertyCount": n,
	})
}

// Create handles POST /admin/agents. Multipart form with agent fields and
// an optional "image" file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.RequireUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var a models.Agent
	if err := parseForm(r, &a, nil); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	a.CreatedBy = userID

	if errs := a.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create agent")
	defer cancel()

	if _, fh, err := r.FormFile("image"); err == nil {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderAgents, assets.ImageConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		a.Image = ref.URL
	}

	created, err := h.Store.Create(ctx, a)
	if err != nil {
		h.writeStoreError(w, err, "create agent")
		return
	}
	respond.Created(w, "agent created successfully", created)
}

// Update handles PUT /admin/agents/{agentId}. Partial merge; a new image
// releases the previous one best-effort.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update agent")
	defer cancel()

	existing, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get agent")
		return
	}

	merged := existing
	set := bson.M{}
	if err := parseForm(r, &merged, set); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	var warnings []string
	if _, fh, err := r.FormFile("image"); err == nil {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderAgents, assets.ImageConstraints)
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
		h.writeStoreError(w, err, "update agent")
		return
	}
	respond.OKWithWarnings(w, "agent updated successfully", updated, warnings)
}

// Delete handles DELETE /admin/agents/{agentId}. Deletion is refused while
// the agent still has non-deleted listings.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete agent")
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "get agent")
		return
	}

	n, err := h.Properties.CountActiveByAgent(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "count agent properties", err)
		return
	}
	if n > 0 {
		respond.Err(w, http.StatusConflict,
			fmt.Sprintf("cannot delete agent with %d active properties", n))
		return
	}

	if err := h.Store.Delete(ctx, id); err != nil {
		h.writeStoreError(w, err, "delete agent")
		return
	}

	var warnings []string
	if a.Image != "" {
		if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, a.Image); wmsg != "" {
			warnings = append(warnings, wmsg)
		}
	}
	respond.OKWithWarnings(w, "agent deleted successfully", nil, warnings)
}

// internal/app/features/company/team.go
package company

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/assets"
	companystore "github.com/imanprime/estatecms/internal/app/store/company"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// memberIDParam parses the {memberId} route param, writing the 400 itself
// on a malformed id.
func memberIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberId"))
	if err != nil {
		respond.BadRequest(w, "invalid team member id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// AddTeamMember handles POST /company/team. The body is a multipart form
// with member fields plus an optional "memberImage" file.
func (h *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	m := models.TeamMember{
		ID:       primitive.NewObjectID(),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Position: strings.TrimSpace(r.FormValue("position")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
	}
	if v := r.FormValue("socialLinks"); v != "" {
		if err := decodeStrictJSON(v, &m.SocialLinks); err != nil {
			respond.BadRequest(w, "invalid socialLinks payload: "+err.Error())
			return
		}
	}
	if errs := m.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "add team member")
	defer cancel()

	if _, fh, err := r.FormFile("memberImage"); err == nil {
		ref, err := h.uploadFile(ctx, fh, assets.FolderTeam, assets.TeamImageConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		m.Image = ref.URL
	}

	c, err := h.Store.EnsureActive(ctx, userID)
	if err != nil {
		respond.Internal(w, h.Log, "ensure company profile", err)
		return
	}
	updated, err := h.Store.PushTeamMember(ctx, c.ID, userID, m)
	if err != nil {
		respond.Internal(w, h.Log, "add team member", err)
		return
	}
	respond.Created(w, "team member added successfully", updated.Team)
}

// UpdateTeamMember handles PUT /company/team/{memberId}. Text fields are a
// partial merge; a "memberImage" file replaces the stored image, releasing
// the old asset best-effort.
func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var patch memberPatch
	if v := r.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := r.FormValue("position"); v != "" {
		patch.Position = &v
	}
	if v := r.FormValue("phone"); v != "" {
		patch.Phone = &v
	}
	if v := r.FormValue("socialLinks"); v != "" {
		patch.SocialLinks = &models.SocialLinks{}
		if err := decodeStrictJSON(v, patch.SocialLinks); err != nil {
			respond.BadRequest(w, "invalid socialLinks payload: "+err.Error())
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update team member")
	defer cancel()

	c, err := h.Store.GetActive(ctx)
	if err != nil {
		h.teamError(w, err, "load company profile")
		return
	}
	idx := c.FindTeamMember(memberID)
	if idx < 0 {
		respond.NotFound(w, "team member")
		return
	}

	merged := c.Team[idx]
	patch.apply(&merged)
	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	set := bson.M{}
	patch.setFields(set)

	var warnings []string
	if _, fh, err := r.FormFile("memberImage"); err == nil {
		ref, err := h.uploadFile(ctx, fh, assets.FolderTeam, assets.TeamImageConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		if old := c.Team[idx].Image; old != "" && old != ref.URL {
			if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, old); wmsg != "" {
				warnings = append(warnings, wmsg)
			}
		}
		set["image"] = ref.URL
	}

	// An empty set is still a valid update; the store stamps updated_at
	// and updated_by regardless.
	updated, err := h.Store.UpdateTeamMember(ctx, c.ID, memberID, userID, set)
	if err != nil {
		h.teamError(w, err, "update team member")
		return
	}
	respond.OKWithWarnings(w, "team member updated successfully", updated.Team, warnings)
}

// DeleteTeamMember handles DELETE /company/team/{memberId}. The member's
// image is released best-effort; a failed cleanup surfaces as a warning,
// never as a failed delete.
func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete team member")
	defer cancel()

	c, err := h.Store.GetActive(ctx)
	if err != nil {
		h.teamError(w, err, "load company profile")
		return
	}
	idx := c.FindTeamMember(memberID)
	if idx < 0 {
		respond.NotFound(w, "team member")
		return
	}
	image := c.Team[idx].Image

	updated, err := h.Store.PullTeamMember(ctx, c.ID, memberID, userID)
	if err != nil {
		h.teamError(w, err, "delete team member")
		return
	}

	var warnings []string
	if image != "" {
		if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, image); wmsg != "" {
			warnings = append(warnings, wmsg)
		}
	}
	respond.OKWithWarnings(w, "team member removed successfully", updated.Team, warnings)
}

// teamError maps store errors for the team endpoints.
func (h *Handler) teamError(w http.ResponseWriter, err error, op string) {
	switch {
	case err == companystore.ErrNotFound:
		respond.NotFound(w, "company profile")
	case err == companystore.ErrMemberNotFound:
		respond.NotFound(w, "team member")
	default:
		respond.Internal(w, h.Log, op, err)
	}
}

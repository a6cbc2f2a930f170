// internal/app/features/company/partners.go
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

func partnerIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "partnerId"))
	if err != nil {
		respond.BadRequest(w, "invalid partner id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// AddPartner handles POST /company/partners. The body is a multipart form
// with partner fields plus an optional "partnerLogo" file.
func (h *Handler) AddPartner(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	p := models.Partner{
		ID:      primitive.NewObjectID(),
		Name:    strings.TrimSpace(r.FormValue("name")),
		Website: strings.TrimSpace(r.FormValue("website")),
	}
	if errs := p.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "add partner")
	defer cancel()

	if _, fh, err := r.FormFile("partnerLogo"); err == nil {
		ref, err := h.uploadFile(ctx, fh, assets.FolderPartners, assets.PartnerLogoConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		p.Logo = ref.URL
	}

	c, err := h.Store.EnsureActive(ctx, userID)
	if err != nil {
		respond.Internal(w, h.Log, "ensure company profile", err)
		return
	}
	updated, err := h.Store.PushPartner(ctx, c.ID, userID, p)
	if err != nil {
		respond.Internal(w, h.Log, "add partner", err)
		return
	}
	respond.Created(w, "partner added successfully", updated.Partners)
}

// UpdatePartner handles PUT /company/partners/{partnerId}.
func (h *Handler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	partnerID, ok := partnerIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var patch partnerPatch
	if v := r.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := r.FormValue("website"); v != "" {
		patch.Website = &v
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update partner")
	defer cancel()

	c, err := h.Store.GetActive(ctx)
	if err != nil {
		h.partnerError(w, err, "load company profile")
		return
	}
	idx := c.FindPartner(partnerID)
	if idx < 0 {
		respond.NotFound(w, "partner")
		return
	}

	merged := c.Partners[idx]
	patch.apply(&merged)
	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	set := bson.M{}
	patch.setFields(set)

	var warnings []string
	if _, fh, err := r.FormFile("partnerLogo"); err == nil {
		ref, err := h.uploadFile(ctx, fh, assets.FolderPartners, assets.PartnerLogoConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		if old := c.Partners[idx].Logo; old != "" && old != ref.URL {
			if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, old); wmsg != "" {
				warnings = append(warnings, wmsg)
			}
		}
		set["logo"] = ref.URL
	}

	updated, err := h.Store.UpdatePartner(ctx, c.ID, partnerID, userID, set)
	if err != nil {
		h.partnerError(w, err, "update partner")
		return
	}
	respond.OKWithWarnings(w, "partner updated successfully", updated.Partners, warnings)
}

// DeletePartner handles DELETE /company/partners/{partnerId}.
func (h *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}
	partnerID, ok := partnerIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete partner")
	defer cancel()

	c, err := h.Store.GetActive(ctx)
	if err != nil {
		h.partnerError(w, err, "load company profile")
		return
	}
	idx := c.FindPartner(partnerID)
	if idx < 0 {
		respond.NotFound(w, "partner")
		return
	}
	logo := c.Partners[idx].Logo

	updated, err := h.Store.PullPartner(ctx, c.ID, partnerID, userID)
	if err != nil {
		h.partnerError(w, err, "delete partner")
		return
	}

	var warnings []string
	if logo != "" {
		if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, logo); wmsg != "" {
			warnings = append(warnings, wmsg)
		}
	}
	respond.OKWithWarnings(w, "partner removed successfully", updated.Partners, warnings)
}

func (h *Handler) partnerError(w http.ResponseWriter, err error, op string) {
	switch {
	case err == companystore.ErrNotFound:
		respond.NotFound(w, "company profile")
	case err == companystore.ErrPartnerNotFound:
		respond.NotFound(w, "partner")
	default:
		respond.Internal(w, h.Log, op, err)
	}
}

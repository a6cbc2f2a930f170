// internal/app/features/properties/admin.go
package properties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
	"github.com/imanprime/estatecms/internal/app/system/authz"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// listings carry several images so this is larger than the JSON body cap.
const maxMultipartMemory = 32 << 20

// parseForm applies the multipart text fields to the listing and, when set
// is non-nil, records the same changes as $set entries for a partial
// update. Returns a client-facing message on malformed input.
func parseForm(r *http.Request, p *models.Property, set bson.M) error {
	setStr := func(key, v string, dst *string) {
		*dst = v
		if set != nil {
			set[key] = v
		}
	}

	if v := r.FormValue("title"); v != "" {
		setStr("title", strings.TrimSpace(v), &p.Title)
	}
	if v := r.FormValue("description"); v != "" {
		setStr("description", v, &p.Description)
	}
	if v := r.FormValue("location"); v != "" {
		setStr("location", strings.TrimSpace(v), &p.Location)
	}
	if v := r.FormValue("area"); v != "" {
		setStr("area", strings.TrimSpace(v), &p.Area)
	}
	if v := r.FormValue("status"); v != "" {
		setStr("status", v, &p.Status)
	}
	if v := r.FormValue("category"); v != "" {
		setStr("category", v, &p.Category)
	}
	if v := r.FormValue("virtualTour"); v != "" {
		setStr("virtual_tour", v, &p.VirtualTour)
	}

	if v := r.FormValue("price"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New("price must be a number")
		}
		p.Price = n
		if set != nil {
			set["price"] = n
		}
	}
	for _, f := range []struct {
		field string
		key   string
		dst   *int
	}{
		{"bedrooms", "bedrooms", &p.Bedrooms},
		{"bathrooms", "bathrooms", &p.Bathrooms},
	} {
		if v := r.FormValue(f.field); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s must be an integer", f.field)
			}
			*f.dst = n
			if set != nil {
				set[f.key] = n
			}
		}
	}
	for _, f := range []struct {
		field string
		key   string
		dst   *bool
	}{
		{"parking", "parking", &p.Parking},
		{"featured", "featured", &p.Featured},
	} {
		if v := r.FormValue(f.field); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s must be true or false", f.field)
			}
			*f.dst = b
			if set != nil {
				set[f.key] = b
			}
		}
	}

	if v := r.FormValue("amenities"); v != "" {
		var a []string
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			return errors.New("amenities must be a JSON array of strings")
		}
		p.Amenities = a
		if set != nil {
			set["amenities"] = a
		}
	}
	if v := r.FormValue("propertyCertifications"); v != "" {
		var c []string
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return errors.New("propertyCertifications must be a JSON array of strings")
		}
		p.Certifications = c
		if set != nil {
			set["property_certifications"] = c
		}
	}
	if v := r.FormValue("coordinates"); v != "" {
		var c models.Coordinates
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return errors.New("coordinates must be a JSON object with lat/lng")
		}
		p.Coordinates = &c
		if set != nil {
			set["coordinates"] = c
		}
	}
	if v := r.FormValue("agentId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return errors.New("agentId must be a valid id")
		}
		p.AgentID = id
		if set != nil {
			set["agent_id"] = id
		}
	}
	return nil
}

// checkAgent verifies the referenced agent exists before a listing points
// at it.
func (h *Handler) checkAgent(ctx context.Context, w http.ResponseWriter, agentID primitive.ObjectID) bool {
	if _, err := h.Agents.GetByID(ctx, agentID); err != nil {
		if errors.Is(err, agentstore.ErrNotFound) {
			respond.NotFound(w, "agent")
		} else {
			respond.Internal(w, h.Log, "check agent", err)
		}
		return false
	}
	return true
}

// uploadGallery uploads every file under the field and returns the URLs.
func (h *Handler) uploadGallery(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderProperties, assets.ImageConstraints)
		if err != nil {
			return nil, err
		}
		urls = append(urls, ref.URL)
	}
	return urls, nil
}

// uploadFloorPlans pairs the uploaded files with the names from the
// floorPlanNames JSON array; missing names fall back to the file name.
func (h *Handler) uploadFloorPlans(ctx context.Context, r *http.Request, files []*multipart.FileHeader) ([]models.FloorPlan, error) {
	var names []string
	if v := r.FormValue("floorPlanNames"); v != "" {
		if err := json.Unmarshal([]byte(v), &names); err != nil {
			return nil, errors.New("floorPlanNames must be a JSON array of strings")
		}
	}

	plans := make([]models.FloorPlan, 0, len(files))
	for i, fh := range files {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderProperties, assets.ImageConstraints)
		if err != nil {
			return nil, err
		}
		name := fh.Filename
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		plans = append(plans, models.FloorPlan{Name: name, Image: ref.URL})
	}
	return plans, nil
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, assets.ErrFileTooLarge) || errors.Is(err, assets.ErrBadFileType) {
		respond.BadRequest(w, err.Error())
		return
	}
	respond.Internal(w, h.Log, "asset upload", err)
}

// ListAdmin handles GET /admin/properties: every non-deleted listing, with
// the full filter set available.
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// GetAdmin handles GET /admin/properties/{propertyId} without the active
// gate and without counting a view.
func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
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
	respond.OK(w, "property retrieved successfully", p)
}

// Create handles POST /admin/properties. The multipart form carries the
// listing fields, a required "image" cover, optional "images" gallery
// files, and optional "floorPlans" files named via floorPlanNames.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.RequireUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var p models.Property
	if err := parseForm(r, &p, nil); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	p.CreatedBy = userID

	errs := p.Validate()
	_, coverHdr, coverErr := r.FormFile("image")
	if coverErr != nil {
		errs = append(errs, models.FieldError{Field: "image", Message: "cover image is required"})
	}
	if p.AgentID.IsZero() {
		errs = append(errs, models.FieldError{Field: "agentId", Message: "agent is required"})
	}
	if len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create property")
	defer cancel()

	if !h.checkAgent(ctx, w, p.AgentID) {
		return
	}

	cover, err := assets.UploadFromForm(ctx, h.Assets, coverHdr, assets.FolderProperties, assets.ImageConstraints)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	p.Image = cover.URL

	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		urls, err := h.uploadGallery(ctx, files)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		p.Images = urls
	}
	if files := r.MultipartForm.File["floorPlans"]; len(files) > 0 {
		plans, err := h.uploadFloorPlans(ctx, r, files)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		p.FloorPlans = plans
	}

	created, err := h.Store.Create(ctx, p)
	if err != nil {
		respond.Internal(w, h.Log, "create property", err)
		return
	}
	respond.Created(w, "property created successfully", created)
}

// Update handles PUT /admin/properties/{propertyId}. Text fields merge
// partially; replacement images release the previous assets best-effort.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update property")
	defer cancel()

	existing, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "property")
		} else {
			respond.Internal(w, h.Log, "get property", err)
		}
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
	if agentID, ok := set["agent_id"].(primitive.ObjectID); ok && agentID != existing.AgentID {
		if !h.checkAgent(ctx, w, agentID) {
			return
		}
	}

	var warnings []string
	if _, fh, err := r.FormFile("image"); err == nil {
		ref, err := assets.UploadFromForm(ctx, h.Assets, fh, assets.FolderProperties, assets.ImageConstraints)
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
	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		urls, err := h.uploadGallery(ctx, files)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		warnings = append(warnings, assets.BestEffortDeleteAll(ctx, h.Assets, h.Log, existing.Images)...)
		set["images"] = urls
	}
	if files := r.MultipartForm.File["floorPlans"]; len(files) > 0 {
		plans, err := h.uploadFloorPlans(ctx, r, files)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		old := make([]string, 0, len(existing.FloorPlans))
		for _, fp := range existing.FloorPlans {
			old = append(old, fp.Image)
		}
		warnings = append(warnings, assets.BestEffortDeleteAll(ctx, h.Assets, h.Log, old)...)
		set["floor_plans"] = plans
	}

	if len(set) == 0 {
		respond.BadRequest(w, "request body carries no updatable fields")
		return
	}

	updated, err := h.Store.UpdateFields(ctx, id, set)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "property")
		} else {
			respond.Internal(w, h.Log, "update property", err)
		}
		return
	}
	respond.OKWithWarnings(w, "property updated successfully", updated, warnings)
}

// Delete handles DELETE /admin/properties/{propertyId}. Every referenced
// asset is released best-effort after the document is removed; failures
// surface as warnings, never as a failed delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.RequireUserID(w, r); !ok {
		return
	}
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete property")
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

	if err := h.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "property")
		} else {
			respond.Internal(w, h.Log, "delete property", err)
		}
		return
	}

	warnings := assets.BestEffortDeleteAll(ctx, h.Assets, h.Log, p.AssetURLs())
	respond.OKWithWarnings(w, "property deleted successfully", nil, warnings)
}

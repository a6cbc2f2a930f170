// internal/app/features/company/update.go
package company

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/assets"
	"github.com/imanprime/estatecms/internal/app/system/authz"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger files spill to disk.
const maxMultipartMemory = 8 << 20

// decodeStrictJSON decodes a JSON string (a multipart form value) with
// unknown fields rejected, mirroring the body decoding rules.
func decodeStrictJSON(s string, dst any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("value must be a single JSON object")
	}
	return nil
}

// uploadFile streams one multipart file to the asset store after the
// constraint check.
func (h *Handler) uploadFile(ctx context.Context, fh *multipart.FileHeader, folder string, cons assets.Constraints) (assets.Ref, error) {
	return assets.UploadFromForm(ctx, h.Assets, fh, folder, cons)
}

// writeUploadError maps constraint violations to client errors and
// everything else to a 500.
func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, assets.ErrFileTooLarge) || errors.Is(err, assets.ErrBadFileType) {
		respond.BadRequest(w, err.Error())
		return
	}
	respond.Internal(w, h.Log, "asset upload", err)
}

// adminUser returns the acting admin's id, failing closed when absent.
func adminUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	return authz.RequireUserID(w, r)
}

// applyProfilePatch runs the shared basic-info flow: ensure the profile
// exists, validate the merged result, then persist only the provided
// fields. extraSet carries caller-added fields (the legacy logo URL).
func (h *Handler) applyProfilePatch(ctx context.Context, w http.ResponseWriter, userID primitive.ObjectID, patch profilePatch, extraSet bson.M, warnings []string) {
	c, err := h.Store.EnsureActive(ctx, userID)
	if err != nil {
		respond.Internal(w, h.Log, "ensure company profile", err)
		return
	}

	merged := c
	patch.apply(&merged)
	if errs := merged.Validate(); len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	set := bson.M{}
	patch.setFields(set)
	for k, v := range extraSet {
		set[k] = v
	}

	updated, err := h.Store.UpdateFields(ctx, c.ID, userID, set)
	if err != nil {
		respond.Internal(w, h.Log, "update company profile", err)
		return
	}
	respond.OKWithWarnings(w, "company information updated successfully", updated, warnings)
}

// Update handles PUT /company with a JSON partial body. An empty patch is
// a valid no-op: only the audit stamps change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}

	var patch profilePatch
	if err := respond.DecodeStrict(w, r, &patch); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	h.applyProfilePatch(ctx, w, userID, patch, nil, nil)
}

// UpdateBasicInfo handles PUT /company/basic-info. It accepts either a
// JSON partial body or a multipart form whose text fields hold JSON
// values plus an optional "logo" file.
func (h *Handler) UpdateBasicInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := adminUser(w, r)
	if !ok {
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.Update(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	var patch profilePatch
	if v := r.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := r.FormValue("about"); v != "" {
		patch.About = &aboutPatch{}
		if err := decodeStrictJSON(v, patch.About); err != nil {
			respond.BadRequest(w, "invalid about payload: "+err.Error())
			return
		}
	}
	if v := r.FormValue("socialMedia"); v != "" {
		patch.SocialMedia = &socialMediaPatch{}
		if err := decodeStrictJSON(v, patch.SocialMedia); err != nil {
			respond.BadRequest(w, "invalid socialMedia payload: "+err.Error())
			return
		}
	}
	if v := r.FormValue("contacts"); v != "" {
		patch.Contacts = &contactsPatch{}
		if err := decodeStrictJSON(v, patch.Contacts); err != nil {
			respond.BadRequest(w, "invalid contacts payload: "+err.Error())
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update company profile")
	defer cancel()

	var (
		extraSet bson.M
		warnings []string
	)
	if _, fh, err := r.FormFile("logo"); err == nil {
		// Replacement order: upload the new asset, release the old one,
		// then persist the new URL. A failed upload leaves the stored
		// profile untouched.
		var oldLogo string
		if c, err := h.Store.GetActive(ctx); err == nil {
			oldLogo = c.Logo
		}

		ref, err := h.uploadFile(ctx, fh, assets.FolderCompanyLogos, assets.LogoConstraints)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}
		if oldLogo != "" && oldLogo != ref.URL {
			if wmsg := assets.BestEffortDelete(ctx, h.Assets, h.Log, oldLogo); wmsg != "" {
				warnings = append(warnings, wmsg)
			}
		}
		extraSet = bson.M{"logo": ref.URL}
	}

	h.applyProfilePatch(ctx, w, userID, patch, extraSet, warnings)
}

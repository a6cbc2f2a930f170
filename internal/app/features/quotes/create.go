// internal/app/features/quotes/create.go
package quotes

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/imanprime/estatecms/internal/app/assets"
	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	"github.com/imanprime/estatecms/internal/domain/models"
)

const (
	maxMultipartMemory = 16 << 20
	maxAttachments     = 10
)

// createBody is the public submission payload. Status/priority/notes are
// server-owned and deliberately absent.
type createBody struct {
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phoneNumber"`
	ProjectType        string `json:"projectType"`
	BudgetRange        string `json:"budgetRange"`
	Timeline           string `json:"timeline"`
	ProjectDescription string `json:"projectDescription"`
	PropertyType       string `json:"propertyType"`
	PropertySize       string `json:"propertySize"`
	PreferredContact   string `json:"preferredContactMethod"`
}

func (b createBody) toModel() models.QuoteRequest {
	return models.QuoteRequest{
		FullName:           strings.TrimSpace(b.FullName),
		Email:              strings.ToLower(strings.TrimSpace(b.Email)),
		PhoneNumber:        strings.TrimSpace(b.PhoneNumber),
		ProjectType:        b.ProjectType,
		BudgetRange:        b.BudgetRange,
		Timeline:           b.Timeline,
		ProjectDescription: strings.TrimSpace(b.ProjectDescription),
		PropertyType:       b.PropertyType,
		PropertySize:       b.PropertySize,
		PreferredContact:   b.PreferredContact,
	}
}

// Create handles POST /quotes. A JSON body submits the request directly; a
// multipart form may add up to ten attachments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		q        models.QuoteRequest
		formPost = strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	)

	if formPost {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.BadRequest(w, "invalid multipart form: "+err.Error())
			return
		}
		q = createBody{
			FullName:           r.FormValue("fullName"),
			Email:              r.FormValue("email"),
			PhoneNumber:        r.FormValue("phoneNumber"),
			ProjectType:        r.FormValue("projectType"),
			BudgetRange:        r.FormValue("budgetRange"),
			Timeline:           r.FormValue("timeline"),
			ProjectDescription: r.FormValue("projectDescription"),
			PropertyType:       r.FormValue("propertyType"),
			PropertySize:       r.FormValue("propertySize"),
			PreferredContact:   r.FormValue("preferredContactMethod"),
		}.toModel()
	} else {
		var body createBody
		if err := respond.DecodeStrict(w, r, &body); err != nil {
			respond.BadRequest(w, "invalid request body: "+err.Error())
			return
		}
		q = body.toModel()
	}

	errs := q.Validate()
	var files []*multipart.FileHeader
	if formPost {
		files = r.MultipartForm.File["attachments"]
		if len(files) > maxAttachments {
			errs = append(errs, models.FieldError{
				Field:   "attachments",
				Message: "cannot exceed 10 files",
			})
		}
	}
	if len(errs) > 0 {
		respond.Invalid(w, errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create quote request")
	defer cancel()

	now := time.Now().UTC()
	for _, f := range files {
		ref, err := assets.UploadFromForm(ctx, h.Assets, f, assets.FolderAttachments, assets.AttachmentConstraints)
		if err != nil {
			if errors.Is(err, assets.ErrFileTooLarge) || errors.Is(err, assets.ErrBadFileType) {
				respond.BadRequest(w, err.Error())
			} else {
				respond.Internal(w, h.Log, "upload attachment", err)
			}
			return
		}
		q.Attachments = append(q.Attachments, models.Attachment{
			Name:       path.Base(f.Filename),
			URL:        ref.URL,
			UploadedAt: now,
		})
	}

	created, err := h.Store.Create(ctx, q)
	if err != nil {
		respond.Internal(w, h.Log, "create quote request", err)
		return
	}
	respond.Created(w, "quote request submitted successfully", created)
}

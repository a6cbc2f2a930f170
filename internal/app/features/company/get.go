// internal/app/features/company/get.go
package company

import (
	"context"
	"errors"
	"net/http"

	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
	companystore "github.com/imanprime/estatecms/internal/app/store/company"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// activeProfile loads the active company and writes the error response
// itself on failure. ok=false means the response has been written.
func (h *Handler) activeProfile(ctx context.Context, w http.ResponseWriter) (models.Company, bool) {
	c, err := h.Store.GetActive(ctx)
	if err != nil {
		if errors.Is(err, companystore.ErrNotFound) {
			respond.NotFound(w, "company profile")
		} else {
			respond.Internal(w, h.Log, "load company profile", err)
		}
		return models.Company{}, false
	}
	return c, true
}

// Get handles GET /company.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, ok := h.activeProfile(ctx, w)
	if !ok {
		return
	}
	respond.OK(w, "company information retrieved successfully", c)
}

// GetContacts handles GET /company/contacts.
func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, ok := h.activeProfile(ctx, w)
	if !ok {
		return
	}
	respond.OK(w, "contact information retrieved successfully", map[string]any{
		"contacts":    c.Contacts,
		"socialMedia": c.SocialMedia,
	})
}

// GetTeam handles GET /company/team.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, ok := h.activeProfile(ctx, w)
	if !ok {
		return
	}
	respond.OK(w, "team members retrieved successfully", c.Team)
}

// GetPartners handles GET /company/partners.
func (h *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, ok := h.activeProfile(ctx, w)
	if !ok {
		return
	}
	respond.OK(w, "partners retrieved successfully", c.Partners)
}

// internal/app/features/company/routes.go
package company

import "github.com/go-chi/chi/v5"

// MountPublicRoutes mounts the read-only profile endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Get("/contacts", h.GetContacts)
	r.Get("/team", h.GetTeam)
	r.Get("/partners", h.GetPartners)
}

// MountAdminRoutes mounts the write endpoints. The caller wraps these in
// the admin middleware.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Put("/basic-info", h.UpdateBasicInfo) // multipart variant carrying an optional logo
	r.Put("/", h.Update)

	r.Post("/team", h.AddTeamMember)
	r.Put("/team/{memberId}", h.UpdateTeamMember)
	r.Delete("/team/{memberId}", h.DeleteTeamMember)

	r.Post("/partners", h.AddPartner)
	r.Put("/partners/{partnerId}", h.UpdatePartner)
	r.Delete("/partners/{partnerId}", h.DeletePartner)
}

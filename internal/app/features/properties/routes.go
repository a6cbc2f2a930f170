// internal/app/features/properties/routes.go
package properties

import "github.com/go-chi/chi/v5"

// MountPublicRoutes mounts the browsing endpoints. Public lists are pinned
// to active listings; detail views bump the view counter.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.ListPublic)
	r.Get("/landing", h.Landing)
	r.Get("/{propertyId}", h.GetPublic)
}

// MountAdminRoutes mounts the management endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.ListAdmin)
	r.Post("/", h.Create)
	r.Get("/{propertyId}", h.GetAdmin)
	r.Put("/{propertyId}", h.Update)
	r.Delete("/{propertyId}", h.Delete)
}

// internal/app/features/blogs/routes.go
package blogs

import "github.com/go-chi/chi/v5"

// MountPublicRoutes mounts the reader-facing endpoints. Lookup accepts an
// id or a slug; likes are anonymous.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.ListPublic)
	r.Get("/featured", h.Featured)
	r.Get("/{idOrSlug}", h.GetPublic)
	r.Post("/{idOrSlug}/like", h.Like)
}

// MountAdminRoutes mounts the management endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.ListAdmin)
	r.Post("/", h.Create)
	r.Get("/{blogId}", h.GetAdmin)
	r.Put("/{blogId}", h.Update)
	r.Delete("/{blogId}", h.Delete)
}

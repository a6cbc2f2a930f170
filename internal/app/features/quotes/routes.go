// internal/app/features/quotes/routes.go
package quotes

import "github.com/go-chi/chi/v5"

// MountPublicRoutes mounts the submission endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

// MountAdminRoutes mounts the pipeline management endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/{quoteId}", h.Get)
	r.Put("/{quoteId}", h.Update)
	r.Post("/{quoteId}/notes", h.AddNote)
	r.Delete("/{quoteId}", h.Delete)
}

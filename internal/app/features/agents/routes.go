// internal/app/features/agents/routes.go
package agents

import "github.com/go-chi/chi/v5"

// MountPublicRoutes mounts the site-facing agent pages.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.ListActive)
	r.Get("/{agentId}", h.GetPublic)
}

// MountAdminRoutes mounts the management endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{agentId}", h.Get)
	r.Put("/{agentId}", h.Update)
	r.Delete("/{agentId}", h.Delete)
}

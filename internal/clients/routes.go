package clients

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers client routes; callers gate them behind auth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/clients", h.List)
	r.Post("/clients", h.Create)
	r.Get("/clients/{id}", h.Show)
	r.Patch("/clients/{id}", h.Update)
	r.Delete("/clients/{id}", h.Delete)
}

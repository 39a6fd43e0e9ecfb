package quotes

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers quote routes; callers gate them behind auth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes", h.List)
	r.Post("/quotes", h.Create)
	r.Get("/quotes/{id}", h.Show)
	r.Patch("/quotes/{id}", h.Update)
	r.Delete("/quotes/{id}", h.Delete)
	r.Post("/quotes/{id}/send", h.Send)
	r.Post("/quotes/{id}/accept", h.Accept)
	r.Post("/quotes/{id}/reject", h.Reject)
}

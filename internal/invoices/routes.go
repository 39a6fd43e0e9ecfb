package invoices

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers invoice routes; callers gate them behind auth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.List)
	r.Post("/invoices", h.Create)
	r.Post("/invoices/from-quote", h.CreateFromQuote)
	r.Get("/invoices/{id}", h.Show)
	r.Patch("/invoices/{id}", h.Update)
	r.Delete("/invoices/{id}", h.Delete)
	r.Post("/invoices/{id}/send", h.Send)
	r.Post("/invoices/{id}/pay", h.MarkPaid)
	r.Post("/invoices/{id}/cancel", h.Cancel)
}

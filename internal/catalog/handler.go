package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/platform/httpx"
)

// Handler serves the template catalog.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"templates": Templates()})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	tpl, err := Lookup(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

// Instantiate returns the template's lines run through a ledger, ready to
// be pasted into a quote or invoice draft.
func (h *Handler) Instantiate(w http.ResponseWriter, r *http.Request) {
	items, err := Instantiate(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	ledger := billing.NewLedger()
	ledger.SetItems(items)
	totals := ledger.Totals()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  ledger.Items(),
		"totals": totals,
	})
}

// MountRoutes registers catalog routes; callers gate them behind auth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/templates", h.List)
	r.Get("/templates/{id}", h.Show)
	r.Post("/templates/{id}/instantiate", h.Instantiate)
}

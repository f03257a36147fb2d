package engagement

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the engagement router. Tracking is anonymous:
// public portfolio visitors fire these events without an account.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Track)

	return r
}

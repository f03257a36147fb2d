package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the owner-scoped photo router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// All routes require an authenticated owner
	r.Use(authMiddleware)

	r.Post("/", h.Upload)
	r.Get("/", h.List)
	r.Patch("/reorder", h.Reorder)
	r.Patch("/{id}/caption", h.SetCaption)
	r.Patch("/{id}/visibility", h.SetVisibility)
	r.Delete("/{id}", h.Delete)

	return r
}

// PublicRoutes returns the unauthenticated portfolio listing router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/photos", h.ListPublic)

	return r
}

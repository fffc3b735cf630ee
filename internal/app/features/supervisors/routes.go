// internal/app/features/supervisors/routes.go
package supervisors

import "github.com/go-chi/chi/v5"

// Routes returns the supervisors subrouter, mounted under /supervisors
// from bootstrap. Fixed paths are registered before the {id} patterns
// so "search" and "stats" never parse as IDs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/search", h.HandleSearch)
	r.Get("/stats", h.HandleStats)

	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Patch("/{id}/toggle-status", h.HandleToggleStatus)

	return r
}

// internal/app/features/workqueries/routes.go
package workqueries

import "github.com/go-chi/chi/v5"

// Routes returns the work-queries subrouter, mounted under
// /work-queries.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Post("/{id}/respond", h.HandleRespond)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

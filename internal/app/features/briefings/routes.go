// internal/app/features/briefings/routes.go
package briefings

import "github.com/go-chi/chi/v5"

// Routes returns the briefings subrouter, mounted under /briefings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Post("/{id}/acknowledge", h.HandleAcknowledge)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

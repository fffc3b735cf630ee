// internal/app/features/sites/routes.go
package sites

import "github.com/go-chi/chi/v5"

// Routes returns the sites subrouter, mounted under /sites.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

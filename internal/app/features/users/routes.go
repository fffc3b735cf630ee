// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the users subrouter, mounted under /users from
// bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/search", h.HandleSearch)
	r.Get("/stats", h.HandleStats)

	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Patch("/{id}/role", h.HandleUpdateRole)
	r.Patch("/{id}/toggle-status", h.HandleToggleStatus)
	r.Post("/{id}/change-password", h.HandleChangePassword)

	return r
}

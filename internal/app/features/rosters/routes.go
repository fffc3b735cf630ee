// internal/app/features/rosters/routes.go
package rosters

import "github.com/go-chi/chi/v5"

// Routes returns the rosters subrouter, mounted under /rosters.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/calendar", h.HandleCalendar)
	r.Get("/calendar/export", h.HandleExportCSV)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}/assign", h.HandleAssign)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// internal/app/features/documents/routes.go
package documents

import "github.com/go-chi/chi/v5"

// Routes returns the documents subrouter, mounted under /documents.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleUpload)
	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/download", h.HandleDownload)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// internal/app/features/documents/handler.go
package documents

import (
	"context"
	"errors"
	"net/http"
	"time"

	documentstore "github.com/dalemusser/opshub/internal/app/store/documents"
	"github.com/dalemusser/opshub/internal/app/system/auth"
	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart uploads at 25 MB.
const maxUploadBytes = 25 << 20

// Handler owns the document endpoints. File bytes go to object
// storage; metadata goes to the documents collection. A failed metadata
// write removes the just-stored file so the two stay consistent.
type Handler struct {
	Docs    *documentstore.Store
	Storage storage.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Docs:    documentstore.New(db),
		Storage: store,
		Log:     logger,
	}
}

// View is the public shape of a document record.
type View struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	SiteID      string    `json:"siteId,omitempty"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func documentView(d models.Document) View {
	return View{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Category:    d.Category,
		SiteID:      string(d.SiteID),
		UploadedBy:  string(d.UploadedBy),
		FileName:    d.FileName,
		Size:        d.Size,
		ContentType: d.ContentType,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func documentViews(docs []models.Document) []View {
	views := make([]View, 0, len(docs))
	for _, d := range docs {
		views = append(views, documentView(d))
	}
	return views
}

// HandleUpload handles POST /documents (multipart/form-data with a
// "file" part plus title, category, and siteId fields).
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.BadRequest(w, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		respond.BadRequest(w, "Title is required")
		return
	}
	siteRef := models.SiteRef(r.FormValue("siteId"))
	if _, ok := siteRef.ObjectID(); !ok && !siteRef.IsZero() {
		respond.BadRequest(w, "Invalid site reference")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "File is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	category := r.FormValue("category")
	key := storageKey(category, header.Filename, time.Now())
	if err := h.Storage.Put(ctx, key, file, &storage.PutOptions{ContentType: contentType}); err != nil {
		h.Log.Error("document upload failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	doc := models.Document{
		Title:       title,
		Category:    category,
		SiteID:      siteRef,
		StoragePath: key,
		FileName:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
	}
	if ident, ok := auth.CurrentIdentity(r); ok {
		doc.UploadedBy = models.UserRef(ident.ID)
	}

	created, err := h.Docs.Create(ctx, doc)
	if err != nil {
		// Keep storage and metadata consistent on failure.
		if delErr := h.Storage.Delete(ctx, key); delErr != nil {
			h.Log.Error("orphaned upload cleanup failed",
				zap.String("path", key), zap.Error(delErr))
		}
		h.Log.Error("document create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.Created(w, respond.M{
		"message":  "Document uploaded successfully",
		"document": documentView(created),
	})
}

// HandleList handles GET /documents with optional site and category
// filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	docs, err := h.Docs.List(ctx, documentstore.Filter{
		SiteID:   models.SiteRef(q.Get("site")),
		Category: q.Get("category"),
	})
	if err != nil {
		h.Log.Error("document list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"count": len(docs), "documents": documentViews(docs)})
}

// HandleGet handles GET /documents/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := documentID(w, r)
	if !ok {
		return
	}

	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, documentstore.ErrNotFound) {
			respond.NotFound(w, "Document not found")
			return
		}
		h.Log.Error("document lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"document": documentView(*doc)})
}

// HandleDownload handles GET /documents/{id}/download. Local storage
// serves the file directly; other backends redirect to a short-lived
// signed URL.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, ok := documentID(w, r)
	if !ok {
		return
	}

	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, documentstore.ErrNotFound) {
			respond.NotFound(w, "Document not found")
			return
		}
		h.Log.Error("document lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	if local, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := local.GetFullPath(doc.StoragePath)
		if err != nil {
			h.Log.Error("document path resolve failed", zap.Error(err))
			respond.Internal(w)
			return
		}
		w.Header().Set("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(ctx, doc.StoragePath, &storage.PresignOptions{
		Expires: 15 * time.Minute,
	})
	if err != nil {
		h.Log.Error("document presign failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	http.Redirect(w, r, signedURL, http.StatusFound)
}

// HandleDelete handles DELETE /documents/{id}. The metadata record is
// removed first; the stored bytes are cleaned up best-effort.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := documentID(w, r)
	if !ok {
		return
	}

	doc, err := h.Docs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, documentstore.ErrNotFound) {
			respond.NotFound(w, "Document not found")
			return
		}
		h.Log.Error("document delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	if err := h.Storage.Delete(ctx, doc.StoragePath); err != nil {
		h.Log.Error("stored file delete failed",
			zap.String("path", doc.StoragePath), zap.Error(err))
	}

	respond.OK(w, respond.M{"message": "Document deleted successfully"})
}

func documentID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Document not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

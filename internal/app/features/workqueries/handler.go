// internal/app/features/workqueries/handler.go
package workqueries

import (
	"context"
	"errors"
	"net/http"
	"time"

	workquerystore "github.com/dalemusser/opshub/internal/app/store/workqueries"
	"github.com/dalemusser/opshub/internal/app/system/auth"
	"github.com/dalemusser/opshub/internal/app/system/inputval"
	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Queries *workquerystore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Queries: workquerystore.New(db), Log: logger}
}

// View is the public shape of a work query.
type View struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	SiteID      string     `json:"siteId,omitempty"`
	RaisedBy    string     `json:"raisedBy,omitempty"`
	Status      string     `json:"status"`
	Response    string     `json:"response,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func queryView(wq models.WorkQuery) View {
	return View{
		ID:          wq.ID.Hex(),
		Subject:     wq.Subject,
		Description: wq.Description,
		SiteID:      string(wq.SiteID),
		RaisedBy:    string(wq.RaisedBy),
		Status:      wq.Status,
		Response:    wq.Response,
		ResolvedAt:  wq.ResolvedAt,
		CreatedAt:   wq.CreatedAt,
		UpdatedAt:   wq.UpdatedAt,
	}
}

func queryViews(queries []models.WorkQuery) []View {
	views := make([]View, 0, len(queries))
	for _, wq := range queries {
		views = append(views, queryView(wq))
	}
	return views
}

type createRequest struct {
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description"`
	SiteID      string `json:"siteId"`
}

// HandleCreate handles POST /work-queries. The raiser is taken from the
// request identity when present.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	siteRef := models.SiteRef(req.SiteID)
	if _, ok := siteRef.ObjectID(); !ok && !siteRef.IsZero() {
		respond.BadRequest(w, "Invalid site reference")
		return
	}

	wq := models.WorkQuery{
		Subject:     req.Subject,
		Description: req.Description,
		SiteID:      siteRef,
	}
	if id, ok := auth.CurrentIdentity(r); ok {
		wq.RaisedBy = models.UserRef(id.ID)
	}

	created, err := h.Queries.Create(ctx, wq)
	if err != nil {
		h.Log.Error("work query create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.Created(w, respond.M{
		"message":   "Work query raised successfully",
		"workQuery": queryView(created),
	})
}

// HandleList handles GET /work-queries with optional site, raisedBy,
// and status filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	queries, err := h.Queries.List(ctx, workquerystore.Filter{
		RaisedBy: models.UserRef(q.Get("raisedBy")),
		SiteID:   models.SiteRef(q.Get("site")),
		Status:   q.Get("status"),
	})
	if err != nil {
		if errors.Is(err, workquerystore.ErrInvalidStatus) {
			respond.BadRequest(w, "Invalid work query status")
			return
		}
		h.Log.Error("work query list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"count": len(queries), "workQueries": queryViews(queries)})
}

// HandleGet handles GET /work-queries/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := queryID(w, r)
	if !ok {
		return
	}

	wq, err := h.Queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workquerystore.ErrNotFound) {
			respond.NotFound(w, "Work query not found")
			return
		}
		h.Log.Error("work query lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"workQuery": queryView(*wq)})
}

type respondRequest struct {
	Response string `json:"response" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

// HandleRespond handles POST /work-queries/{id}/respond.
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := queryID(w, r)
	if !ok {
		return
	}

	var req respondRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	wq, err := h.Queries.Respond(ctx, id, req.Response, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, workquerystore.ErrNotFound):
			respond.NotFound(w, "Work query not found")
		case errors.Is(err, workquerystore.ErrInvalidStatus):
			respond.BadRequest(w, "Invalid work query status")
		default:
			h.Log.Error("work query respond failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.OK(w, respond.M{
		"message":   "Response recorded successfully",
		"workQuery": queryView(*wq),
	})
}

// HandleDelete handles DELETE /work-queries/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := queryID(w, r)
	if !ok {
		return
	}

	if err := h.Queries.Delete(ctx, id); err != nil {
		if errors.Is(err, workquerystore.ErrNotFound) {
			respond.NotFound(w, "Work query not found")
			return
		}
		h.Log.Error("work query delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Work query deleted successfully"})
}

func queryID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Work query not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

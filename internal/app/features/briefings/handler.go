// internal/app/features/briefings/handler.go
package briefings

import (
	"context"
	"errors"
	"net/http"
	"time"

	briefingstore "github.com/dalemusser/opshub/internal/app/store/briefings"
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
	Briefings *briefingstore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Briefings: briefingstore.New(db), Log: logger}
}

// View is the public shape of a briefing.
type View struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Content      string               `json:"content,omitempty"`
	SiteID       string               `json:"siteId,omitempty"`
	ConductedBy  string               `json:"conductedBy,omitempty"`
	BriefedAt    time.Time            `json:"briefedAt"`
	Attendees    []string             `json:"attendees"`
	Acknowledged map[string]time.Time `json:"acknowledged,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func briefingView(b models.Briefing) View {
	attendees := make([]string, 0, len(b.Attendees))
	for _, a := range b.Attendees {
		attendees = append(attendees, string(a))
	}
	return View{
		ID:           b.ID.Hex(),
		Title:        b.Title,
		Content:      b.Content,
		SiteID:       string(b.SiteID),
		ConductedBy:  string(b.ConductedBy),
		BriefedAt:    b.BriefedAt,
		Attendees:    attendees,
		Acknowledged: b.Acknowledged,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func briefingViews(briefings []models.Briefing) []View {
	views := make([]View, 0, len(briefings))
	for _, b := range briefings {
		views = append(views, briefingView(b))
	}
	return views
}

type createRequest struct {
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content"`
	SiteID    string     `json:"siteId"`
	BriefedAt *time.Time `json:"briefedAt"`
	Attendees []string   `json:"attendees"`
}

// HandleCreate handles POST /briefings. The conductor is taken from the
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

	attendees := make([]models.UserRef, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		ref := models.UserRef(a)
		if _, ok := ref.ObjectID(); !ok {
			respond.BadRequest(w, "Invalid attendee reference")
			return
		}
		attendees = append(attendees, ref)
	}

	b := models.Briefing{
		Title:     req.Title,
		Content:   req.Content,
		SiteID:    siteRef,
		Attendees: attendees,
	}
	if req.BriefedAt != nil {
		b.BriefedAt = *req.BriefedAt
	}
	if id, ok := auth.CurrentIdentity(r); ok {
		b.ConductedBy = models.UserRef(id.ID)
	}

	created, err := h.Briefings.Create(ctx, b)
	if err != nil {
		h.Log.Error("briefing create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.Created(w, respond.M{
		"message":  "Briefing created successfully",
		"briefing": briefingView(created),
	})
}

// HandleList handles GET /briefings with an optional site filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	briefings, err := h.Briefings.List(ctx, models.SiteRef(r.URL.Query().Get("site")))
	if err != nil {
		h.Log.Error("briefing list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"count": len(briefings), "briefings": briefingViews(briefings)})
}

// HandleGet handles GET /briefings/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := briefingID(w, r)
	if !ok {
		return
	}

	b, err := h.Briefings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, briefingstore.ErrNotFound) {
			respond.NotFound(w, "Briefing not found")
			return
		}
		h.Log.Error("briefing lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"briefing": briefingView(*b)})
}

type acknowledgeRequest struct {
	UserID string `json:"userId"`
}

// HandleAcknowledge handles POST /briefings/{id}/acknowledge. The
// acknowledging user comes from the request identity, falling back to
// an explicit userId in the body.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := briefingID(w, r)
	if !ok {
		return
	}

	// The body is optional: an authenticated attendee can acknowledge
	// without one.
	var req acknowledgeRequest
	if r.ContentLength != 0 {
		if err := inputval.DecodeJSON(r, &req); err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
	}

	userID := req.UserID
	if ident, ok := auth.CurrentIdentity(r); ok && userID == "" {
		userID = ident.ID
	}
	ref := models.UserRef(userID)
	if _, ok := ref.ObjectID(); !ok {
		respond.BadRequest(w, "Invalid user reference")
		return
	}

	b, err := h.Briefings.Acknowledge(ctx, id, ref)
	if err != nil {
		switch {
		case errors.Is(err, briefingstore.ErrNotFound):
			respond.NotFound(w, "Briefing not found")
		case errors.Is(err, briefingstore.ErrNotAttendee):
			respond.BadRequest(w, "User is not an attendee of this briefing")
		default:
			h.Log.Error("briefing acknowledge failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.OK(w, respond.M{
		"message":  "Briefing acknowledged",
		"briefing": briefingView(*b),
	})
}

// HandleDelete handles DELETE /briefings/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := briefingID(w, r)
	if !ok {
		return
	}

	if err := h.Briefings.Delete(ctx, id); err != nil {
		if errors.Is(err, briefingstore.ErrNotFound) {
			respond.NotFound(w, "Briefing not found")
			return
		}
		h.Log.Error("briefing delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Briefing deleted successfully"})
}

func briefingID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Briefing not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

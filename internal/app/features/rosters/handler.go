// internal/app/features/rosters/handler.go
package rosters

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	rosterstore "github.com/dalemusser/opshub/internal/app/store/rosters"
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
	DB      *mongo.Database
	Rosters *rosterstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Rosters: rosterstore.New(db), Log: logger}
}

// View is the public shape of a roster entry.
type View struct {
	ID            string    `json:"id"`
	SiteID        string    `json:"siteId"`
	Date          time.Time `json:"date"`
	Shift         string    `json:"shift"`
	AssignedUsers []string  `json:"assignedUsers"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func rosterView(r models.Roster) View {
	users := make([]string, 0, len(r.AssignedUsers))
	for _, u := range r.AssignedUsers {
		users = append(users, string(u))
	}
	return View{
		ID:            r.ID.Hex(),
		SiteID:        string(r.SiteID),
		Date:          r.Date,
		Shift:         r.Shift,
		AssignedUsers: users,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func rosterViews(rosters []models.Roster) []View {
	views := make([]View, 0, len(rosters))
	for _, r := range rosters {
		views = append(views, rosterView(r))
	}
	return views
}

type createRequest struct {
	SiteID        string    `json:"siteId" validate:"required"`
	Date          time.Time `json:"date" validate:"required"`
	Shift         string    `json:"shift" validate:"required"`
	AssignedUsers []string  `json:"assignedUsers"`
	Notes         string    `json:"notes"`
}

// HandleCreate handles POST /rosters.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	siteRef := models.SiteRef(req.SiteID)
	if _, ok := siteRef.ObjectID(); !ok {
		respond.BadRequest(w, "Invalid site reference")
		return
	}
	users, ok := userRefs(w, req.AssignedUsers)
	if !ok {
		return
	}

	roster, err := h.Rosters.Create(ctx, models.Roster{
		SiteID:        siteRef,
		Date:          req.Date,
		Shift:         req.Shift,
		AssignedUsers: users,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rosterstore.ErrInvalidShift):
			respond.BadRequest(w, "Invalid shift")
		case errors.Is(err, rosterstore.ErrDuplicateShift):
			respond.BadRequest(w, "Roster already exists for this site, date, and shift")
		default:
			h.Log.Error("roster create failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.Created(w, respond.M{
		"message": "Roster created successfully",
		"roster":  rosterView(roster),
	})
}

// calendarParams parses year/month/site query parameters, defaulting
// to the current UTC month. It writes the 400 itself when a parameter
// is malformed.
func calendarParams(w http.ResponseWriter, r *http.Request) (year int, month time.Month, site models.SiteRef, ok bool) {
	now := time.Now().UTC()
	q := r.URL.Query()

	year = now.Year()
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.BadRequest(w, "Invalid year")
			return 0, 0, "", false
		}
		year = parsed
	}

	month = now.Month()
	if raw := q.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			respond.BadRequest(w, "Invalid month")
			return 0, 0, "", false
		}
		month = time.Month(parsed)
	}

	return year, month, models.SiteRef(q.Get("site")), true
}

// HandleCalendar handles GET /rosters/calendar?year=&month=&site=.
// Year and month default to the current UTC month.
func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	year, month, site, ok := calendarParams(w, r)
	if !ok {
		return
	}

	rosters, err := h.Rosters.Month(ctx, site, year, month)
	if err != nil {
		h.Log.Error("roster calendar failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"year":    year,
		"month":   int(month),
		"count":   len(rosters),
		"rosters": rosterViews(rosters),
	})
}

// HandleGet handles GET /rosters/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := rosterID(w, r)
	if !ok {
		return
	}

	roster, err := h.Rosters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rosterstore.ErrNotFound) {
			respond.NotFound(w, "Roster not found")
			return
		}
		h.Log.Error("roster lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"roster": rosterView(*roster)})
}

type assignRequest struct {
	AssignedUsers []string `json:"assignedUsers"`
	Notes         string   `json:"notes"`
}

// HandleAssign handles PUT /rosters/{id}/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := rosterID(w, r)
	if !ok {
		return
	}

	var req assignRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	users, ok := userRefs(w, req.AssignedUsers)
	if !ok {
		return
	}

	roster, err := h.Rosters.Assign(ctx, id, users, req.Notes)
	if err != nil {
		if errors.Is(err, rosterstore.ErrNotFound) {
			respond.NotFound(w, "Roster not found")
			return
		}
		h.Log.Error("roster assign failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"message": "Roster updated successfully",
		"roster":  rosterView(*roster),
	})
}

// HandleDelete handles DELETE /rosters/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := rosterID(w, r)
	if !ok {
		return
	}

	if err := h.Rosters.Delete(ctx, id); err != nil {
		if errors.Is(err, rosterstore.ErrNotFound) {
			respond.NotFound(w, "Roster not found")
			return
		}
		h.Log.Error("roster delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Roster deleted successfully"})
}

func userRefs(w http.ResponseWriter, raw []string) ([]models.UserRef, bool) {
	refs := make([]models.UserRef, 0, len(raw))
	for _, s := range raw {
		ref := models.UserRef(s)
		if _, ok := ref.ObjectID(); !ok {
			respond.BadRequest(w, "Invalid user reference")
			return nil, false
		}
		refs = append(refs, ref)
	}
	return refs, true
}

func rosterID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Roster not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

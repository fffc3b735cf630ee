// internal/app/features/supervisors/handler.go
package supervisors

import (
	"context"
	"errors"
	"net/http"

	supervisorstore "github.com/dalemusser/opshub/internal/app/store/supervisors"
	"github.com/dalemusser/opshub/internal/app/system/companionsync"
	"github.com/dalemusser/opshub/internal/app/system/inputval"
	"github.com/dalemusser/opshub/internal/app/system/paging"
	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the supervisor directory endpoints. Every mutation runs
// the primary write first and only then hands the result to the
// companion sync; the response never depends on the sync outcome.
type Handler struct {
	Sups *supervisorstore.Store
	Sync companionsync.Sync
	Log  *zap.Logger
}

// NewHandler constructs a supervisors Handler bound to the given
// database, companion sync, and logger.
func NewHandler(db *mongo.Database, sync companionsync.Sync, logger *zap.Logger) *Handler {
	return &Handler{
		Sups: supervisorstore.New(db),
		Sync: sync,
		Log:  logger,
	}
}

type createRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department"`
	ReportsTo  string `json:"reportsTo"`
	Site       string `json:"site"`
}

// HandleCreate handles POST /supervisors.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	// Reject duplicates before writing so a failed create leaves no
	// trace in either directory.
	exists, err := h.Sups.EmailExists(ctx, req.Email)
	if err != nil {
		h.Log.Error("supervisor email lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	if exists {
		respond.BadRequest(w, "Supervisor with this email already exists")
		return
	}

	sup, err := h.Sups.Create(ctx, newSupervisor(req))
	if err != nil {
		if errors.Is(err, supervisorstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Supervisor with this email already exists")
			return
		}
		h.Log.Error("supervisor create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.Sync.OnCreate(ctx, sup, req.Password)

	respond.Created(w, respond.M{
		"message":    "Supervisor created successfully",
		"supervisor": supervisorView(sup),
	})
}

type updateRequest struct {
	Name             *string   `json:"name"`
	Phone            *string   `json:"phone"`
	Department       *string   `json:"department"`
	ReportsTo        *string   `json:"reportsTo"`
	Site             *string   `json:"site"`
	IsActive         *bool     `json:"isActive"`
	Employees        *int      `json:"employees"`
	Tasks            *int      `json:"tasks"`
	AssignedProjects *[]string `json:"assignedProjects"`
}

// HandleUpdate handles PUT /supervisors/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := supervisorID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	sup, err := h.Sups.UpdateFields(ctx, id, supervisorstore.Update{
		Name:             req.Name,
		Phone:            req.Phone,
		Department:       req.Department,
		ReportsTo:        req.ReportsTo,
		Site:             req.Site,
		IsActive:         req.IsActive,
		Employees:        req.Employees,
		Tasks:            req.Tasks,
		AssignedProjects: req.AssignedProjects,
	})
	if err != nil {
		if errors.Is(err, supervisorstore.ErrNotFound) {
			respond.NotFound(w, "Supervisor not found")
			return
		}
		h.Log.Error("supervisor update failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.Sync.OnUpdate(ctx, *sup)

	respond.OK(w, respond.M{
		"message":    "Supervisor updated successfully",
		"supervisor": supervisorView(*sup),
	})
}

// HandleDelete handles DELETE /supervisors/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := supervisorID(w, r)
	if !ok {
		return
	}

	sup, err := h.Sups.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, supervisorstore.ErrNotFound) {
			respond.NotFound(w, "Supervisor not found")
			return
		}
		h.Log.Error("supervisor delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.Sync.OnDelete(ctx, *sup)

	respond.OK(w, respond.M{"message": "Supervisor deleted successfully"})
}

// HandleToggleStatus handles PATCH /supervisors/{id}/toggle-status.
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := supervisorID(w, r)
	if !ok {
		return
	}

	sup, err := h.Sups.ToggleStatus(ctx, id)
	if err != nil {
		if errors.Is(err, supervisorstore.ErrNotFound) {
			respond.NotFound(w, "Supervisor not found")
			return
		}
		h.Log.Error("supervisor toggle failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.Sync.OnUpdate(ctx, *sup)

	respond.OK(w, respond.M{
		"message":    "Supervisor status updated successfully",
		"supervisor": supervisorView(*sup),
	})
}

// HandleSearch handles GET /supervisors/search?query=.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sups, err := h.Sups.Search(ctx, r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, supervisorstore.ErrInvalidQuery) {
			respond.BadRequest(w, "Search query is required")
			return
		}
		h.Log.Error("supervisor search failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"count":       len(sups),
		"supervisors": supervisorViews(sups),
	})
}

// HandleList handles GET /supervisors?before=&after= (keyset paged,
// sorted by email).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	before, after := paging.Params(r)
	sups, page, err := h.Sups.ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("supervisor list failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	var prevCursor, nextCursor string
	if len(sups) > 0 {
		prevCursor = wafflemongo.EncodeCursor(sups[0].Email, sups[0].ID)
		nextCursor = wafflemongo.EncodeCursor(sups[len(sups)-1].Email, sups[len(sups)-1].ID)
	}

	respond.OK(w, respond.M{
		"count":       len(sups),
		"supervisors": supervisorViews(sups),
		"hasPrev":     page.HasPrev,
		"hasNext":     page.HasNext,
		"prevCursor":  prevCursor,
		"nextCursor":  nextCursor,
	})
}

// HandleGet handles GET /supervisors/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := supervisorID(w, r)
	if !ok {
		return
	}

	sup, err := h.Sups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, supervisorstore.ErrNotFound) {
			respond.NotFound(w, "Supervisor not found")
			return
		}
		h.Log.Error("supervisor lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"supervisor": supervisorView(*sup)})
}

// HandleStats handles GET /supervisors/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, active, inactive, err := h.Sups.Stats(ctx)
	if err != nil {
		h.Log.Error("supervisor stats failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"stats": respond.M{
		"total":    total,
		"active":   active,
		"inactive": inactive,
	}})
}

// supervisorID parses the {id} URL parameter. A malformed ID can never
// name an existing supervisor, so it reports the same 404 as a missing
// one.
func supervisorID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(urlParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Supervisor not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

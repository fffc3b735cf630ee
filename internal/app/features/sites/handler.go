// internal/app/features/sites/handler.go
package sites

import (
	"context"
	"errors"
	"net/http"
	"time"

	sitestore "github.com/dalemusser/opshub/internal/app/store/sites"
	"github.com/dalemusser/opshub/internal/app/system/inputval"
	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/status"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Sites *sitestore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Sites: sitestore.New(db), Log: logger}
}

// View is the public shape of a site.
type View struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Manager   string    `json:"manager,omitempty"`
	Employees int       `json:"employees"`
	Tasks     int       `json:"tasks"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func siteView(s models.Site) View {
	return View{
		ID:        s.ID.Hex(),
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		Manager:   s.Manager,
		Employees: s.Employees,
		Tasks:     s.Tasks,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type createRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Manager string `json:"manager"`
}

// HandleCreate handles POST /sites.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	site, err := h.Sites.Create(ctx, models.Site{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Manager: req.Manager,
	})
	if err != nil {
		h.Log.Error("site create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.Created(w, respond.M{
		"message": "Site created successfully",
		"site":    siteView(site),
	})
}

// HandleList handles GET /sites with an optional ?status=active|inactive
// filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var active *bool
	if s := r.URL.Query().Get("status"); s != "" {
		if !status.IsValid(s) {
			respond.BadRequest(w, "Invalid status filter")
			return
		}
		v := status.IsActive(s)
		active = &v
	}

	sites, err := h.Sites.List(ctx, active)
	if err != nil {
		h.Log.Error("site list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	views := make([]View, 0, len(sites))
	for _, s := range sites {
		views = append(views, siteView(s))
	}
	respond.OK(w, respond.M{"count": len(views), "sites": views})
}

// HandleGet handles GET /sites/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := siteID(w, r)
	if !ok {
		return
	}

	site, err := h.Sites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sitestore.ErrNotFound) {
			respond.NotFound(w, "Site not found")
			return
		}
		h.Log.Error("site lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"site": siteView(*site)})
}

type updateRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Manager   *string `json:"manager"`
	Employees *int    `json:"employees"`
	Tasks     *int    `json:"tasks"`
	IsActive  *bool   `json:"isActive"`
}

// HandleUpdate handles PUT /sites/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := siteID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	site, err := h.Sites.UpdateFields(ctx, id, sitestore.Update{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Manager:   req.Manager,
		Employees: req.Employees,
		Tasks:     req.Tasks,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, sitestore.ErrNotFound) {
			respond.NotFound(w, "Site not found")
			return
		}
		h.Log.Error("site update failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"message": "Site updated successfully",
		"site":    siteView(*site),
	})
}

// HandleDelete handles DELETE /sites/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := siteID(w, r)
	if !ok {
		return
	}

	if err := h.Sites.Delete(ctx, id); err != nil {
		if errors.Is(err, sitestore.ErrNotFound) {
			respond.NotFound(w, "Site not found")
			return
		}
		h.Log.Error("site delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Site deleted successfully"})
}

func siteID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Site not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/opshub/internal/app/store/users"
	"github.com/dalemusser/opshub/internal/app/system/inputval"
	"github.com/dalemusser/opshub/internal/app/system/paging"
	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	"github.com/dalemusser/opshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the user directory endpoints. Writes here touch the
// users collection only; they never reach back into the supervisor
// directory.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

type createRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department"`
	Site       string `json:"site"`
	Phone      string `json:"phone"`
	ReportsTo  string `json:"reportsTo"`
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Email:      req.Email,
		Username:   req.Username,
		Name:       req.Name,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		Department: req.Department,
		Site:       req.Site,
		Phone:      req.Phone,
		ReportsTo:  req.ReportsTo,
	}, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateIdentity):
			respond.BadRequest(w, "User with this email or username already exists")
		case errors.Is(err, userstore.ErrInvalidRole):
			respond.BadRequest(w, "Invalid role")
		default:
			h.Log.Error("user create failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.Created(w, respond.M{
		"message": "User created successfully",
		"user":    userView(u),
	})
}

// HandleList handles GET /users and GET /users?grouped=true.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if r.URL.Query().Get("grouped") == "true" {
		grouped, err := h.Users.ListGroupedByRole(ctx)
		if err != nil {
			h.Log.Error("user list failed", zap.Error(err))
			respond.Internal(w)
			return
		}
		out := make(map[string][]View, len(grouped))
		for role, users := range grouped {
			out[role] = userViews(users)
		}
		respond.OK(w, respond.M{"users": out})
		return
	}

	before, after := paging.Params(r)
	users, page, err := h.Users.ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	var prevCursor, nextCursor string
	if len(users) > 0 {
		prevCursor = wafflemongo.EncodeCursor(users[0].Email, users[0].ID)
		nextCursor = wafflemongo.EncodeCursor(users[len(users)-1].Email, users[len(users)-1].ID)
	}

	respond.OK(w, respond.M{
		"count":      len(users),
		"users":      userViews(users),
		"hasPrev":    page.HasPrev,
		"hasNext":    page.HasNext,
		"prevCursor": prevCursor,
		"nextCursor": nextCursor,
	})
}

// HandleGet handles GET /users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("user lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"user": userView(*u)})
}

type updateRequest struct {
	Name       *string `json:"name"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Site       *string `json:"site"`
	ReportsTo  *string `json:"reportsTo"`
	IsActive   *bool   `json:"isActive"`
}

// HandleUpdate handles PUT /users/{id}. Password and role are not
// patchable here; they have dedicated endpoints.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	u, err := h.Users.UpdateFields(ctx, id, userstore.Update{
		Name:       req.Name,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Department: req.Department,
		Site:       req.Site,
		ReportsTo:  req.ReportsTo,
		IsActive:   req.IsActive,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("user update failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"message": "User updated successfully",
		"user":    userView(*u),
	})
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// HandleUpdateRole handles PATCH /users/{id}/role.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	u, err := h.Users.UpdateRole(ctx, id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotFound):
			respond.NotFound(w, "User not found")
		case errors.Is(err, userstore.ErrInvalidRole):
			respond.BadRequest(w, "Invalid role")
		default:
			h.Log.Error("role update failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.OK(w, respond.M{
		"message": "Role updated successfully",
		"user":    userView(*u),
	})
}

// HandleToggleStatus handles PATCH /users/{id}/toggle-status.
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.Users.ToggleStatus(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("user toggle failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{
		"message": "User status updated successfully",
		"user":    userView(*u),
	})
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// HandleChangePassword handles POST /users/{id}/change-password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req passwordRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.Users.ChangePassword(ctx, id, req.Password); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("password change failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Password changed successfully"})
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("user delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "User deleted successfully"})
}

// HandleSearch handles GET /users/search?query=.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.Search(ctx, r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidQuery) {
			respond.BadRequest(w, "Search query is required")
			return
		}
		h.Log.Error("user search failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"count": len(users), "users": userViews(users)})
}

// HandleStats handles GET /users/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, active, inactive, err := h.Users.Stats(ctx)
	if err != nil {
		h.Log.Error("user stats failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"stats": respond.M{
		"total":    total,
		"active":   active,
		"inactive": inactive,
	}})
}

func userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "User not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	taskstore "github.com/dalemusser/opshub/internal/app/store/tasks"
	"github.com/dalemusser/opshub/internal/app/system/htmlsanitize"
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
	Tasks *taskstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Tasks: taskstore.New(db), Log: logger}
}

// View is the public shape of a task.
type View struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	SiteID      string     `json:"siteId,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Remarks     string     `json:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func taskView(t models.Task) View {
	v := View{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		SiteID:      string(t.SiteID),
		AssignedTo:  string(t.AssignedTo),
		Status:      t.Status,
		Priority:    t.Priority,
		Remarks:     t.Remarks,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if !t.DueDate.IsZero() {
		due := t.DueDate
		v.DueDate = &due
	}
	return v
}

func taskViews(tasks []models.Task) []View {
	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}
	return views
}

type createRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	SiteID      string     `json:"siteId"`
	AssignedTo  string     `json:"assignedTo"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Remarks     string     `json:"remarks"`
}

// HandleCreate handles POST /tasks. Site and assignee refs are checked
// for well-formedness only; the original system stores them without
// referential enforcement.
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
	userRef := models.UserRef(req.AssignedTo)
	if _, ok := userRef.ObjectID(); !ok && !userRef.IsZero() {
		respond.BadRequest(w, "Invalid assignee reference")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		SiteID:      siteRef,
		AssignedTo:  userRef,
		Priority:    req.Priority,
		Remarks:     htmlsanitize.Text(req.Remarks),
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	created, err := h.Tasks.Create(ctx, task)
	if err != nil {
		if errors.Is(err, taskstore.ErrInvalidStatus) {
			respond.BadRequest(w, "Invalid task status")
			return
		}
		h.Log.Error("task create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.Created(w, respond.M{
		"message": "Task created successfully",
		"task":    taskView(created),
	})
}

// HandleList handles GET /tasks with optional site, assignedTo, and
// status query filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	tasks, err := h.Tasks.List(ctx, taskstore.Filter{
		AssignedTo: models.UserRef(q.Get("assignedTo")),
		SiteID:     models.SiteRef(q.Get("site")),
		Status:     q.Get("status"),
	})
	if err != nil {
		if errors.Is(err, taskstore.ErrInvalidStatus) {
			respond.BadRequest(w, "Invalid task status")
			return
		}
		h.Log.Error("task list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"count": len(tasks), "tasks": taskViews(tasks)})
}

// HandleGet handles GET /tasks/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			respond.NotFound(w, "Task not found")
			return
		}
		h.Log.Error("task lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"task": taskView(*task)})
}

type updateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	SiteID      *string    `json:"siteId"`
	AssignedTo  *string    `json:"assignedTo"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	Remarks     *string    `json:"remarks"`
}

// HandleUpdate handles PUT /tasks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	upd := taskstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	if req.SiteID != nil {
		ref := models.SiteRef(*req.SiteID)
		if _, ok := ref.ObjectID(); !ok && !ref.IsZero() {
			respond.BadRequest(w, "Invalid site reference")
			return
		}
		upd.SiteID = &ref
	}
	if req.AssignedTo != nil {
		ref := models.UserRef(*req.AssignedTo)
		if _, ok := ref.ObjectID(); !ok && !ref.IsZero() {
			respond.BadRequest(w, "Invalid assignee reference")
			return
		}
		upd.AssignedTo = &ref
	}
	if req.Remarks != nil {
		clean := htmlsanitize.Text(*req.Remarks)
		upd.Remarks = &clean
	}

	task, err := h.Tasks.UpdateFields(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, taskstore.ErrNotFound):
			respond.NotFound(w, "Task not found")
		case errors.Is(err, taskstore.ErrInvalidStatus):
			respond.BadRequest(w, "Invalid task status")
		default:
			h.Log.Error("task update failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.OK(w, respond.M{
		"message": "Task updated successfully",
		"task":    taskView(*task),
	})
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleSetStatus handles PATCH /tasks/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := inputval.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	task, err := h.Tasks.SetStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, taskstore.ErrNotFound):
			respond.NotFound(w, "Task not found")
		case errors.Is(err, taskstore.ErrInvalidStatus):
			respond.BadRequest(w, "Invalid task status")
		default:
			h.Log.Error("task status change failed", zap.Error(err))
			respond.Internal(w)
		}
		return
	}

	respond.OK(w, respond.M{
		"message": "Task status updated successfully",
		"task":    taskView(*task),
	})
}

// HandleDelete handles DELETE /tasks/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			respond.NotFound(w, "Task not found")
			return
		}
		h.Log.Error("task delete failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, respond.M{"message": "Task deleted successfully"})
}

// HandleStats handles GET /tasks/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stats, err := h.Tasks.Stats(ctx)
	if err != nil {
		h.Log.Error("task stats failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{"stats": stats})
}

// HandleMarkOverdue handles POST /tasks/mark-overdue. It sweeps pending
// and in-progress tasks whose due date has passed into overdue.
func (h *Handler) HandleMarkOverdue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	marked, err := h.Tasks.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		h.Log.Error("task overdue sweep failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, respond.M{
		"message": "Overdue tasks updated",
		"marked":  marked,
	})
}

func taskID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Task not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

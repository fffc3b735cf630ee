package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/normalize"
	"github.com/dalemusser/opshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

func (s *Store) Create(ctx context.Context, task models.Task) (models.Task, error) {
	task.ID = primitive.NewObjectID()
	task.Title = normalize.Name(task.Title)
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if !models.ValidTaskStatus(task.Status) {
		return models.Task{}, ErrInvalidStatus
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Filter narrows List to a single assignee, site, or status. Zero
// values mean no constraint.
type Filter struct {
	AssignedTo models.UserRef
	SiteID     models.SiteRef
	Status     string
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Task, error) {
	q := bson.M{}
	if !f.AssignedTo.IsZero() {
		q["assigned_to"] = f.AssignedTo
	}
	if !f.SiteID.IsZero() {
		q["site_id"] = f.SiteID
	}
	if f.Status != "" {
		if !models.ValidTaskStatus(f.Status) {
			return nil, ErrInvalidStatus
		}
		q["status"] = f.Status
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update holds the patchable task fields.
type Update struct {
	Title       *string
	Description *string
	AssignedTo  *models.UserRef
	SiteID      *models.SiteRef
	Priority    *string
	Status      *string
	DueDate     *time.Time
	Remarks     *string
}

func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = normalize.Name(*upd.Title)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.AssignedTo != nil {
		set["assigned_to"] = *upd.AssignedTo
	}
	if upd.SiteID != nil {
		set["site_id"] = *upd.SiteID
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		if !models.ValidTaskStatus(*upd.Status) {
			return nil, ErrInvalidStatus
		}
		set["status"] = *upd.Status
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Remarks != nil {
		set["remarks"] = *upd.Remarks
	}

	var task models.Task
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Task, error) {
	return s.UpdateFields(ctx, id, Update{Status: &status})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOverdue flips pending and in-progress tasks whose due date has
// passed to overdue. Returns the number of tasks updated.
func (s *Store) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"status":   bson.M{"$in": bson.A{models.TaskPending, models.TaskInProgress}},
			"due_date": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{"status": models.TaskOverdue, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Stats reports task counts by status.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return st, err
	}
	if st.Pending, err = s.c.CountDocuments(ctx, bson.M{"status": models.TaskPending}); err != nil {
		return st, err
	}
	if st.InProgress, err = s.c.CountDocuments(ctx, bson.M{"status": models.TaskInProgress}); err != nil {
		return st, err
	}
	if st.Completed, err = s.c.CountDocuments(ctx, bson.M{"status": models.TaskCompleted}); err != nil {
		return st, err
	}
	st.Overdue, err = s.c.CountDocuments(ctx, bson.M{"status": models.TaskOverdue})
	return st, err
}

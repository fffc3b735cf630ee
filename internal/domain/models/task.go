// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskOverdue    = "overdue"
)

// ValidTaskStatus reports whether status is one of the fixed task states.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskPending, TaskInProgress, TaskCompleted, TaskOverdue:
		return true
	}
	return false
}

// Task is a unit of facility work assigned to a user at a site.
// SiteID and AssignedTo are typed refs validated at the boundary only.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	SiteID     SiteRef `bson:"site_id,omitempty" json:"site_id,omitempty"`
	AssignedTo UserRef `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`

	Status   string    `bson:"status" json:"status"`
	Priority string    `bson:"priority,omitempty" json:"priority,omitempty"` // low | medium | high
	DueDate  time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Remarks  string    `bson:"remarks,omitempty" json:"remarks,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/supervisor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supervisor is the authoritative record for supervisor-only
// attributes. Its companion User document (same email, role
// "supervisor") owns login and role identity; writes here are mirrored
// to the companion best-effort, never transactionally.
type Supervisor struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name" json:"name"`
	Phone string             `bson:"phone" json:"phone"`

	Department string `bson:"department" json:"department"`
	ReportsTo  string `bson:"reports_to,omitempty" json:"reports_to,omitempty"`
	Site       string `bson:"site,omitempty" json:"site,omitempty"`

	Employees        int      `bson:"employees" json:"employees"`
	Tasks            int      `bson:"tasks" json:"tasks"`
	AssignedProjects []string `bson:"assigned_projects" json:"assigned_projects"`

	IsActive bool      `bson:"is_active" json:"is_active"`
	JoinDate time.Time `bson:"join_date" json:"join_date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultDepartment is applied when a supervisor is created without one.
const DefaultDepartment = "Operations"

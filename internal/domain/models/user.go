// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user may hold. Role updates outside this set are rejected.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleEmployee   = "employee"
)

// ValidRole reports whether role is one of the fixed role values.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// User is the login/role identity record. For role "supervisor" a User
// is the companion view of a Supervisor document with the same email;
// the pairing is by (email, role), never by a stored cross-reference.
//
// Password holds the bcrypt hash and is never serialized to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`

	Name      string `bson:"name" json:"name"`
	FirstName string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"last_name,omitempty"`

	Role       string `bson:"role" json:"role"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Site       string `bson:"site,omitempty" json:"site,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	ReportsTo  string `bson:"reports_to,omitempty" json:"reports_to,omitempty"`

	IsActive bool      `bson:"is_active" json:"is_active"`
	JoinDate time.Time `bson:"join_date" json:"join_date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

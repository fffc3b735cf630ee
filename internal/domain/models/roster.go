// internal/domain/models/roster.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roster shifts.
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftNight   = "night"
)

// ValidShift reports whether shift is a known roster shift.
func ValidShift(shift string) bool {
	switch shift {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

// Roster is one shift assignment at a site on a calendar day.
// Date is stored at midnight UTC so calendar queries are range scans.
type Roster struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteID SiteRef            `bson:"site_id" json:"site_id"`
	Date   time.Time          `bson:"date" json:"date"`
	Shift  string             `bson:"shift" json:"shift"`

	AssignedUsers []UserRef `bson:"assigned_users" json:"assigned_users"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

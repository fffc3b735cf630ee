// internal/domain/models/briefing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Briefing is a training or toolbox-talk session held at a site.
// Attendees acknowledge the briefing individually; acknowledgements are
// keyed by user ref and recorded once per user.
type Briefing struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content,omitempty" json:"content,omitempty"`

	SiteID      SiteRef   `bson:"site_id,omitempty" json:"site_id,omitempty"`
	ConductedBy UserRef   `bson:"conducted_by,omitempty" json:"conducted_by,omitempty"`
	BriefedAt   time.Time `bson:"briefed_at" json:"briefed_at"`

	Attendees    []UserRef            `bson:"attendees" json:"attendees"`
	Acknowledged map[string]time.Time `bson:"acknowledged,omitempty" json:"acknowledged,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

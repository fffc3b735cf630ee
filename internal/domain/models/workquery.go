// internal/domain/models/workquery.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Work-query statuses.
const (
	QueryOpen       = "open"
	QueryInProgress = "in_progress"
	QueryResolved   = "resolved"
	QueryClosed     = "closed"
)

// ValidQueryStatus reports whether status is a known work-query state.
func ValidQueryStatus(status string) bool {
	switch status {
	case QueryOpen, QueryInProgress, QueryResolved, QueryClosed:
		return true
	}
	return false
}

// WorkQuery is an issue or question raised from the field. Description
// and Response are sanitized before persistence.
type WorkQuery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	SiteID   SiteRef `bson:"site_id,omitempty" json:"site_id,omitempty"`
	RaisedBy UserRef `bson:"raised_by,omitempty" json:"raised_by,omitempty"`

	Status     string     `bson:"status" json:"status"`
	Response   string     `bson:"response,omitempty" json:"response,omitempty"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/site.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Site is a managed facility location. Manager is a free-text reference
// to the person in charge; no referential integrity is enforced.
type Site struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Address string             `bson:"address,omitempty" json:"address,omitempty"`
	City    string             `bson:"city,omitempty" json:"city,omitempty"`
	Manager string             `bson:"manager,omitempty" json:"manager,omitempty"`

	Employees int `bson:"employees" json:"employees"`
	Tasks     int `bson:"tasks" json:"tasks"`

	IsActive bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

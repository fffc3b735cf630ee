// internal/domain/models/ref.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SiteRef is a string cross-reference to a Site. No referential
// integrity is enforced; validity is checked at the boundary.
type SiteRef string

// ObjectID parses the ref as a Mongo ObjectID, reporting whether it is
// a valid hex ObjectID.
func (r SiteRef) ObjectID() (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(string(r))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IsZero reports whether the ref is empty.
func (r SiteRef) IsZero() bool { return r == "" }

// UserRef is a string cross-reference to a User. No referential
// integrity is enforced; validity is checked at the boundary.
type UserRef string

// ObjectID parses the ref as a Mongo ObjectID, reporting whether it is
// a valid hex ObjectID.
func (r UserRef) ObjectID() (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(string(r))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IsZero reports whether the ref is empty.
func (r UserRef) IsZero() bool { return r == "" }

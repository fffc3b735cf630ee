// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a stored file attachment (compliance paperwork, site
// plans, certificates). The bytes live in object storage; this record
// holds the storage path and metadata.
type Document struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`

	SiteID     SiteRef `bson:"site_id,omitempty" json:"site_id,omitempty"`
	UploadedBy UserRef `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`

	StoragePath string `bson:"storage_path" json:"storage_path"`
	FileName    string `bson:"file_name" json:"file_name"`
	Size        int64  `bson:"size" json:"size"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

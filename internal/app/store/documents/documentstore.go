package documentstore

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
	return &Store{c: db.Collection("documents")}
}

var ErrNotFound = errors.New("document not found")

func (s *Store) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	doc.ID = primitive.NewObjectID()
	doc.Title = normalize.Name(doc.Title)

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var doc models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Filter narrows List by site or category. Zero values mean no
// constraint.
type Filter struct {
	SiteID   models.SiteRef
	Category string
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Document, error) {
	q := bson.M{}
	if !f.SiteID.IsZero() {
		q["site_id"] = f.SiteID
	}
	if f.Category != "" {
		q["category"] = f.Category
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []models.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes the metadata record and returns it so the caller can
// remove the stored bytes as well.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var doc models.Document
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

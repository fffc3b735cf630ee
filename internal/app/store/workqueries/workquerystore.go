package workquerystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/htmlsanitize"
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
	return &Store{c: db.Collection("work_queries")}
}

var (
	ErrNotFound      = errors.New("work query not found")
	ErrInvalidStatus = errors.New("invalid work query status")
)

func (s *Store) Create(ctx context.Context, wq models.WorkQuery) (models.WorkQuery, error) {
	wq.ID = primitive.NewObjectID()
	wq.Subject = normalize.Name(wq.Subject)
	wq.Description = htmlsanitize.Text(wq.Description)
	wq.Status = models.QueryOpen
	wq.Response = ""
	wq.ResolvedAt = nil

	now := time.Now().UTC()
	wq.CreatedAt = now
	wq.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, wq); err != nil {
		return models.WorkQuery{}, err
	}
	return wq, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WorkQuery, error) {
	var wq models.WorkQuery
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&wq); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wq, nil
}

// Filter narrows List by raiser, site, or status. Zero values mean no
// constraint.
type Filter struct {
	RaisedBy models.UserRef
	SiteID   models.SiteRef
	Status   string
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.WorkQuery, error) {
	q := bson.M{}
	if !f.RaisedBy.IsZero() {
		q["raised_by"] = f.RaisedBy
	}
	if !f.SiteID.IsZero() {
		q["site_id"] = f.SiteID
	}
	if f.Status != "" {
		if !models.ValidQueryStatus(f.Status) {
			return nil, ErrInvalidStatus
		}
		q["status"] = f.Status
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	queries := []models.WorkQuery{}
	if err := cur.All(ctx, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

// Respond records a response and moves the query into the given status.
// Resolving or closing stamps ResolvedAt; reopening clears it.
func (s *Store) Respond(ctx context.Context, id primitive.ObjectID, response, status string) (*models.WorkQuery, error) {
	if !models.ValidQueryStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	set := bson.M{
		"response":   htmlsanitize.Text(response),
		"status":     status,
		"updated_at": now,
	}
	update := bson.M{"$set": set}
	switch status {
	case models.QueryResolved, models.QueryClosed:
		set["resolved_at"] = now
	default:
		update["$unset"] = bson.M{"resolved_at": ""}
	}

	var wq models.WorkQuery
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&wq)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wq, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

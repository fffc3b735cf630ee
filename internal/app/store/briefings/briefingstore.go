package briefingstore

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
	return &Store{c: db.Collection("briefings")}
}

var (
	ErrNotFound    = errors.New("briefing not found")
	ErrNotAttendee = errors.New("user is not an attendee of this briefing")
)

func (s *Store) Create(ctx context.Context, b models.Briefing) (models.Briefing, error) {
	b.ID = primitive.NewObjectID()
	b.Title = normalize.Name(b.Title)
	b.Content = htmlsanitize.Text(b.Content)
	if b.Attendees == nil {
		b.Attendees = []models.UserRef{}
	}
	b.Acknowledged = nil
	if b.BriefedAt.IsZero() {
		b.BriefedAt = time.Now().UTC()
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Briefing{}, err
	}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Briefing, error) {
	var b models.Briefing
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) List(ctx context.Context, siteID models.SiteRef) ([]models.Briefing, error) {
	q := bson.M{}
	if !siteID.IsZero() {
		q["site_id"] = siteID
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "briefed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	briefings := []models.Briefing{}
	if err := cur.All(ctx, &briefings); err != nil {
		return nil, err
	}
	return briefings, nil
}

// Acknowledge records that an attendee has read the briefing. The first
// acknowledgement wins; repeats keep the original timestamp.
func (s *Store) Acknowledge(ctx context.Context, id primitive.ObjectID, user models.UserRef) (*models.Briefing, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attendee := false
	for _, a := range cur.Attendees {
		if a == user {
			attendee = true
			break
		}
	}
	if !attendee {
		return nil, ErrNotAttendee
	}
	if _, ok := cur.Acknowledged[string(user)]; ok {
		return cur, nil
	}

	now := time.Now().UTC()
	var b models.Briefing
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"acknowledged." + string(user): now,
			"updated_at":                   now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
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

package rosterstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

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
	return &Store{c: db.Collection("rosters")}
}

var (
	ErrNotFound       = errors.New("roster not found")
	ErrDuplicateShift = errors.New("roster already exists for this site, date, and shift")
	ErrInvalidShift   = errors.New("invalid shift")
)

// DayUTC truncates t to midnight UTC. All roster dates are stored this
// way so month queries are simple range scans.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Store) Create(ctx context.Context, r models.Roster) (models.Roster, error) {
	if !models.ValidShift(r.Shift) {
		return models.Roster{}, ErrInvalidShift
	}

	r.ID = primitive.NewObjectID()
	r.Date = DayUTC(r.Date)
	if r.AssignedUsers == nil {
		r.AssignedUsers = []models.UserRef{}
	}

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Roster{}, ErrDuplicateShift
		}
		return models.Roster{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Roster, error) {
	var r models.Roster
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Month returns every roster for a site in the given calendar month,
// ordered by date then shift.
func (s *Store) Month(ctx context.Context, siteID models.SiteRef, year int, month time.Month) ([]models.Roster, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	q := bson.M{"date": bson.M{"$gte": from, "$lt": to}}
	if !siteID.IsZero() {
		q["site_id"] = siteID
	}

	cur, err := s.c.Find(ctx, q,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "shift", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rosters := []models.Roster{}
	if err := cur.All(ctx, &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// Assign replaces the user list and notes for a roster entry.
func (s *Store) Assign(ctx context.Context, id primitive.ObjectID, users []models.UserRef, notes string) (*models.Roster, error) {
	if users == nil {
		users = []models.UserRef{}
	}

	var r models.Roster
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"assigned_users": users,
			"notes":          notes,
			"updated_at":     time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
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

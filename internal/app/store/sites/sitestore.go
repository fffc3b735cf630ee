package sitestore

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
	return &Store{c: db.Collection("sites")}
}

// ErrNotFound is returned when no site has the given ID.
var ErrNotFound = errors.New("site not found")

func (s *Store) Create(ctx context.Context, site models.Site) (models.Site, error) {
	site.ID = primitive.NewObjectID()
	site.Name = normalize.Name(site.Name)
	site.IsActive = true

	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, site); err != nil {
		return models.Site{}, err
	}
	return site, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Site, error) {
	var site models.Site
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&site); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

// List returns sites sorted by name. A non-nil active filters on the
// is_active flag.
func (s *Store) List(ctx context.Context, active *bool) ([]models.Site, error) {
	filter := bson.M{}
	if active != nil {
		filter["is_active"] = *active
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sites []models.Site
	if err := cur.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// Update holds the patchable site fields.
type Update struct {
	Name      *string
	Address   *string
	City      *string
	Manager   *string
	Employees *int
	Tasks     *int
	IsActive  *bool
}

func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Site, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.Manager != nil {
		set["manager"] = *upd.Manager
	}
	if upd.Employees != nil {
		set["employees"] = *upd.Employees
	}
	if upd.Tasks != nil {
		set["tasks"] = *upd.Tasks
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var site models.Site
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&site)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &site, nil
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

// Exists reports whether a site with this ID is present. Used to
// validate typed site refs at the API boundary.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

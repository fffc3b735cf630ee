package supervisorstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/normalize"
	"github.com/dalemusser/opshub/internal/app/system/paging"
	"github.com/dalemusser/opshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the supervisors collection. It performs primary-directory
// writes only; mirroring into the users collection is the companion
// sync's job and happens after these calls return.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("supervisors")}
}

var (
	// ErrDuplicateEmail is returned when a supervisor with this email exists.
	ErrDuplicateEmail = errors.New("a supervisor with this email already exists")
	// ErrNotFound is returned when no supervisor has the given ID.
	ErrNotFound = errors.New("supervisor not found")
	// ErrInvalidQuery is returned for an empty search query.
	ErrInvalidQuery = errors.New("search query is required")
)

// Create inserts a new supervisor with zeroed counters, an empty
// project list, and is_active=true.
func (s *Store) Create(ctx context.Context, sup models.Supervisor) (models.Supervisor, error) {
	sup.ID = primitive.NewObjectID()
	sup.Email = normalize.Email(sup.Email)
	sup.Name = normalize.Name(sup.Name)
	sup.Phone = normalize.Phone(sup.Phone)
	if sup.Department == "" {
		sup.Department = models.DefaultDepartment
	}

	sup.Employees = 0
	sup.Tasks = 0
	sup.AssignedProjects = []string{}
	sup.IsActive = true

	now := time.Now().UTC()
	if sup.JoinDate.IsZero() {
		sup.JoinDate = now
	}
	sup.CreatedAt = now
	sup.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sup); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Supervisor{}, ErrDuplicateEmail
		}
		return models.Supervisor{}, err
	}
	return sup, nil
}

// EmailExists reports whether a supervisor with this email already
// exists. The create handler checks this before writing so a duplicate
// is rejected without any companion-directory side effects.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// GetByID loads a supervisor by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Supervisor, error) {
	var sup models.Supervisor
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sup); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sup, nil
}

// List returns all supervisors sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Supervisor, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sups []models.Supervisor
	if err := cur.All(ctx, &sups); err != nil {
		return nil, err
	}
	return sups, nil
}

// ListPage returns one keyset page of supervisors sorted by email.
// Email is stored normalized lowercase, so it doubles as the
// case-insensitive sort key for the cursor.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.Supervisor, paging.Result, error) {
	filter := bson.M{}
	findOpts := options.Find()

	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "email")
	if window := cfg.KeysetWindow("email"); window != nil {
		filter["$or"] = window["$or"]
	}

	cur, err := s.c.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, paging.Result{}, err
	}
	defer cur.Close(ctx)

	sups := []models.Supervisor{}
	if err := cur.All(ctx, &sups); err != nil {
		return nil, paging.Result{}, err
	}

	page := paging.TrimPage(&sups, before, after)
	if before != "" {
		paging.Reverse(sups)
	}
	return sups, page, nil
}

// Update holds the fields a partial supervisor update may change.
// Only non-nil fields are applied.
type Update struct {
	Name             *string
	Phone            *string
	Department       *string
	ReportsTo        *string
	Site             *string
	IsActive         *bool
	Employees        *int
	Tasks            *int
	AssignedProjects *[]string
}

// UpdateFields applies a partial update and returns the updated
// document. Email is never patched here: identity changes would break
// companion matching and go through a separate migration path.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Supervisor, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.ReportsTo != nil {
		set["reports_to"] = *upd.ReportsTo
	}
	if upd.Site != nil {
		set["site"] = *upd.Site
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.Employees != nil {
		set["employees"] = *upd.Employees
	}
	if upd.Tasks != nil {
		set["tasks"] = *upd.Tasks
	}
	if upd.AssignedProjects != nil {
		set["assigned_projects"] = *upd.AssignedProjects
	}

	return s.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// ToggleStatus flips is_active and returns the updated supervisor.
func (s *Store) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.Supervisor, error) {
	sup, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"is_active":  !sup.IsActive,
		"updated_at": time.Now().UTC(),
	}})
}

// Delete removes a supervisor and returns the deleted document so the
// caller still has the email for companion cleanup.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Supervisor, error) {
	var sup models.Supervisor
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&sup); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sup, nil
}

// Search matches query as a case-insensitive substring over name,
// email, phone, department, and site. An empty query is rejected.
func (s *Store) Search(ctx context.Context, query string) ([]models.Supervisor, error) {
	query = normalize.Name(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"email": pattern},
		bson.M{"phone": pattern},
		bson.M{"department": pattern},
		bson.M{"site": pattern},
	}}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sups := []models.Supervisor{}
	if err := cur.All(ctx, &sups); err != nil {
		return nil, err
	}
	return sups, nil
}

// Stats returns total/active/inactive counts over the directory.
func (s *Store) Stats(ctx context.Context) (total, active, inactive int64, err error) {
	total, err = s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, 0, err
	}
	active, err = s.c.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, 0, 0, err
	}
	return total, active, total - active, nil
}

func (s *Store) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Supervisor, error) {
	var sup models.Supervisor
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&sup)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &sup, nil
}

package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/hashutil"
	"github.com/dalemusser/opshub/internal/app/system/normalize"
	"github.com/dalemusser/opshub/internal/app/system/paging"
	"github.com/dalemusser/opshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateIdentity is returned when an email or username collides
	// with an existing user.
	ErrDuplicateIdentity = errors.New("a user with this email or username already exists")
	// ErrNotFound is returned when no user has the given ID.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidRole is returned for roles outside the fixed enum.
	ErrInvalidRole = errors.New(`role must be "superadmin"|"admin"|"manager"|"supervisor"|"employee"`)
)

// DefaultSite is applied when a user is created without a site.
const DefaultSite = "Mumbai Office"

// prepare normalizes identity fields and guarantees Name is populated:
// first+last name, falling back to username, then the email local-part.
// It runs on every create, mirroring the save hook in the user model.
func prepare(u *models.User) {
	u.Email = normalize.Email(u.Email)
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	if u.Username == "" {
		u.Username = normalize.Username(u.Email)
	}
	if u.Name = normalize.Name(u.Name); u.Name == "" {
		switch {
		case u.FirstName != "":
			u.Name = normalize.Name(u.FirstName + " " + u.LastName)
		case u.Username != "":
			u.Name = u.Username
		default:
			u.Name = normalize.Username(u.Email)
		}
	}
	if u.Site == "" {
		u.Site = DefaultSite
	}
}

// Create inserts a new user. plainPassword is hashed before the write;
// the plaintext is never stored. Zero-value lifecycle fields get
// defaults (active, join date now).
func (s *Store) Create(ctx context.Context, u models.User, plainPassword string) (models.User, error) {
	if !models.ValidRole(u.Role) {
		return models.User{}, ErrInvalidRole
	}

	u.ID = primitive.NewObjectID()
	prepare(&u)

	hash, err := hashutil.Password(plainPassword)
	if err != nil {
		return models.User{}, err
	}
	u.Password = hash

	u.IsActive = true
	now := time.Now().UTC()
	if u.JoinDate.IsZero() {
		u.JoinDate = now
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateIdentity
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns users sorted by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListPage returns one keyset page of users sorted by email. Email is
// stored normalized lowercase, so it doubles as the case-insensitive
// sort key for the cursor.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.User, paging.Result, error) {
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

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, paging.Result{}, err
	}

	page := paging.TrimPage(&users, before, after)
	if before != "" {
		paging.Reverse(users)
	}
	return users, page, nil
}

// ListGroupedByRole returns users bucketed by role, each bucket sorted
// by name.
func (s *Store) ListGroupedByRole(ctx context.Context) (map[string][]models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.User)
	for _, u := range users {
		grouped[u.Role] = append(grouped[u.Role], u)
	}
	return grouped, nil
}

// Update holds the profile fields a direct patch may change. Password,
// _id, and timestamps are deliberately absent: password changes go
// through ChangePassword, which re-hashes.
type Update struct {
	Name       *string
	FirstName  *string
	LastName   *string
	Phone      *string
	Department *string
	Site       *string
	ReportsTo  *string
	IsActive   *bool
}

// UpdateFields applies a partial update. Only non-nil fields are set.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	// A patch must not blank the display name; every user keeps a
	// non-empty name from the create-time fallback chain.
	if upd.Name != nil {
		if name := normalize.Name(*upd.Name); name != "" {
			set["name"] = name
		}
	}
	if upd.FirstName != nil {
		set["first_name"] = normalize.Name(*upd.FirstName)
	}
	if upd.LastName != nil {
		set["last_name"] = normalize.Name(*upd.LastName)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.Site != nil {
		set["site"] = *upd.Site
	}
	if upd.ReportsTo != nil {
		set["reports_to"] = *upd.ReportsTo
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// UpdateRole changes a user's role after validating the enum.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
}

// ToggleStatus flips is_active and returns the updated user.
func (s *Store) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_active":  !u.IsActive,
		"updated_at": time.Now().UTC(),
	}})
}

// ChangePassword re-hashes and stores a new password.
func (s *Store) ChangePassword(ctx context.Context, id primitive.ObjectID, plainPassword string) error {
	hash, err := hashutil.Password(plainPassword)
	if err != nil {
		return err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user. Returns ErrNotFound if no document matched.
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

// ErrInvalidQuery is returned for an empty search query.
var ErrInvalidQuery = errors.New("search query is required")

// Search matches query as a case-insensitive substring over name,
// email, username, department, and site. An empty query is rejected.
func (s *Store) Search(ctx context.Context, query string) ([]models.User, error) {
	query = normalize.Name(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"email": pattern},
		bson.M{"username": pattern},
		bson.M{"department": pattern},
		bson.M{"site": pattern},
	}}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Stats returns total/active/inactive counts.
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

func (s *Store) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &u, nil
}

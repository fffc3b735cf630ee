// Package companionsync mirrors supervisor-directory mutations into the
// matching user-directory record.
//
// A Supervisor and a User with role "supervisor" and the same email are
// the same person seen through two schemas. The shim keeps the User
// side roughly in step: it runs synchronously after each successful
// supervisor write, matches the companion by the (email, role) pair —
// there is no stored cross-reference — and swallows every failure.
// None of the methods return an error: a failed propagation is logged
// with enough context for manual reconciliation and must never fail,
// block, or roll back the primary operation. There is no retry queue,
// no outbox, and no drift repair; the two collections can diverge.
package companionsync

import (
	"context"

	userstore "github.com/dalemusser/opshub/internal/app/store/users"
	"github.com/dalemusser/opshub/internal/app/system/normalize"
	"github.com/dalemusser/opshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sync receives supervisor mutations after they have been committed to
// the primary directory. Implementations must be non-blocking in the
// failure sense: they may do I/O, but they never surface errors.
type Sync interface {
	// OnCreate creates the companion user. plainPassword passes through
	// the user store's own hashing step and is never persisted as-is.
	OnCreate(ctx context.Context, sup models.Supervisor, plainPassword string)
	// OnUpdate overwrites the propagated field set on the companion.
	// A missing companion is a no-op.
	OnUpdate(ctx context.Context, sup models.Supervisor)
	// OnDelete removes the companion matched by (email, supervisor).
	// A missing companion is a no-op.
	OnDelete(ctx context.Context, sup models.Supervisor)
}

// Directory is the Mongo-backed Sync writing to the users collection.
type Directory struct {
	users *userstore.Store
	c     *mongo.Collection
	log   *zap.Logger
}

// New builds the user-directory sync.
func New(db *mongo.Database, logger *zap.Logger) *Directory {
	return &Directory{
		users: userstore.New(db),
		c:     db.Collection("users"),
		log:   logger,
	}
}

// OnCreate implements Sync. Username is the email local-part; the
// display name is split on the first space into first/last name.
func (d *Directory) OnCreate(ctx context.Context, sup models.Supervisor, plainPassword string) {
	first, last := normalize.SplitName(sup.Name)
	companion := models.User{
		Email:      sup.Email,
		Username:   normalize.Username(sup.Email),
		Name:       sup.Name,
		FirstName:  first,
		LastName:   last,
		Role:       models.RoleSupervisor,
		Department: sup.Department,
		Site:       sup.Site,
		Phone:      sup.Phone,
		ReportsTo:  sup.ReportsTo,
		JoinDate:   sup.JoinDate,
	}

	if _, err := d.users.Create(ctx, companion, plainPassword); err != nil {
		d.logFailure("create", sup, err)
	}
}

// OnUpdate implements Sync. Only name, phone, department, site,
// reports_to, and is_active propagate; email and password never do.
// The $set is a pure overwrite, so replaying the same update is
// idempotent.
func (d *Directory) OnUpdate(ctx context.Context, sup models.Supervisor) {
	_, err := d.c.UpdateOne(ctx,
		companionFilter(sup.Email),
		bson.M{"$set": bson.M{
			"name":       sup.Name,
			"phone":      sup.Phone,
			"department": sup.Department,
			"site":       sup.Site,
			"reports_to": sup.ReportsTo,
			"is_active":  sup.IsActive,
			"updated_at": sup.UpdatedAt,
		}})
	if err != nil {
		d.logFailure("update", sup, err)
	}
}

// OnDelete implements Sync.
func (d *Directory) OnDelete(ctx context.Context, sup models.Supervisor) {
	if _, err := d.c.DeleteOne(ctx, companionFilter(sup.Email)); err != nil {
		d.logFailure("delete", sup, err)
	}
}

// companionFilter is the matching key for the companion record: the
// (email, role) pair, never a stored ID.
func companionFilter(email string) bson.M {
	return bson.M{
		"email": normalize.Email(email),
		"role":  models.RoleSupervisor,
	}
}

func (d *Directory) logFailure(op string, sup models.Supervisor, err error) {
	d.log.Error("companion sync failed",
		zap.String("operation", op),
		zap.String("supervisor_id", sup.ID.Hex()),
		zap.String("email", sup.Email),
		zap.Error(err),
	)
}

// Nop is a Sync that does nothing. Used where propagation is disabled.
type Nop struct{}

func (Nop) OnCreate(context.Context, models.Supervisor, string) {}
func (Nop) OnUpdate(context.Context, models.Supervisor)         {}
func (Nop) OnDelete(context.Context, models.Supervisor)         {}

// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes on users.email, users.username, and supervisors.email
are load-bearing: companion matching between the two directories is by
email, and a duplicate would make propagation ambiguous.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureSupervisors(ctx, db); err != nil {
		problems = append(problems, "supervisors: "+err.Error())
	}
	if err := ensureSites(ctx, db); err != nil {
		problems = append(problems, "sites: "+err.Error())
	}
	if err := ensureTasks(ctx, db); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureDocuments(ctx, db); err != nil {
		problems = append(problems, "documents: "+err.Error())
	}
	if err := ensureWorkQueries(ctx, db); err != nil {
		problems = append(problems, "work_queries: "+err.Error())
	}
	if err := ensureRosters(ctx, db); err != nil {
		problems = append(problems, "rosters: "+err.Error())
	}
	if err := ensureBriefings(ctx, db); err != nil {
		problems = append(problems, "briefings: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func unique() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique().SetName("uniq_email")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique().SetName("uniq_username")},
		// Companion lookups are always (email, role).
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}}, Options: options.Index().SetName("email_role")},
		{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("role")},
	})
}

func ensureSupervisors(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("supervisors"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique().SetName("uniq_email")},
		{Keys: bson.D{{Key: "is_active", Value: 1}}, Options: options.Index().SetName("is_active")},
	})
}

func ensureSites(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("sites"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")},
	})
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("tasks"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("site_status")},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}, Options: options.Index().SetName("assigned_to")},
		{Keys: bson.D{{Key: "due_date", Value: 1}}, Options: options.Index().SetName("due_date")},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("documents"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "site_id", Value: 1}}, Options: options.Index().SetName("site")},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category")},
	})
}

func ensureWorkQueries(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("work_queries"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("site_status")},
		{Keys: bson.D{{Key: "raised_by", Value: 1}}, Options: options.Index().SetName("raised_by")},
	})
}

func ensureRosters(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("rosters"), []mongo.IndexModel{
		// One roster per site/date/shift.
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "date", Value: 1}, {Key: "shift", Value: 1}}, Options: unique().SetName("uniq_site_date_shift")},
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetName("date")},
	})
}

func ensureBriefings(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("briefings"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "briefed_at", Value: -1}}, Options: options.Index().SetName("site_briefed_at")},
	})
}

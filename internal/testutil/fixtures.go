package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/hashutil"
	"github.com/dalemusser/opshub/internal/app/system/normalize"
	"github.com/dalemusser/opshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSupervisor inserts a supervisor document directly.
func (f *Fixtures) CreateSupervisor(ctx context.Context, name, email, phone string) models.Supervisor {
	f.t.Helper()

	now := time.Now().UTC()
	sup := models.Supervisor{
		ID:               primitive.NewObjectID(),
		Email:            normalize.Email(email),
		Name:             name,
		Phone:            phone,
		Department:       models.DefaultDepartment,
		AssignedProjects: []string{},
		IsActive:         true,
		JoinDate:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("supervisors").InsertOne(ctx, sup); err != nil {
		f.t.Fatalf("failed to create test supervisor: %v", err)
	}
	return sup
}

// CreateUser inserts a user document directly with an already-hashed
// password.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	hash, err := hashutil.Password("fixture-password")
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     normalize.Email(email),
		Username:  normalize.Username(email),
		Password:  hash,
		Name:      name,
		Role:      role,
		Site:      "Mumbai Office",
		IsActive:  true,
		JoinDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCompanionUser inserts a user with role "supervisor" paired to
// the given supervisor by email.
func (f *Fixtures) CreateCompanionUser(ctx context.Context, sup models.Supervisor) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, sup.Name, sup.Email, models.RoleSupervisor)
}

// CreateSite inserts a site document directly.
func (f *Fixtures) CreateSite(ctx context.Context, name, city string) models.Site {
	f.t.Helper()

	now := time.Now().UTC()
	site := models.Site{
		ID:        primitive.NewObjectID(),
		Name:      name,
		City:      city,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("sites").InsertOne(ctx, site); err != nil {
		f.t.Fatalf("failed to create test site: %v", err)
	}
	return site
}

// CreateTask inserts a task document directly.
func (f *Fixtures) CreateTask(ctx context.Context, title string, site models.Site, assignee models.User) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		Title:      title,
		SiteID:     models.SiteRef(site.ID.Hex()),
		AssignedTo: models.UserRef(assignee.ID.Hex()),
		Status:     models.TaskPending,
		Priority:   "medium",
		DueDate:    now.Add(72 * time.Hour),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateWorkQuery inserts a work query document directly.
func (f *Fixtures) CreateWorkQuery(ctx context.Context, subject string, site models.Site, raisedBy models.User) models.WorkQuery {
	f.t.Helper()

	now := time.Now().UTC()
	wq := models.WorkQuery{
		ID:        primitive.NewObjectID(),
		Subject:   subject,
		SiteID:    models.SiteRef(site.ID.Hex()),
		RaisedBy:  models.UserRef(raisedBy.ID.Hex()),
		Status:    models.QueryOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("work_queries").InsertOne(ctx, wq); err != nil {
		f.t.Fatalf("failed to create test work query: %v", err)
	}
	return wq
}

// CreateRoster inserts a roster document directly.
func (f *Fixtures) CreateRoster(ctx context.Context, site models.Site, date time.Time, shift string, users ...models.User) models.Roster {
	f.t.Helper()

	refs := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, models.UserRef(u.ID.Hex()))
	}

	now := time.Now().UTC()
	roster := models.Roster{
		ID:            primitive.NewObjectID(),
		SiteID:        models.SiteRef(site.ID.Hex()),
		Date:          time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Shift:         shift,
		AssignedUsers: refs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("rosters").InsertOne(ctx, roster); err != nil {
		f.t.Fatalf("failed to create test roster: %v", err)
	}
	return roster
}

// CreateBriefing inserts a briefing document directly.
func (f *Fixtures) CreateBriefing(ctx context.Context, title string, site models.Site, attendees ...models.User) models.Briefing {
	f.t.Helper()

	refs := make([]models.UserRef, 0, len(attendees))
	for _, u := range attendees {
		refs = append(refs, models.UserRef(u.ID.Hex()))
	}

	now := time.Now().UTC()
	b := models.Briefing{
		ID:        primitive.NewObjectID(),
		Title:     title,
		SiteID:    models.SiteRef(site.ID.Hex()),
		BriefedAt: now,
		Attendees: refs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("briefings").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test briefing: %v", err)
	}
	return b
}

package taskstore_test

import (
	"errors"
	"testing"
	"time"

	taskstore "github.com/dalemusser/opshub/internal/app/store/tasks"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{Title: "  Inspect  fire exits "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Title != "Inspect fire exits" {
		t.Errorf("title = %q, want whitespace collapsed", task.Title)
	}
	if task.Status != models.TaskPending {
		t.Errorf("status = %q, want %q", task.Status, models.TaskPending)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_RejectsBadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Task{Title: "x", Status: "done"})
	if !errors.Is(err, taskstore.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	other := fixtures.CreateSite(ctx, "Nashik Depot", "Nashik")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	bob := fixtures.CreateUser(ctx, "Bob", "bob@x.com", models.RoleEmployee)

	fixtures.CreateTask(ctx, "Check boilers", site, alice)
	fixtures.CreateTask(ctx, "Clean gutters", site, bob)
	fixtures.CreateTask(ctx, "Restock supplies", other, alice)

	bySite, err := store.List(ctx, taskstore.Filter{SiteID: models.SiteRef(site.ID.Hex())})
	if err != nil {
		t.Fatalf("List by site: %v", err)
	}
	if len(bySite) != 2 {
		t.Errorf("got %d tasks for site, want 2", len(bySite))
	}

	byUser, err := store.List(ctx, taskstore.Filter{AssignedTo: models.UserRef(alice.ID.Hex())})
	if err != nil {
		t.Fatalf("List by assignee: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("got %d tasks for alice, want 2", len(byUser))
	}

	if _, err := store.List(ctx, taskstore.Filter{Status: "bogus"}); !errors.Is(err, taskstore.ErrInvalidStatus) {
		t.Errorf("List with bad status: err = %v, want ErrInvalidStatus", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	task := fixtures.CreateTask(ctx, "Check boilers", site, alice)

	got, err := store.SetStatus(ctx, task.ID, models.TaskCompleted)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != models.TaskCompleted {
		t.Errorf("status = %q, want %q", got.Status, models.TaskCompleted)
	}
	if got.Title != "Check boilers" {
		t.Errorf("title changed to %q", got.Title)
	}

	if _, err := store.SetStatus(ctx, task.ID, "bogus"); !errors.Is(err, taskstore.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestStore_MarkOverdue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)

	late := fixtures.CreateTask(ctx, "Late task", site, alice)
	if _, err := store.UpdateFields(ctx, late.ID, taskstore.Update{DueDate: timePtr(time.Now().UTC().Add(-24 * time.Hour))}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	fixtures.CreateTask(ctx, "Future task", site, alice)

	n, err := store.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if n != 1 {
		t.Fatalf("marked %d tasks overdue, want 1", n)
	}

	got, err := store.GetByID(ctx, late.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.TaskOverdue {
		t.Errorf("status = %q, want %q", got.Status, models.TaskOverdue)
	}
}

func TestStore_Delete_NotFoundOnRepeat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	task := fixtures.CreateTask(ctx, "Check boilers", site, alice)

	if err := store.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, task.ID); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func timePtr(t time.Time) *time.Time { return &t }

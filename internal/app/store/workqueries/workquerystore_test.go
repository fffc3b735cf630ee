package workquerystore_test

import (
	"errors"
	"strings"
	"testing"

	workquerystore "github.com/dalemusser/opshub/internal/app/store/workqueries"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
)

func TestStore_Create_SanitizesAndOpens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workquerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	wq, err := store.Create(ctx, models.WorkQuery{
		Subject:     "Broken AC",
		Description: "<script>alert(1)</script>Unit 3 is down",
		Status:      models.QueryClosed, // ignored; new queries always open
		Response:    "should be cleared",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wq.Status != models.QueryOpen {
		t.Errorf("status = %q, want %q", wq.Status, models.QueryOpen)
	}
	if strings.Contains(wq.Description, "<script>") {
		t.Errorf("description not sanitized: %q", wq.Description)
	}
	if wq.Response != "" {
		t.Errorf("response = %q, want empty on create", wq.Response)
	}
	if wq.ResolvedAt != nil {
		t.Error("resolved_at should be nil on create")
	}
}

func TestStore_Respond_ResolvedStampsTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workquerystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	wq := fixtures.CreateWorkQuery(ctx, "Broken AC", site, alice)

	got, err := store.Respond(ctx, wq.ID, "Technician dispatched", models.QueryResolved)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got.Status != models.QueryResolved {
		t.Errorf("status = %q, want %q", got.Status, models.QueryResolved)
	}
	if got.Response != "Technician dispatched" {
		t.Errorf("response = %q", got.Response)
	}
	if got.ResolvedAt == nil {
		t.Fatal("resolved_at not stamped")
	}

	// Reopening clears the resolution timestamp.
	got, err = store.Respond(ctx, wq.ID, "Issue came back", models.QueryInProgress)
	if err != nil {
		t.Fatalf("Respond (reopen): %v", err)
	}
	if got.ResolvedAt != nil {
		t.Error("resolved_at should be cleared when reopened")
	}
}

func TestStore_Respond_RejectsBadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workquerystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	wq := fixtures.CreateWorkQuery(ctx, "Broken AC", site, alice)

	if _, err := store.Respond(ctx, wq.ID, "x", "finished"); !errors.Is(err, workquerystore.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestStore_List_FilterByRaiser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workquerystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	bob := fixtures.CreateUser(ctx, "Bob", "bob@x.com", models.RoleEmployee)

	fixtures.CreateWorkQuery(ctx, "Broken AC", site, alice)
	fixtures.CreateWorkQuery(ctx, "Leaky roof", site, alice)
	fixtures.CreateWorkQuery(ctx, "Flickering lights", site, bob)

	got, err := store.List(ctx, workquerystore.Filter{RaisedBy: models.UserRef(alice.ID.Hex())})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d queries, want 2", len(got))
	}
}

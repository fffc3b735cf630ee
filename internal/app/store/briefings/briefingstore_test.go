package briefingstore_test

import (
	"errors"
	"testing"

	briefingstore "github.com/dalemusser/opshub/internal/app/store/briefings"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
)

func TestStore_Acknowledge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := briefingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	bob := fixtures.CreateUser(ctx, "Bob", "bob@x.com", models.RoleEmployee)
	briefing := fixtures.CreateBriefing(ctx, "Ladder safety", site, alice)

	aliceRef := models.UserRef(alice.ID.Hex())

	got, err := store.Acknowledge(ctx, briefing.ID, aliceRef)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	first, ok := got.Acknowledged[string(aliceRef)]
	if !ok {
		t.Fatal("acknowledgement not recorded")
	}

	// Repeat keeps the original timestamp.
	got, err = store.Acknowledge(ctx, briefing.ID, aliceRef)
	if err != nil {
		t.Fatalf("Acknowledge (repeat): %v", err)
	}
	if !got.Acknowledged[string(aliceRef)].Equal(first) {
		t.Error("repeat acknowledgement changed the timestamp")
	}

	// Bob is not on the attendee list.
	if _, err := store.Acknowledge(ctx, briefing.ID, models.UserRef(bob.ID.Hex())); !errors.Is(err, briefingstore.ErrNotAttendee) {
		t.Errorf("err = %v, want ErrNotAttendee", err)
	}
}

func TestStore_Create_SanitizesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := briefingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Briefing{
		Title:   "Ladder safety",
		Content: "<b>Always</b> maintain three points of contact",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Content != "Always maintain three points of contact" {
		t.Errorf("content = %q, want markup stripped", b.Content)
	}
	if b.BriefedAt.IsZero() {
		t.Error("briefed_at should default to now")
	}
	if b.Attendees == nil {
		t.Error("attendees should be an empty slice, not nil")
	}
}

func TestStore_List_BySite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := briefingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	other := fixtures.CreateSite(ctx, "Nashik Depot", "Nashik")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)

	fixtures.CreateBriefing(ctx, "Ladder safety", site, alice)
	fixtures.CreateBriefing(ctx, "Fire drill", site, alice)
	fixtures.CreateBriefing(ctx, "First aid", other, alice)

	got, err := store.List(ctx, models.SiteRef(site.ID.Hex()))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d briefings, want 2", len(got))
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List (all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d briefings across sites, want 3", len(all))
	}
}

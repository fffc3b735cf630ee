package documentstore_test

import (
	"errors"
	"testing"

	documentstore "github.com/dalemusser/opshub/internal/app/store/documents"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
)

func TestStore_CreateListDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := documentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Pune Plant", "Pune")
	siteRef := models.SiteRef(site.ID.Hex())

	doc, err := store.Create(ctx, models.Document{
		Title:       "Fire safety certificate",
		Category:    "compliance",
		SiteID:      siteRef,
		StoragePath: "documents/2026/08/abcd1234-cert.pdf",
		FileName:    "cert.pdf",
		Size:        2048,
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byCategory, err := store.List(ctx, documentstore.Filter{Category: "compliance"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byCategory) != 1 {
		t.Fatalf("got %d documents, want 1", len(byCategory))
	}

	deleted, err := store.Delete(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.StoragePath != doc.StoragePath {
		t.Errorf("deleted storage path = %q, want %q", deleted.StoragePath, doc.StoragePath)
	}
	if _, err := store.Delete(ctx, doc.ID); !errors.Is(err, documentstore.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

package supervisors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/opshub/internal/app/features/supervisors"
	"github.com/dalemusser/opshub/internal/app/system/companionsync"
	"github.com/dalemusser/opshub/internal/app/system/indexes"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*supervisors.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	h := supervisors.NewHandler(db, companionsync.New(db, zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreate_CreatesSupervisorAndCompanion(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/supervisors", map[string]any{
		"name":     "Jane Doe",
		"email":    "Jane@X.com",
		"phone":    "555-0101",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		Supervisor struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"supervisor"`
	}
	testutil.DecodeBody(t, rec, &body)
	if !body.Success {
		t.Error("success = false")
	}
	if body.Message != "Supervisor created successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Supervisor.Email != "jane@x.com" {
		t.Errorf("email = %q, want normalized", body.Supervisor.Email)
	}

	// Companion user exists with role supervisor.
	var companion models.User
	err := fixtures.DB().Collection("users").FindOne(ctx,
		bson.M{"email": "jane@x.com", "role": models.RoleSupervisor}).Decode(&companion)
	if err != nil {
		t.Fatalf("companion user not created: %v", err)
	}
	if companion.Username != "jane" {
		t.Errorf("companion username = %q, want %q", companion.Username, "jane")
	}
}

func TestHandleCreate_DuplicateEmail(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSupervisor(ctx, "Jane Doe", "jane@x.com", "555-0101")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/supervisors", map[string]any{
		"name":     "Other Jane",
		"email":    "jane@x.com",
		"phone":    "555-0202",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Success {
		t.Error("success = true on duplicate")
	}
	if body.Message != "Supervisor with this email already exists" {
		t.Errorf("message = %q", body.Message)
	}

	// The rejected create must not have touched the users collection.
	n, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{"email": "jane@x.com"})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("found %d companion users after rejected create, want 0", n)
	}
}

func TestHandleUpdate_PropagatesToCompanion(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sup := fixtures.CreateSupervisor(ctx, "Jane Doe", "jane@x.com", "555-0101")
	fixtures.CreateCompanionUser(ctx, sup)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/supervisors/"+sup.ID.Hex(), map[string]any{
		"phone": "555-9999",
	})
	req = testutil.WithChiURLParam(req, "id", sup.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var companion models.User
	err := fixtures.DB().Collection("users").FindOne(ctx,
		bson.M{"email": "jane@x.com", "role": models.RoleSupervisor}).Decode(&companion)
	if err != nil {
		t.Fatalf("companion lookup: %v", err)
	}
	if companion.Phone != "555-9999" {
		t.Errorf("companion phone = %q, want propagated value", companion.Phone)
	}
}

func TestHandleUpdate_NotFound(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/supervisors/bogus", map[string]any{"phone": "x"})
	req = testutil.WithChiURLParam(req, "id", "bogus")
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Message != "Supervisor not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestHandleDelete_RemovesCompanion(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sup := fixtures.CreateSupervisor(ctx, "Jane Doe", "jane@x.com", "555-0101")
	fixtures.CreateCompanionUser(ctx, sup)

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/supervisors/"+sup.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", sup.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	n, err := fixtures.DB().Collection("users").CountDocuments(ctx,
		bson.M{"email": "jane@x.com", "role": models.RoleSupervisor})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("companion still present after delete")
	}
}

// A failing companion directory must not fail the supervisor
// operation: the primary write sticks and the client still gets 2xx.
func TestHandleCreate_SyncFailureIsolated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	failingSync := companionsync.New(testutil.UnreachableDB(t), zap.NewNop())
	h := supervisors.NewHandler(db, failingSync, zap.NewNop())

	req := testutil.NewJSONRequest(t, http.MethodPost, "/supervisors", map[string]any{
		"name":     "Jane Doe",
		"email":    "jane@x.com",
		"phone":    "555-0101",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 despite sync failure; body %s", rec.Code, rec.Body.String())
	}

	n, err := db.Collection("supervisors").CountDocuments(ctx, bson.M{"email": "jane@x.com"})
	if err != nil {
		t.Fatalf("count supervisors: %v", err)
	}
	if n != 1 {
		t.Errorf("supervisor count = %d, want 1", n)
	}
}

func TestHandleSearch(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSupervisor(ctx, "Jane Doe", "jane@x.com", "555-0101")
	fixtures.CreateSupervisor(ctx, "John Roe", "john@x.com", "555-0202")

	req := httptest.NewRequest(http.MethodGet, "/supervisors/search?query=JANE", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Success     bool               `json:"success"`
		Count       int                `json:"count"`
		Supervisors []supervisors.View `json:"supervisors"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Count != 1 || len(body.Supervisors) != 1 {
		t.Fatalf("count = %d, supervisors = %d, want 1 each", body.Count, len(body.Supervisors))
	}
	if body.Supervisors[0].Name != "Jane Doe" {
		t.Errorf("matched %q, want Jane Doe", body.Supervisors[0].Name)
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/supervisors/search", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Message != "Search query is required" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestHandleToggleStatus_PropagatesActiveFlag(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sup := fixtures.CreateSupervisor(ctx, "Jane Doe", "jane@x.com", "555-0101")
	fixtures.CreateCompanionUser(ctx, sup)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/supervisors/"+sup.ID.Hex()+"/toggle-status", nil)
	req = testutil.WithChiURLParam(req, "id", sup.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleToggleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var companion models.User
	err := fixtures.DB().Collection("users").FindOne(ctx,
		bson.M{"email": "jane@x.com", "role": models.RoleSupervisor}).Decode(&companion)
	if err != nil {
		t.Fatalf("companion lookup: %v", err)
	}
	if companion.IsActive {
		t.Error("companion still active after toggle to inactive")
	}
}

package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/opshub/internal/app/features/users"
	"github.com/dalemusser/opshub/internal/app/system/indexes"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/dalemusser/opshub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return users.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]any{
		"email":    "Alice@X.com",
		"password": "secret123",
		"role":     "employee",
		"name":     "Alice Smith",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool       `json:"success"`
		User    users.View `json:"user"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.User.Email != "alice@x.com" {
		t.Errorf("email = %q, want normalized", body.User.Email)
	}
	if body.User.Username != "alice" {
		t.Errorf("username = %q, want derived local-part", body.User.Username)
	}
	if body.User.Site != "Mumbai Office" {
		t.Errorf("site = %q, want default", body.User.Site)
	}
}

func TestHandleCreate_InvalidRole(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]any{
		"email":    "alice@x.com",
		"password": "secret123",
		"role":     "wizard",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleList_Grouped(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)
	fixtures.CreateUser(ctx, "Bob", "bob@x.com", models.RoleEmployee)
	fixtures.CreateUser(ctx, "Carol", "carol@x.com", models.RoleManager)

	req := httptest.NewRequest(http.MethodGet, "/users?grouped=true", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Users map[string][]users.View `json:"users"`
	}
	testutil.DecodeBody(t, rec, &body)
	if len(body.Users[models.RoleEmployee]) != 2 {
		t.Errorf("employees = %d, want 2", len(body.Users[models.RoleEmployee]))
	}
	if len(body.Users[models.RoleManager]) != 1 {
		t.Errorf("managers = %d, want 1", len(body.Users[models.RoleManager]))
	}
}

func TestHandleUpdateRole(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/users/"+u.ID.Hex()+"/role",
		map[string]any{"role": models.RoleManager})
	req = testutil.WithChiURLParam(req, "id", u.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdateRole(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		User users.View `json:"user"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.User.Role != models.RoleManager {
		t.Errorf("role = %q, want %q", body.User.Role, models.RoleManager)
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users/ffffffffffffffffffffffff", nil)
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleChangePassword_TooShort(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Alice", "alice@x.com", models.RoleEmployee)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/users/"+u.ID.Hex()+"/change-password",
		map[string]any{"password": "abc"})
	req = testutil.WithChiURLParam(req, "id", u.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleChangePassword(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

package rosters_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/opshub/internal/app/features/rosters"
	"github.com/dalemusser/opshub/internal/app/system/indexes"
	"github.com/dalemusser/opshub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	h := rosters.NewHandler(db, zap.NewNop())
	return rosters.Routes(h), db
}

func TestHandleCreate_DuplicateShift(t *testing.T) {
	router, _ := newRouter(t)

	body := map[string]any{
		"siteId": "64a000000000000000000001",
		"date":   "2026-03-10T00:00:00Z",
		"shift":  "morning",
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Errorf("unexpected duplicate message: %s", rec.Body.String())
	}
}

func TestHandleCalendar_FiltersMonth(t *testing.T) {
	router, db := newRouter(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Delhi Depot", "Delhi")
	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)
	fixtures.CreateRoster(ctx, site, march, "morning")
	fixtures.CreateRoster(ctx, site, april, "morning")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/calendar?year=2026&month=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Year    int `json:"year"`
		Month   int `json:"month"`
		Count   int `json:"count"`
		Rosters []struct {
			Shift string `json:"shift"`
		} `json:"rosters"`
	}
	testutil.DecodeBody(t, rec, &resp)
	if resp.Count != 1 || len(resp.Rosters) != 1 {
		t.Fatalf("count = %d, rosters = %d, want 1 each", resp.Count, len(resp.Rosters))
	}
	if resp.Year != 2026 || resp.Month != 3 {
		t.Errorf("period = %d-%d, want 2026-3", resp.Year, resp.Month)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/calendar?year=2026&month=13", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("month=13 status = %d, want 400", rec.Code)
	}
}

func TestHandleExportCSV(t *testing.T) {
	router, db := newRouter(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	site := fixtures.CreateSite(ctx, "Delhi Depot", "Delhi")
	user := fixtures.CreateUser(ctx, "Ravi Kumar", "ravi@opshub.test", "staff")
	day := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	fixtures.CreateRoster(ctx, site, day, "night", user)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/calendar/export?year=2026&month=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "rosters_2026-03.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body := rec.Body.String()
	for _, want := range []string{"2026-03-12", "night", "Delhi Depot", "Ravi Kumar"} {
		if !strings.Contains(body, want) {
			t.Errorf("CSV missing %q:\n%s", want, body)
		}
	}
}

package properties

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/domain/models"
	"github.com/imanprime/estatecms/internal/testutil"
)

type propertyTestEnv struct {
	store    *propertystore.Store
	fixtures *testutil.Fixtures
	fake     *testutil.FakeAssetStore
	public   chi.Router
	admin    chi.Router
}

func newPropertyTestEnv(t *testing.T) *propertyTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fake := testutil.NewFakeAssetStore()
	h := NewHandler(db, fake, zap.NewNop())

	public := chi.NewRouter()
	h.MountPublicRoutes(public)
	admin := chi.NewRouter()
	h.MountAdminRoutes(admin)

	return &propertyTestEnv{
		store:    propertystore.New(db),
		fixtures: testutil.NewFixtures(t, db),
		fake:     fake,
		public:   public,
		admin:    admin,
	}
}

func (e *propertyTestEnv) do(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (e *propertyTestEnv) adminDo(req *http.Request) *httptest.ResponseRecorder {
	return e.do(e.admin, auth.WithUser(req, testutil.AdminUser()))
}

func coverImage() testutil.MultipartFile {
	return testutil.MultipartFile{
		Field:       "image",
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Content:     []byte("coverbytes"),
	}
}

func listingFields(agentID string) map[string]string {
	return map[string]string{
		"title":       "Sunny Villa",
		"description": "A bright villa near the coast",
		"location":    "Lagos",
		"price":       "750000",
		"bedrooms":    "4",
		"bathrooms":   "3",
		"area":        "320 sqm",
		"category":    models.CategoryLuxury,
		"agentId":     agentID,
	}
}

func TestCreatePropertyRequiresCoverImage(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", listingFields(agent.ID.Hex()))
	rec := env.adminDo(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	errs, _ := testutil.DecodeEnvelope(t, rec)["errors"].([]any)
	if len(errs) == 0 {
		t.Error("expected an image violation in errors")
	}
}

func TestCreatePropertyRejectsUnknownAgent(t *testing.T) {
	env := newPropertyTestEnv(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/",
		listingFields("64b000000000000000000000"), coverImage())
	rec := env.adminDo(req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateProperty(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")

	fields := listingFields(agent.ID.Hex())
	fields["amenities"] = `["pool","garage"]`
	fields["floorPlanNames"] = `["Ground Floor"]`
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", fields,
		coverImage(),
		testutil.MultipartFile{Field: "images", Filename: "g1.jpg", ContentType: "image/jpeg", Content: []byte("g1")},
		testutil.MultipartFile{Field: "images", Filename: "g2.jpg", ContentType: "image/jpeg", Content: []byte("g2")},
		testutil.MultipartFile{Field: "floorPlans", Filename: "plan.png", ContentType: "image/png", Content: []byte("plan")},
	)
	rec := env.adminDo(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	data := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)
	if data["status"] != models.PropertyActive {
		t.Errorf("status = %v, want default active", data["status"])
	}
	if data["title"] != "Sunny Villa" {
		t.Errorf("title = %v", data["title"])
	}
	if len(env.fake.Uploaded) != 4 {
		t.Fatalf("uploads = %d, want cover + 2 gallery + 1 floor plan", len(env.fake.Uploaded))
	}
	if data["image"] != env.fake.Uploaded[0].URL {
		t.Errorf("cover = %v", data["image"])
	}
	plans := data["floorPlans"].([]any)
	if len(plans) != 1 || plans[0].(map[string]any)["name"] != "Ground Floor" {
		t.Errorf("floorPlans = %v", plans)
	}
}

func TestPublicListShowsOnlyActive(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	env.fixtures.CreateProperty(ctx, "Active One", agent.ID)
	env.fixtures.CreatePropertyWithStatus(ctx, "Hidden Draft", agent.ID, models.PropertyDraft)

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/?status="+models.PropertyDraft, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := testutil.DecodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("public list = %d items, want only the active listing", len(data))
	}
	if data[0].(map[string]any)["title"] != "Active One" {
		t.Errorf("title = %v", data[0].(map[string]any)["title"])
	}
}

func TestAdminListIncludesDrafts(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	env.fixtures.CreateProperty(ctx, "Active One", agent.ID)
	env.fixtures.CreatePropertyWithStatus(ctx, "Draft One", agent.ID, models.PropertyDraft)
	env.fixtures.CreatePropertyWithStatus(ctx, "Gone", agent.ID, models.PropertyDeleted)

	rec := env.adminDo(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := testutil.DecodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("admin list = %d items, want active + draft but not deleted", len(data))
	}
}

func TestGetPublicHidesNonActiveAndCountsViews(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	active := env.fixtures.CreateProperty(ctx, "Active One", agent.ID)
	draft := env.fixtures.CreatePropertyWithStatus(ctx, "Draft One", agent.ID, models.PropertyDraft)

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/"+draft.ID.Hex(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft visible publicly: status = %d", rec.Code)
	}

	rec = env.do(env.public, httptest.NewRequest(http.MethodGet, "/"+active.ID.Hex(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := env.store.GetByID(ctx, active.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
}

func TestUpdatePropertyReplacesCover(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	p := env.fixtures.CreateProperty(ctx, "Active One", agent.ID)

	req := testutil.NewMultipartRequest(t, http.MethodPut, "/"+p.ID.Hex(),
		map[string]string{"price": "800000"}, coverImage())
	rec := env.adminDo(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := env.store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 800000 {
		t.Errorf("price = %v", got.Price)
	}
	if got.Image != env.fake.Uploaded[0].URL {
		t.Errorf("cover = %q, want replacement", got.Image)
	}
	if got.Title != "Active One" {
		t.Errorf("untouched title changed: %q", got.Title)
	}
	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 {
		t.Errorf("deleted = %v, want the old cover", deleted)
	}
}

func TestDeletePropertyReleasesAllAssets(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	p := env.fixtures.CreateProperty(ctx, "Active One", agent.ID)

	rec := env.adminDo(httptest.NewRequest(http.MethodDelete, "/"+p.ID.Hex(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if _, err := env.store.GetByID(ctx, p.ID); err != propertystore.ErrNotFound {
		t.Errorf("listing still present after delete: %v", err)
	}
	if len(env.fake.DeletedIDs()) != 1 {
		t.Errorf("deleted = %v, want the cover image", env.fake.DeletedIDs())
	}
}

func TestDeletePropertyCleanupFailureWarns(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	p := env.fixtures.CreateProperty(ctx, "Active One", agent.ID)

	env.fake.FailDeletes = true
	rec := env.adminDo(httptest.NewRequest(http.MethodDelete, "/"+p.ID.Hex(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, delete must succeed despite cleanup failure", rec.Code)
	}
	warnings, _ := testutil.DecodeEnvelope(t, rec)["warnings"].([]any)
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one cleanup warning", warnings)
	}
}

func TestLandingReturnsFeaturedActive(t *testing.T) {
	env := newPropertyTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	agent := env.fixtures.CreateAgent(ctx, "Lead Agent", "lead@test.com")
	featured := env.fixtures.CreateProperty(ctx, "Featured One", agent.ID)
	env.fixtures.CreateProperty(ctx, "Plain One", agent.ID)

	if _, err := env.store.UpdateFields(ctx, featured.ID, bson.M{"featured": true}); err != nil {
		t.Fatalf("mark featured: %v", err)
	}

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/landing", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := testutil.DecodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("landing = %d items, want only the featured listing", len(data))
	}
	if data[0].(map[string]any)["title"] != "Featured One" {
		t.Errorf("title = %v", data[0].(map[string]any)["title"])
	}
}

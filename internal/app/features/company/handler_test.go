package company

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	companystore "github.com/imanprime/estatecms/internal/app/store/company"
	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/testutil"
)

type companyTestEnv struct {
	handler *Handler
	store   *companystore.Store
	fake    *testutil.FakeAssetStore
	public  chi.Router
	admin   chi.Router
}

func newCompanyTestEnv(t *testing.T) *companyTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fake := testutil.NewFakeAssetStore()
	h := NewHandler(db, fake, zap.NewNop())

	public := chi.NewRouter()
	h.MountPublicRoutes(public)
	admin := chi.NewRouter()
	h.MountAdminRoutes(admin)

	return &companyTestEnv{
		handler: h,
		store:   companystore.New(db),
		fake:    fake,
		public:  public,
		admin:   admin,
	}
}

func (e *companyTestEnv) do(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (e *companyTestEnv) adminDo(req *http.Request) *httptest.ResponseRecorder {
	return e.do(e.admin, auth.WithUser(req, testutil.AdminUser()))
}

func jpeg(field string) testutil.MultipartFile {
	return testutil.MultipartFile{
		Field:       field,
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Content:     []byte("jpegbytes"),
	}
}

func TestGetCompanyWithoutActiveProfile(t *testing.T) {
	env := newCompanyTestEnv(t)

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestUpdateBasicInfoCreatesProfileLazily(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info",
		map[string]any{"name": "Acme Estates"})
	rec := env.adminDo(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	env2 := env.do(env.public, httptest.NewRequest(http.MethodGet, "/", nil))
	if env2.Code != http.StatusOK {
		t.Fatalf("GET after first write = %d, want 200", env2.Code)
	}
	data := testutil.DecodeEnvelope(t, env2)["data"].(map[string]any)
	if data["name"] != "Acme Estates" {
		t.Errorf("name = %v, want Acme Estates", data["name"])
	}
}

func TestUpdateBasicInfoRejectsUnknownFields(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info",
		map[string]any{"nmae": "typo"})
	rec := env.adminDo(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestUpdateBasicInfoEmptyPatchIsNoOp(t *testing.T) {
	env := newCompanyTestEnv(t)

	seed := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{
		"name":  "Acme Estates",
		"about": map[string]any{"vision": "build well"},
	})
	if rec := env.adminDo(seed); rec.Code != http.StatusOK {
		t.Fatalf("seed = %d (body %s)", rec.Code, rec.Body.String())
	}

	req := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{})
	rec := env.adminDo(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	data := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)
	if data["name"] != "Acme Estates" {
		t.Errorf("name = %v, want untouched value", data["name"])
	}
	about := data["about"].(map[string]any)
	if about["vision"] != "build well" {
		t.Errorf("vision = %v, want untouched value", about["vision"])
	}
}

func TestUpdateBasicInfoListsEveryViolation(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{
		"name":        "",
		"socialMedia": map[string]any{"facebook": "not-a-url"},
	})
	rec := env.adminDo(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}

	errs, _ := testutil.DecodeEnvelope(t, rec)["errors"].([]any)
	if len(errs) < 2 {
		t.Fatalf("errors = %v, want both the name and facebook violations", errs)
	}
}

func TestUpdateBasicInfoPreservesUntouchedSections(t *testing.T) {
	env := newCompanyTestEnv(t)

	first := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{
		"about": map[string]any{"vision": "build well", "mission": "serve clients"},
	})
	if rec := env.adminDo(first); rec.Code != http.StatusOK {
		t.Fatalf("seed write = %d (body %s)", rec.Code, rec.Body.String())
	}

	second := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{
		"about": map[string]any{"vision": "build better"},
	})
	rec := env.adminDo(second)
	if rec.Code != http.StatusOK {
		t.Fatalf("partial write = %d (body %s)", rec.Code, rec.Body.String())
	}

	data := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)
	about := data["about"].(map[string]any)
	if about["vision"] != "build better" {
		t.Errorf("vision = %v", about["vision"])
	}
	if about["mission"] != "serve clients" {
		t.Errorf("mission = %v, want untouched value", about["mission"])
	}
}

func TestUpdateLogoReplacesAndReleasesOldAsset(t *testing.T) {
	env := newCompanyTestEnv(t)

	first := testutil.NewMultipartRequest(t, http.MethodPut, "/basic-info", nil, jpeg("logo"))
	if rec := env.adminDo(first); rec.Code != http.StatusOK {
		t.Fatalf("first upload = %d (body %s)", rec.Code, rec.Body.String())
	}
	if len(env.fake.Uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(env.fake.Uploaded))
	}
	oldRef := env.fake.Uploaded[0]

	second := testutil.NewMultipartRequest(t, http.MethodPut, "/basic-info", nil, jpeg("logo"))
	rec := env.adminDo(second)
	if rec.Code != http.StatusOK {
		t.Fatalf("second upload = %d (body %s)", rec.Code, rec.Body.String())
	}

	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 || deleted[0] != oldRef.PublicID {
		t.Errorf("deleted = %v, want exactly the first logo %s", deleted, oldRef.PublicID)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, err := env.store.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if c.Logo != env.fake.Uploaded[1].URL {
		t.Errorf("stored logo = %q, want %q", c.Logo, env.fake.Uploaded[1].URL)
	}
}

func TestUpdateLogoCleanupFailureSurfacesAsWarning(t *testing.T) {
	env := newCompanyTestEnv(t)

	first := testutil.NewMultipartRequest(t, http.MethodPut, "/basic-info", nil, jpeg("logo"))
	if rec := env.adminDo(first); rec.Code != http.StatusOK {
		t.Fatalf("first upload = %d", rec.Code)
	}

	env.fake.FailDeletes = true
	second := testutil.NewMultipartRequest(t, http.MethodPut, "/basic-info", nil, jpeg("logo"))
	rec := env.adminDo(second)
	if rec.Code != http.StatusOK {
		t.Fatalf("replacement with failed cleanup = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	warnings, _ := testutil.DecodeEnvelope(t, rec)["warnings"].([]any)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one cleanup warning", warnings)
	}
	if !strings.Contains(warnings[0].(string), "failed to remove previous asset") {
		t.Errorf("warning = %v", warnings[0])
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, err := env.store.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if c.Logo != env.fake.Uploaded[1].URL {
		t.Errorf("new logo must be persisted despite cleanup failure; got %q", c.Logo)
	}
}

func TestAddTeamMember(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":        "Jamie Doe",
		"position":    "Senior Broker",
		"phone":       "+15551234567",
		"socialLinks": `{"linkedin":"https://linkedin.com/in/jamiedoe"}`,
	}, jpeg("memberImage"))
	rec := env.adminDo(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, err := env.store.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if len(c.Team) != 1 {
		t.Fatalf("team = %d members, want 1", len(c.Team))
	}
	m := c.Team[0]
	if m.Name != "Jamie Doe" || m.Position != "Senior Broker" {
		t.Errorf("member = %+v", m)
	}
	if m.Image != env.fake.Uploaded[0].URL {
		t.Errorf("image = %q, want uploaded URL", m.Image)
	}
	if m.SocialLinks.LinkedIn != "https://linkedin.com/in/jamiedoe" {
		t.Errorf("linkedin = %q", m.SocialLinks.LinkedIn)
	}
	if m.ID.IsZero() {
		t.Error("member id not assigned")
	}
}

func TestAddTeamMemberValidation(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"position": "Broker",
	})
	rec := env.adminDo(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	errs, _ := testutil.DecodeEnvelope(t, rec)["errors"].([]any)
	if len(errs) == 0 {
		t.Error("expected a name violation in errors")
	}
}

func TestAddTeamMemberRejectsBadFileType(t *testing.T) {
	env := newCompanyTestEnv(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":     "Jamie Doe",
		"position": "Broker",
	}, testutil.MultipartFile{
		Field:       "memberImage",
		Filename:    "photo.svg",
		ContentType: "image/svg+xml",
		Content:     []byte("<svg/>"),
	})
	rec := env.adminDo(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	if len(env.fake.Uploaded) != 0 {
		t.Error("rejected file must not reach the asset store")
	}
}

func TestUpdateTeamMemberPartial(t *testing.T) {
	env := newCompanyTestEnv(t)

	add := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":     "Jamie Doe",
		"position": "Broker",
		"phone":    "+15551234567",
	})
	if rec := env.adminDo(add); rec.Code != http.StatusCreated {
		t.Fatalf("add = %d", rec.Code)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, _ := env.store.GetActive(ctx)
	memberID := c.Team[0].ID

	update := testutil.NewMultipartRequest(t, http.MethodPut, "/team/"+memberID.Hex(),
		map[string]string{"position": "Principal Broker"})
	rec := env.adminDo(update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d (body %s)", rec.Code, rec.Body.String())
	}

	c, _ = env.store.GetActive(ctx)
	m := c.Team[0]
	if m.Position != "Principal Broker" {
		t.Errorf("position = %q", m.Position)
	}
	if m.Name != "Jamie Doe" || m.Phone != "+15551234567" {
		t.Errorf("untouched fields changed: %+v", m)
	}
}

func TestUpdateTeamMemberEmptyPatchIsNoOp(t *testing.T) {
	env := newCompanyTestEnv(t)

	add := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":     "Jamie Doe",
		"position": "Broker",
		"phone":    "+15551234567",
	}, jpeg("memberImage"))
	if rec := env.adminDo(add); rec.Code != http.StatusCreated {
		t.Fatalf("add = %d", rec.Code)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, _ := env.store.GetActive(ctx)
	before := c.Team[0]

	update := testutil.NewMultipartRequest(t, http.MethodPut, "/team/"+before.ID.Hex(), nil)
	rec := env.adminDo(update)
	if rec.Code != http.StatusOK {
		t.Fatalf("empty update = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	c, _ = env.store.GetActive(ctx)
	after := c.Team[0]
	if after.Name != before.Name || after.Position != before.Position ||
		after.Phone != before.Phone || after.Image != before.Image {
		t.Errorf("member changed by empty update: before %+v after %+v", before, after)
	}
}

func TestUpdateTeamMemberReplacesImage(t *testing.T) {
	env := newCompanyTestEnv(t)

	add := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":     "Jamie Doe",
		"position": "Broker",
	}, jpeg("memberImage"))
	if rec := env.adminDo(add); rec.Code != http.StatusCreated {
		t.Fatalf("add = %d", rec.Code)
	}
	oldRef := env.fake.Uploaded[0]

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, _ := env.store.GetActive(ctx)
	memberID := c.Team[0].ID

	update := testutil.NewMultipartRequest(t, http.MethodPut, "/team/"+memberID.Hex(),
		nil, jpeg("memberImage"))
	rec := env.adminDo(update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d (body %s)", rec.Code, rec.Body.String())
	}

	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 || deleted[0] != oldRef.PublicID {
		t.Errorf("deleted = %v, want the replaced image %s", deleted, oldRef.PublicID)
	}

	c, _ = env.store.GetActive(ctx)
	if c.Team[0].Image != env.fake.Uploaded[1].URL {
		t.Errorf("image = %q, want new upload", c.Team[0].Image)
	}
}

func TestUpdateTeamMemberUnknownID(t *testing.T) {
	env := newCompanyTestEnv(t)

	seed := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{"name": "Acme"})
	if rec := env.adminDo(seed); rec.Code != http.StatusOK {
		t.Fatalf("seed = %d", rec.Code)
	}

	req := testutil.NewMultipartRequest(t, http.MethodPut, "/team/64b000000000000000000000",
		map[string]string{"position": "Broker"})
	rec := env.adminDo(req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestDeleteTeamMemberReleasesImage(t *testing.T) {
	env := newCompanyTestEnv(t)

	add := testutil.NewMultipartRequest(t, http.MethodPost, "/team", map[string]string{
		"name":     "Jamie Doe",
		"position": "Broker",
	}, jpeg("memberImage"))
	if rec := env.adminDo(add); rec.Code != http.StatusCreated {
		t.Fatalf("add = %d", rec.Code)
	}
	imageRef := env.fake.Uploaded[0]

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, _ := env.store.GetActive(ctx)
	memberID := c.Team[0].ID

	del := httptest.NewRequest(http.MethodDelete, "/team/"+memberID.Hex(), nil)
	rec := env.adminDo(del)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d (body %s)", rec.Code, rec.Body.String())
	}

	c, _ = env.store.GetActive(ctx)
	if len(c.Team) != 0 {
		t.Errorf("team = %d members after delete", len(c.Team))
	}
	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 || deleted[0] != imageRef.PublicID {
		t.Errorf("deleted = %v, want the member image %s", deleted, imageRef.PublicID)
	}

	again := httptest.NewRequest(http.MethodDelete, "/team/"+memberID.Hex(), nil)
	if rec := env.adminDo(again); rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", rec.Code)
	}
}

func TestPartnerLifecycle(t *testing.T) {
	env := newCompanyTestEnv(t)

	add := testutil.NewMultipartRequest(t, http.MethodPost, "/partners", map[string]string{
		"name":    "BuildRight Ltd",
		"website": "https://buildright.example.com",
	}, jpeg("partnerLogo"))
	rec := env.adminDo(add)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add = %d (body %s)", rec.Code, rec.Body.String())
	}
	logoRef := env.fake.Uploaded[0]

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, _ := env.store.GetActive(ctx)
	if len(c.Partners) != 1 {
		t.Fatalf("partners = %d, want 1", len(c.Partners))
	}
	partnerID := c.Partners[0].ID
	if c.Partners[0].Logo != logoRef.URL {
		t.Errorf("logo = %q", c.Partners[0].Logo)
	}

	update := testutil.NewMultipartRequest(t, http.MethodPut, "/partners/"+partnerID.Hex(),
		map[string]string{"website": "https://buildright.example.org"})
	if rec := env.adminDo(update); rec.Code != http.StatusOK {
		t.Fatalf("update = %d (body %s)", rec.Code, rec.Body.String())
	}
	c, _ = env.store.GetActive(ctx)
	if c.Partners[0].Website != "https://buildright.example.org" {
		t.Errorf("website = %q", c.Partners[0].Website)
	}
	if c.Partners[0].Name != "BuildRight Ltd" {
		t.Errorf("name changed: %q", c.Partners[0].Name)
	}

	noop := testutil.NewMultipartRequest(t, http.MethodPut, "/partners/"+partnerID.Hex(), nil)
	if rec := env.adminDo(noop); rec.Code != http.StatusOK {
		t.Fatalf("empty update = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	c, _ = env.store.GetActive(ctx)
	if c.Partners[0].Name != "BuildRight Ltd" || c.Partners[0].Logo != logoRef.URL {
		t.Errorf("partner changed by empty update: %+v", c.Partners[0])
	}

	del := httptest.NewRequest(http.MethodDelete, "/partners/"+partnerID.Hex(), nil)
	if rec := env.adminDo(del); rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	c, _ = env.store.GetActive(ctx)
	if len(c.Partners) != 0 {
		t.Errorf("partners = %d after delete", len(c.Partners))
	}
	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 || deleted[0] != logoRef.PublicID {
		t.Errorf("deleted = %v, want the partner logo", deleted)
	}
}

func TestGetContactsShape(t *testing.T) {
	env := newCompanyTestEnv(t)

	seed := testutil.NewJSONRequest(t, http.MethodPut, "/basic-info", map[string]any{
		"contacts": map[string]any{
			"phoneNumbers": []map[string]any{{"type": "main", "number": "+15550001111"}},
		},
		"socialMedia": map[string]any{"facebook": "https://facebook.com/acme"},
	})
	if rec := env.adminDo(seed); rec.Code != http.StatusOK {
		t.Fatalf("seed = %d (body %s)", rec.Code, rec.Body.String())
	}

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)
	if _, ok := data["contacts"]; !ok {
		t.Error("response missing contacts")
	}
	sm, ok := data["socialMedia"].(map[string]any)
	if !ok || sm["facebook"] != "https://facebook.com/acme" {
		t.Errorf("socialMedia = %v", data["socialMedia"])
	}
}

package blogs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	blogstore "github.com/imanprime/estatecms/internal/app/store/blogs"
	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/domain/models"
	"github.com/imanprime/estatecms/internal/testutil"
)

type blogTestEnv struct {
	store    *blogstore.Store
	fixtures *testutil.Fixtures
	fake     *testutil.FakeAssetStore
	public   chi.Router
	admin    chi.Router
}

func newBlogTestEnv(t *testing.T) *blogTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fake := testutil.NewFakeAssetStore()
	h := NewHandler(db, fake, zap.NewNop())

	public := chi.NewRouter()
	h.MountPublicRoutes(public)
	admin := chi.NewRouter()
	h.MountAdminRoutes(admin)

	return &blogTestEnv{
		store:    blogstore.New(db),
		fixtures: testutil.NewFixtures(t, db),
		fake:     fake,
		public:   public,
		admin:    admin,
	}
}

func (e *blogTestEnv) do(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (e *blogTestEnv) adminDo(req *http.Request) *httptest.ResponseRecorder {
	return e.do(e.admin, auth.WithUser(req, testutil.AdminUser()))
}

func postFields() map[string]string {
	return map[string]string{
		"title":    "Market Outlook 2026",
		"content":  "<p>The market keeps moving.</p>",
		"excerpt":  "Where prices are heading",
		"author":   "Editorial Team",
		"category": "market-news",
		"status":   models.BlogPublished,
	}
}

func TestCreateBlogDerivesSlugAndReadTime(t *testing.T) {
	env := newBlogTestEnv(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", postFields())
	rec := env.adminDo(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	data := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)
	slug, _ := data["slug"].(string)
	if !strings.HasPrefix(slug, "market-outlook-2026-") {
		t.Errorf("slug = %q", slug)
	}
	if rt := data["readTime"].(float64); rt < 1 {
		t.Errorf("readTime = %v", rt)
	}
	if data["status"] != models.BlogPublished {
		t.Errorf("status = %v", data["status"])
	}
}

func TestCreateBlogSanitizesContent(t *testing.T) {
	env := newBlogTestEnv(t)

	fields := postFields()
	fields["content"] = `<p>Safe copy</p><script>alert("x")</script>`
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", fields)
	rec := env.adminDo(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	content := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)["content"].(string)
	if strings.Contains(content, "<script") {
		t.Errorf("script tag survived sanitizing: %q", content)
	}
	if !strings.Contains(content, "Safe copy") {
		t.Errorf("legitimate content stripped: %q", content)
	}
}

func TestPublicListHidesDraftsAndScheduled(t *testing.T) {
	env := newBlogTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	env.fixtures.CreateBlog(ctx, "Visible Post")

	draft, err := env.store.Create(ctx, models.Blog{
		Title:    "Hidden Draft",
		Content:  "draft body",
		Excerpt:  "draft",
		Author:   "Editorial Team",
		Category: "market-news",
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := testutil.DecodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("public list = %d posts, want only the published one", len(data))
	}

	rec = env.do(env.public, httptest.NewRequest(http.MethodGet, "/"+draft.ID.Hex(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft visible by id: status = %d", rec.Code)
	}
}

func TestGetPublicBySlugCountsView(t *testing.T) {
	env := newBlogTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	b := env.fixtures.CreateBlog(ctx, "Slug Lookup Post")

	rec := env.do(env.public, httptest.NewRequest(http.MethodGet, "/"+b.Slug, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := env.store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
}

func TestLikeReturnsNewTotal(t *testing.T) {
	env := newBlogTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	b := env.fixtures.CreateBlog(ctx, "Likeable Post")

	for want := 1; want <= 2; want++ {
		rec := env.do(env.public, httptest.NewRequest(http.MethodPost, "/"+b.ID.Hex()+"/like", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}
		likes := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)["likes"].(float64)
		if int(likes) != want {
			t.Errorf("likes = %v, want %d", likes, want)
		}
	}
}

func TestUpdateBlogTitleRecomputesSlug(t *testing.T) {
	env := newBlogTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	b := env.fixtures.CreateBlog(ctx, "Original Title")

	req := testutil.NewMultipartRequest(t, http.MethodPut, "/"+b.ID.Hex(),
		map[string]string{"title": "Brand New Title"})
	rec := env.adminDo(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := env.store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.HasPrefix(got.Slug, "brand-new-title-") {
		t.Errorf("slug = %q, want re-derived from new title", got.Slug)
	}
	if got.Slug == b.Slug {
		t.Error("slug unchanged after title change")
	}
}

func TestUpdateBlogContentRecomputesReadTime(t *testing.T) {
	env := newBlogTestEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	b := env.fixtures.CreateBlog(ctx, "Short Post")

	long := strings.Repeat("word ", 450)
	req := testutil.NewMultipartRequest(t, http.MethodPut, "/"+b.ID.Hex(),
		map[string]string{"content": long})
	rec := env.adminDo(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := env.store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReadTime != 3 {
		t.Errorf("readTime = %d, want ceil(450/200) = 3", got.ReadTime)
	}
}

func TestDeleteBlogReleasesImage(t *testing.T) {
	env := newBlogTestEnv(t)

	fields := postFields()
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", fields,
		testutil.MultipartFile{Field: "image", Filename: "cover.jpg", ContentType: "image/jpeg", Content: []byte("img")})
	rec := env.adminDo(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d", rec.Code)
	}
	id := testutil.DecodeEnvelope(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.adminDo(httptest.NewRequest(http.MethodDelete, "/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d (body %s)", rec.Code, rec.Body.String())
	}
	deleted := env.fake.DeletedIDs()
	if len(deleted) != 1 || deleted[0] != env.fake.Uploaded[0].PublicID {
		t.Errorf("deleted = %v, want the cover image", deleted)
	}
}

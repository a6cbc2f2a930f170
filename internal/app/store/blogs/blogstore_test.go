package blogstore_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/system/paging"
	blogstore "github.com/imanprime/estatecms/internal/app/store/blogs"
	"github.com/imanprime/estatecms/internal/domain/models"
	"github.com/imanprime/estatecms/internal/testutil"
)

func testBlog(title string) models.Blog {
	return models.Blog{
		Title:     title,
		Content:   strings.Repeat("words in the content body ", 50),
		Excerpt:   "A short excerpt",
		Author:    "Casey Writer",
		Category:  "market-news",
		Status:    models.BlogPublished,
		CreatedBy: primitive.NewObjectID(),
	}
}

func TestStore_Create_DerivesSlugAndReadTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testBlog("Market Trends 2026!"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(created.Slug, "market-trends-2026-") {
		t.Errorf("unexpected slug %q", created.Slug)
	}
	if created.ReadTime < 1 {
		t.Errorf("ReadTime: got %d", created.ReadTime)
	}
	if created.PublishDate.IsZero() {
		t.Error("expected PublishDate default")
	}

	// Same title twice still yields distinct slugs (timestamp suffix).
	second, err := store.Create(ctx, testBlog("Market Trends 2026!"))
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if second.Slug == created.Slug {
		t.Errorf("expected distinct slugs, both were %q", second.Slug)
	}
}

func TestStore_GetPublishedBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	published, err := store.Create(ctx, testBlog("Public Post"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	draft := testBlog("Hidden Draft")
	draft.Status = models.BlogDraft
	hidden, err := store.Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create draft failed: %v", err)
	}

	found, err := store.GetPublishedBySlug(ctx, published.Slug)
	if err != nil {
		t.Fatalf("GetPublishedBySlug failed: %v", err)
	}
	if found.ID != published.ID {
		t.Errorf("wrong post: %v", found.ID)
	}

	if _, err := store.GetPublishedBySlug(ctx, hidden.Slug); !errors.Is(err, blogstore.ErrNotFound) {
		t.Errorf("draft must not be publicly visible, got %v", err)
	}

	// Future-dated posts stay hidden too.
	future := testBlog("Scheduled Post")
	future.PublishDate = time.Now().UTC().Add(24 * time.Hour)
	scheduled, err := store.Create(ctx, future)
	if err != nil {
		t.Fatalf("Create scheduled failed: %v", err)
	}
	if _, err := store.GetPublishedBySlug(ctx, scheduled.Slug); !errors.Is(err, blogstore.ErrNotFound) {
		t.Errorf("scheduled post must not be publicly visible, got %v", err)
	}
}

func TestStore_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testBlog("Original"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.UpdateFields(ctx, created.ID, bson.M{"excerpt": "Fresh excerpt"})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}
	if updated.Excerpt != "Fresh excerpt" {
		t.Errorf("Excerpt: got %q", updated.Excerpt)
	}
	if updated.Slug != created.Slug {
		t.Errorf("slug changed without a title change: %q", updated.Slug)
	}
}

func TestStore_ViewsAndLikes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testBlog("Counted"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.IncrementViews(ctx, created.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	likes, err := store.Like(ctx, created.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if likes != 1 {
		t.Errorf("likes: got %d, want 1", likes)
	}
	likes, err = store.Like(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Like failed: %v", err)
	}
	if likes != 2 {
		t.Errorf("likes: got %d, want 2", likes)
	}

	if _, err := store.Like(ctx, primitive.NewObjectID()); !errors.Is(err, blogstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testBlog("Doomed"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, blogstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tagged := testBlog("Tagged Post")
	tagged.Tags = []string{"design", "tips"}
	if _, err := store.Create(ctx, tagged); err != nil {
		t.Fatalf("Create tagged: %v", err)
	}

	draft := testBlog("Draft Post")
	draft.Status = models.BlogDraft
	if _, err := store.Create(ctx, draft); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	// Admin view sees everything.
	posts, total, err := store.List(ctx, blogstore.Filter{}, paging.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Errorf("expected both posts, got total=%d len=%d", total, len(posts))
	}

	// Public view hides drafts.
	posts, total, err = store.List(ctx, blogstore.Filter{PublicOnly: true}, paging.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || posts[0].Title != "Tagged Post" {
		t.Errorf("expected only the published post, got total=%d %+v", total, posts)
	}

	// Tag filter matches array membership.
	posts, _, err = store.List(ctx, blogstore.Filter{Tag: "design"}, paging.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Tagged Post" {
		t.Errorf("tag filter: got %+v", posts)
	}
}

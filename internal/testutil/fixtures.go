package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/imanprime/estatecms/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCompany inserts an active company document and returns it.
func (f *Fixtures) CreateCompany(ctx context.Context, name string) models.Company {
	f.t.Helper()

	c := models.NewCompany(primitive.NewObjectID())
	c.Name = name

	if _, err := f.db.Collection("companies").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test company: %v", err)
	}
	return c
}

// CreateAgent inserts an active agent and returns it.
func (f *Fixtures) CreateAgent(ctx context.Context, name, email string) models.Agent {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Agent{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Email:          email,
		Phone:          "+15550001111",
		Image:          "https://host/v1/agent_images/" + primitive.NewObjectID().Hex() + ".jpg",
		Specialization: models.SpecResidential,
		IsActive:       true,
		CreatedBy:      primitive.NewObjectID(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("agents").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test agent: %v", err)
	}
	return a
}

// CreateProperty inserts an active listing for the given agent and returns it.
func (f *Fixtures) CreateProperty(ctx context.Context, title string, agentID primitive.ObjectID) models.Property {
	f.t.Helper()
	return f.CreatePropertyWithStatus(ctx, title, agentID, models.PropertyActive)
}

// CreatePropertyWithStatus inserts a listing with an explicit status.
func (f *Fixtures) CreatePropertyWithStatus(ctx context.Context, title string, agentID primitive.ObjectID, status string) models.Property {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Property{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test property description",
		Location:    "Test City",
		Price:       250000,
		Bedrooms:    3,
		Bathrooms:   2,
		Area:        "180 sqm",
		Image:       "https://host/v1/property_images/" + primitive.NewObjectID().Hex() + ".jpg",
		Status:      status,
		Category:    models.CategoryResidential,
		AgentID:     agentID,
		CreatedBy:   primitive.NewObjectID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("properties").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test property: %v", err)
	}
	return p
}

// CreateBlog inserts a published post and returns it.
func (f *Fixtures) CreateBlog(ctx context.Context, title string) models.Blog {
	f.t.Helper()

	now := time.Now().UTC()
	b := models.Blog{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Content:     "Test content for " + title,
		Excerpt:     "Test excerpt",
		Author:      "Test Author",
		Category:    "market-news",
		Status:      models.BlogPublished,
		PublishDate: now.Add(-time.Hour),
		ReadTime:    1,
		Slug:        models.Slugify(title, now),
		CreatedBy:   primitive.NewObjectID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("blogs").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test blog: %v", err)
	}
	return b
}

// CreateQuoteRequest inserts a new quote request and returns it.
func (f *Fixtures) CreateQuoteRequest(ctx context.Context, fullName, email string) models.QuoteRequest {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.QuoteRequest{
		ID:                 primitive.NewObjectID(),
		FullName:           fullName,
		Email:              email,
		PhoneNumber:        "+15550002222",
		ProjectType:        "renovation",
		BudgetRange:        "25k-50k",
		Timeline:           "3-6-months",
		ProjectDescription: "Full renovation of a three bedroom apartment",
		Status:             "new",
		Priority:           "medium",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("quote_requests").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test quote request: %v", err)
	}
	return q
}

// CreateAdminUser inserts an active admin account with the given password.
func (f *Fixtures) CreateAdminUser(ctx context.Context, email, password string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Username:  "admin",
		Email:     email,
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

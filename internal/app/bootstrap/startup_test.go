package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/domain/models"
	"github.com/imanprime/estatecms/internal/testutil"
)

func TestEnsureAdminAccount_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdminAccount(ctx, deps, "admin@test.com", "s3cret-pass", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdminAccount failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", user.Role, models.RoleAdmin)
	}
	if !user.IsActive {
		t.Error("expected bootstrap admin to be active")
	}
	if !user.CheckPassword("s3cret-pass") {
		t.Error("expected stored hash to match the configured password")
	}
}

func TestEnsureAdminAccount_KeepsExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateAdminUser(ctx, "admin@test.com", "original-pass")

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdminAccount(ctx, deps, "admin@test.com", "different-pass", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdminAccount failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if !user.CheckPassword("original-pass") {
		t.Error("expected existing credentials to be left untouched")
	}
}

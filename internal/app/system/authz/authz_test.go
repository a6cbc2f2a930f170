package authz_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/app/system/authz"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, name, id, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false when no user in context")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("expected visitor defaults, got role=%q name=%q id=%v", role, name, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithUser(req, &auth.AuthUser{ID: "not-a-hex-id", Role: "admin"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for a malformed user id")
	}
}

func TestUserCtx_RoleLowercased(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithUser(req, &auth.AuthUser{ID: testUserID(), Name: "Ada", Role: "Admin"})

	role, name, _, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("expected lowercased role, got %q", role)
	}
	if name != "Ada" {
		t.Errorf("expected name Ada, got %q", name)
	}
}

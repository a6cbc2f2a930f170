// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/app/system/respond"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false. This ensures callers can
// trust that ok=true means a valid, authenticated user with a valid
// ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in context - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// RequireUserID returns the authenticated user's id, writing the 401
// envelope itself when no valid user is in context. ok=false means the
// response has been written.
func RequireUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, _, userID, ok := UserCtx(r)
	if !ok {
		respond.Err(w, http.StatusUnauthorized, "authentication required")
		return primitive.NilObjectID, false
	}
	return userID, true
}

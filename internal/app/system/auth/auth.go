// Package auth verifies bearer tokens and injects the current user into
// the request context.
//
// Tokens are HS256 JWTs carrying the user id in "sub". The middleware
// re-reads the user from the database on every request so deactivated
// accounts lose access immediately, not at token expiry.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/system/respond"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Tokens signs and verifies the bearer tokens the API issues.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token source from the configured secret. A zero ttl
// falls back to DefaultTokenTTL.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user id.
func (t *Tokens) Issue(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies the signature and expiry and returns the user id from
// the "sub" claim.
func (t *Tokens) Parse(raw string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, fmt.Errorf("invalid token claims")
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid subject: %w", err)
	}
	return id, nil
}

// AuthUser is what we inject into r.Context() for downstream handlers.
type AuthUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user and "found?" flag.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*AuthUser)
	return u, ok
}

// WithUser returns a request whose context carries the given user.
// Exported for handler tests.
func WithUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// UserSource loads the account behind a verified token.
type UserSource interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// LoadBearerUser injects the user into context when a valid bearer token
// is presented. Requests without an Authorization header pass through as
// visitors; RequireSignedIn gates the protected routes. A present but
// invalid token is rejected outright.
func LoadBearerUser(t *Tokens, users UserSource, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				respond.Err(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			id, err := t.Parse(raw)
			if err != nil {
				respond.Err(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u, err := users.ByID(r.Context(), id)
			if err != nil {
				// Token is valid but the account is gone; treat as revoked.
				log.Warn("bearer token for unknown user",
					zap.String("user_id", id.Hex()),
					zap.Error(err))
				respond.Err(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if !u.IsActive {
				respond.Err(w, http.StatusUnauthorized, "account is deactivated")
				return
			}

			next.ServeHTTP(w, WithUser(r, &AuthUser{
				ID:    u.ID.Hex(),
				Name:  u.Username,
				Email: u.Email,
				Role:  u.Role,
			}))
		})
	}
}

// RequireSignedIn ensures there is a user in context (set by LoadBearerUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Err(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the current user has one of the allowed roles.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Err(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, allowed := set[strings.ToLower(u.Role)]; !allowed {
				respond.Err(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

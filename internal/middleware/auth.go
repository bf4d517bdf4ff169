package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier resolves a bearer token to the id of the user it was issued to.
// *auth.Gateway satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user's id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFrom returns the authenticated user's id stored by Authenticate.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

// Authenticate returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. Requests without one are rejected
// with 401; accepted requests carry the user id in their context.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			id, err := v.VerifyToken(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

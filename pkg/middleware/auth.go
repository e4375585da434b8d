// Package middleware provides the HTTP middleware stack for the storefront.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/pkg/auth"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

type userIDKey struct{}

// UserID returns the authenticated user's id stored by the Auth middleware.
// The boolean is false when the request did not pass through Auth.
func UserID(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey{}).(primitive.ObjectID)
	return id, ok
}

// WithUserID stores the authenticated user id in ctx. Exported for tests.
func WithUserID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// Auth is the authentication gate: it extracts the bearer token from the
// Authorization header, verifies it, and attaches the subject user id to the
// request context. No session state is kept across requests.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "Invalid token", err)
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "Invalid token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

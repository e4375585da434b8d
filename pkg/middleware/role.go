package middleware

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// RequireMaster is the role gate for administrative operations. It must run
// after Auth. The stored role is loaded fresh on every protected request, so
// a demoted account loses access immediately.
func RequireMaster(users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserID(r.Context())
			if !ok {
				response.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if errors.Is(err, repositories.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "User not found")
				return
			}
			if err != nil {
				response.Fail(w, http.StatusInternalServerError, "Server error in master middleware", err)
				return
			}

			if user.Role != models.RoleMaster {
				response.Error(w, http.StatusForbidden, "Access denied. Master only.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

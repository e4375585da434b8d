// Package controllers contains the HTTP handlers. Each handler decodes its
// request, calls one service method, and maps failures to the HTTP error
// taxonomy itself; there is no centralized error-mapping layer.
package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/pkg/middleware"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// validate checks request payload structs. Shared; Validate is safe for
// concurrent use.
var validate = validator.New()

// currentUser pulls the authenticated user id installed by the auth gate.
// The second value is false only when a route was wired without the gate,
// which is a programming error surfaced as 401.
func currentUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "No token provided")
	}
	return id, ok
}

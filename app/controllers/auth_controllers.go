package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/pkg/logger"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// AuthController serves registration, login and the profile endpoint.
type AuthController struct {
	service *services.AuthService
}

// NewAuthController builds an AuthController.
func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account. The role is always "user"; master accounts
// are provisioned via the CLI, never over HTTP.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error registering user", err)
		return
	}
	if err := validate.Struct(body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error registering user", err)
		return
	}

	err := c.service.Register(r.Context(), body.Username, body.Password)
	if errors.Is(err, services.ErrUsernameTaken) {
		response.Error(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Fail(w, http.StatusBadRequest, "Error registering user", err)
		return
	}

	response.Message(w, http.StatusCreated, "User registered")
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns a bearer token together with the
// role and username the frontend keeps in local state.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid credentials", err)
		return
	}
	if err := validate.Struct(body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, user, err := c.service.Login(r.Context(), body.Username, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Fail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
	})
}

// Me returns the authenticated user's username and role.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := c.service.Profile(r.Context(), userID)
	if errors.Is(err, repositories.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "Error fetching user", err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	})
}

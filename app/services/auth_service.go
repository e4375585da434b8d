package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/pkg/auth"
)

// AuthService handles registration, login and profile reads.
type AuthService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService builds an AuthService.
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account. Every registration gets the shopper role;
// master accounts are provisioned out of band via the CLI.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("register: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleUser,
	}
	err = s.users.Create(ctx, user)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Lost the race with a concurrent registration for the same name.
		return ErrUsernameTaken
	}
	return err
}

// Login checks the credentials and returns a signed token plus the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}
	return token, user, nil
}

// Profile returns the account for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

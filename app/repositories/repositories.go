// Package repositories defines the persistence boundary of the storefront.
//
// Two drivers implement the same interfaces:
//   - mongo  — the real document store (one collection per entity)
//   - memory — an in-process store for tests and for running without Mongo
//
// All methods take a context and return explicit errors. Lookups that miss
// return ErrNotFound; unique-constraint violations return ErrDuplicate.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// UpdatePassword replaces the stored hash for username.
	UpdatePassword(ctx context.Context, username, hash string) error
}

// ProductRepository persists the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// FindByIDs returns the products whose ids appear in ids; missing ids are
	// silently skipped. Used to resolve cart and order line items.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	// Delete removes one product. Returns ErrNotFound when id does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartRepository persists per-user carts.
type CartRepository interface {
	// FindByUser returns the user's cart or ErrNotFound when none exists yet.
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Save upserts the cart keyed on its owning user.
	Save(ctx context.Context, cart *models.Cart) error
	// PullProduct strips every line item referencing productID from all carts.
	PullProduct(ctx context.Context, productID primitive.ObjectID) error
	// ClearItems empties the user's cart. A missing cart is not an error.
	ClearItems(ctx context.Context, userID primitive.ObjectID) error
}

// OrderRepository persists checkout records.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	AllByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// Store bundles the four repositories behind one handle.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// Package services implements the storefront's business logic on top of the
// repository interfaces. Controllers stay thin: they decode requests, call a
// service, and map errors to HTTP responses.
package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for unknown users and bad passwords
	// alike, so login failures do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedID is returned when a client-supplied id is not a valid
	// document id.
	ErrMalformedID = errors.New("malformed id")
	// ErrUnsupportedImage is returned for uploads outside the image allow-list.
	ErrUnsupportedImage = errors.New("only images (jpeg, jpg, png, gif) are allowed")
	// ErrImageTooLarge is returned when an upload exceeds the size ceiling.
	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
)

// parseID converts a client-supplied hex id, mapping garbage to
// ErrMalformedID so handlers answer 400 instead of 500.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrMalformedID
	}
	return oid, nil
}

// productMap loads the products referenced by ids into a lookup table.
// Missing products are simply absent; callers render them as null so carts
// and orders survive catalog deletions.
func productMap(ctx context.Context, products repositories.ProductRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.Product, len(found))
	for _, p := range found {
		out[p.ID] = p
	}
	return out, nil
}

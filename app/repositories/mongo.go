package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the document store.
const (
	colUsers    = "users"
	colProducts = "products"
	colCarts    = "carts"
	colOrders   = "orders"
)

// NewMongoStore builds the repository set on top of db and creates the
// indexes the schema relies on (unique usernames).
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	users := db.Collection(colUsers)

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("repositories: create username index: %w", err)
	}

	return &Store{
		Users:    &mongoUsers{col: users},
		Products: &mongoProducts{col: db.Collection(colProducts)},
		Carts:    &mongoCarts{col: db.Collection(colCarts)},
		Orders:   &mongoOrders{col: db.Collection(colOrders)},
	}, nil
}

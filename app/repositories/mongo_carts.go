package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/infocart/app/models"
)

type mongoCarts struct {
	col *mongo.Collection
}

func (r *mongoCarts) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("carts: find for user %s: %w", userID.Hex(), err)
	}
	return &cart, nil
}

// Save upserts the whole cart document keyed on userId. Concurrent saves for
// the same user are last-writer-wins; there is no version check.
func (r *mongoCarts) Save(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"userId": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("carts: save for user %s: %w", cart.UserID.Hex(), err)
	}
	return nil
}

func (r *mongoCarts) PullProduct(ctx context.Context, productID primitive.ObjectID) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"items.productId": productID},
		bson.M{"$pull": bson.M{"items": bson.M{"productId": productID}}},
	)
	if err != nil {
		return fmt.Errorf("carts: pull product %s: %w", productID.Hex(), err)
	}
	return nil
}

func (r *mongoCarts) ClearItems(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}}},
	)
	if err != nil {
		return fmt.Errorf("carts: clear for user %s: %w", userID.Hex(), err)
	}
	return nil
}

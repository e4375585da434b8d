package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/infocart/app/models"
)

type mongoOrders struct {
	col *mongo.Collection
}

func (r *mongoOrders) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	return nil
}

func (r *mongoOrders) AllByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("orders: find for user %s: %w", userID.Hex(), err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog document in the "products" collection.
// Image holds the public path of the uploaded picture, empty when none was
// provided.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

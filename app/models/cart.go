package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is one (product reference, quantity) pair inside a cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is the per-user cart document in the "carts" collection.
// A user has at most one cart; it is created lazily on the first add and its
// items array is emptied, not deleted, after checkout.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Items  []CartItem         `bson:"items" json:"items"`
}

// PopulatedCartItem is a cart line item with the product reference resolved
// to the full document. The product serializes under the "productId" key for
// wire compatibility; it is null when the product no longer exists.
type PopulatedCartItem struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
}

// PopulatedCart is the client-facing cart shape returned by cart reads.
type PopulatedCart struct {
	ID     primitive.ObjectID  `json:"_id,omitempty"`
	UserID primitive.ObjectID  `json:"userId,omitempty"`
	Items  []PopulatedCartItem `json:"items"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusCompleted is the status stamped on orders at creation time.
// The backend only ever records completed checkouts; pending payment state
// lives at the gateway.
const OrderStatusCompleted = "completed"

// OrderItem is a frozen line item: quantity and price are snapshotted at
// checkout and never change with later catalog edits.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order is an immutable checkout record in the "orders" collection.
// PaymentID and OrderID are the identifiers reported back by the external
// payment gateway.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentID   string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	OrderID     string             `bson:"orderId" json:"orderId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedOrderItem resolves the product reference of an order item.
// Like cart items, the document serializes under "productId" and is null for
// products deleted after purchase.
type PopulatedOrderItem struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
}

// PopulatedOrder is the client-facing order shape for order history.
type PopulatedOrder struct {
	ID          primitive.ObjectID   `json:"_id"`
	UserID      primitive.ObjectID   `json:"userId"`
	Items       []PopulatedOrderItem `json:"items"`
	TotalAmount float64              `json:"totalAmount"`
	PaymentID   string               `json:"paymentId,omitempty"`
	OrderID     string               `json:"orderId"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

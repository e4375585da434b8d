package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/pkg/metrics"
	"github.com/shashiranjanraj/infocart/pkg/payment"
)

// OrderItemInput is one checkout line item as reported by the client.
// Quantity and price carry no validation so zero values (free items,
// giveaways) pass through untouched.
type OrderItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PlaceOrderInput is the client's checkout report. Prices and the total are
// recorded verbatim; the backend does not recompute them against the catalog
// nor re-verify the payment with the gateway.
type PlaceOrderInput struct {
	Items       []OrderItemInput `json:"items" validate:"required,dive"`
	TotalAmount float64          `json:"totalAmount"`
	PaymentID   string           `json:"paymentId"`
	OrderID     string           `json:"orderId" validate:"required"`
}

// OrderService records checkouts and talks to the payment bridge.
type OrderService struct {
	orders   repositories.OrderRepository
	carts    repositories.CartRepository
	products repositories.ProductRepository
	gateway  payment.Gateway
	now      func() time.Time
}

// NewOrderService builds an OrderService.
func NewOrderService(orders repositories.OrderRepository, carts repositories.CartRepository, products repositories.ProductRepository, gateway payment.Gateway) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		gateway:  gateway,
		now:      time.Now,
	}
}

// CreateGatewayOrder asks the payment bridge for an order handle. The amount
// arrives in major currency units and is forwarded in minor units.
func (s *OrderService) CreateGatewayOrder(ctx context.Context, amount float64, currency, receipt string) (*payment.Order, error) {
	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		metrics.GatewayRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.GatewayRequests.WithLabelValues("ok").Inc()
	return order, nil
}

// Place persists the completed checkout and then empties the user's cart, so
// the next cart fetch comes back empty. Item prices are frozen as given.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, input PlaceOrderInput) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		pid, err := parseID(in.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: pid,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	order := &models.Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: input.TotalAmount,
		PaymentID:   input.PaymentID,
		OrderID:     input.OrderID,
		Status:      models.OrderStatusCompleted,
		CreatedAt:   s.now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.ClearItems(ctx, userID); err != nil {
		return nil, fmt.Errorf("orders: clear cart: %w", err)
	}

	metrics.OrdersCreated.Inc()
	return order, nil
}

// List returns the caller's order history with product references resolved.
// No ordering is guaranteed.
func (s *OrderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	orders, err := s.orders.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, o := range orders {
		for _, item := range o.Items {
			ids = append(ids, item.ProductID)
		}
	}
	byID, err := productMap(ctx, s.products, ids)
	if err != nil {
		return nil, fmt.Errorf("orders: resolve products: %w", err)
	}

	out := make([]models.PopulatedOrder, 0, len(orders))
	for _, o := range orders {
		populated := models.PopulatedOrder{
			ID:          o.ID,
			UserID:      o.UserID,
			Items:       make([]models.PopulatedOrderItem, 0, len(o.Items)),
			TotalAmount: o.TotalAmount,
			PaymentID:   o.PaymentID,
			OrderID:     o.OrderID,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		}
		for _, item := range o.Items {
			pi := models.PopulatedOrderItem{Quantity: item.Quantity, Price: item.Price}
			if p, ok := byID[item.ProductID]; ok {
				product := p
				pi.Product = &product
			}
			populated.Items = append(populated.Items, pi)
		}
		out = append(out, populated)
	}
	return out, nil
}

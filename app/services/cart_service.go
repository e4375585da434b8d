package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
)

// CartService implements the per-user cart: add-or-increment, remove, and
// fetch with product details resolved.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService builds a CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem fetches or lazily creates the user's cart, then increments the
// line item for productID or appends a new one. The product id is not
// checked against the catalog, so items may reference products that no
// longer exist.
//
// The read-modify-write below is not atomic against concurrent adds from the
// same user: two simultaneous calls can race and the last save wins.
func (s *CartService) AddItem(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error) {
	pid, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == pid {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: pid, Quantity: quantity})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return cart, nil
}

// RemoveItem filters productID out of the user's cart and returns the cart
// with remaining items populated. A user with no cart at all gets
// repositories.ErrNotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.PopulatedCart, error) {
	pid, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != pid {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return s.populate(ctx, cart)
}

// Get returns the user's cart with product references resolved. A user who
// never added anything gets an empty-items cart, not an error.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*models.PopulatedCart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.PopulatedCart{Items: []models.PopulatedCartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	return s.populate(ctx, cart)
}

// populate resolves each line item's product reference. Items referencing
// deleted products keep their quantity with a null product.
func (s *CartService) populate(ctx context.Context, cart *models.Cart) (*models.PopulatedCart, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	byID, err := productMap(ctx, s.products, ids)
	if err != nil {
		return nil, fmt.Errorf("cart: resolve products: %w", err)
	}

	out := &models.PopulatedCart{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.PopulatedCartItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		populated := models.PopulatedCartItem{Quantity: item.Quantity}
		if p, ok := byID[item.ProductID]; ok {
			product := p
			populated.Product = &product
		}
		out.Items = append(out.Items, populated)
	}
	return out, nil
}

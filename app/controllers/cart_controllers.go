package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// CartController serves the per-user cart endpoints.
type CartController struct {
	service *services.CartService
}

// NewCartController builds a CartController.
func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// Quantity is recorded verbatim, zero and negative included; the cart keeps
// whatever the client reports.
type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// Add puts a product into the caller's cart, incrementing the existing line
// item when one is already there.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error adding to cart", err)
		return
	}
	if err := validate.Struct(body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error adding to cart", err)
		return
	}

	cart, err := c.service.AddItem(r.Context(), userID, body.ProductID, body.Quantity)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Error adding to cart", err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

type removeItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// Remove filters a product out of the caller's cart and returns the
// populated remainder.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error removing from cart", err)
		return
	}

	cart, err := c.service.RemoveItem(r.Context(), userID, body.ProductID)
	if errors.Is(err, repositories.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Error removing from cart", err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// Show returns the caller's populated cart, or an empty-items cart when the
// user never added anything.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := c.service.Get(r.Context(), userID)
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "Error fetching cart", err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

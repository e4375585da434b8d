package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/pkg/logger"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// OrderController serves checkout and order history.
type OrderController struct {
	service *services.OrderService
}

// NewOrderController builds an OrderController.
func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Amount is forwarded as-is; the gateway enforces its own minimum.
type gatewayOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" validate:"required"`
	Receipt  string  `json:"receipt" validate:"required"`
}

// CreateGatewayOrder is a pass-through to the payment bridge: it obtains a
// gateway order handle for the hosted checkout and records nothing locally.
func (c *OrderController) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	var body gatewayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error creating order", err)
		return
	}
	if err := validate.Struct(body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error creating order", err)
		return
	}

	order, err := c.service.CreateGatewayOrder(r.Context(), body.Amount, body.Currency, body.Receipt)
	if err != nil {
		logger.WithCtx(r.Context()).Error("gateway order failed", "error", err)
		response.Fail(w, http.StatusInternalServerError, "Error creating order", err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// Store persists the completed checkout reported by the client and empties
// the caller's cart.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body services.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error saving order", err)
		return
	}
	if err := validate.Struct(body); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error saving order", err)
		return
	}

	order, err := c.service.Place(r.Context(), userID, body)
	if err != nil {
		logger.WithCtx(r.Context()).Error("save order failed", "error", err)
		response.Fail(w, http.StatusBadRequest, "Error saving order", err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// Index returns the caller's order history with products resolved.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	orders, err := c.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "Error fetching orders", err)
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

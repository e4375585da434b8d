// Package routes wires the HTTP API: public endpoints, the auth gate, and
// the master-only catalog administration.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/infocart/app/controllers"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/pkg/auth"
	"github.com/shashiranjanraj/infocart/pkg/metrics"
	"github.com/shashiranjanraj/infocart/pkg/middleware"
	"github.com/shashiranjanraj/infocart/pkg/response"
	"github.com/shashiranjanraj/infocart/pkg/router"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController

	Tokens *auth.TokenManager
	Users  repositories.UserRepository
}

// RegisterAPI mounts every endpoint. Paths mirror the original API so the
// existing frontend keeps working unchanged.
func RegisterAPI(r *router.Router, d Deps) {
	authGate := middleware.Auth(d.Tokens)
	masterGate := middleware.RequireMaster(d.Users)

	api := r.Group("/api")

	// Accounts.
	api.Post("/register", "auth.register", d.Auth.Register)
	api.Post("/login", "auth.login", d.Auth.Login)
	api.Get("/user", "auth.me", d.Auth.Me, authGate)

	// Catalog. Listing is public; writes are master-only.
	api.Get("/products", "products.index", d.Products.Index)
	api.Post("/products", "products.store", d.Products.Store, authGate, masterGate)
	api.Delete("/products/{id}", "products.destroy", d.Products.Destroy, authGate, masterGate)

	// Cart.
	api.Post("/cart", "cart.add", d.Cart.Add, authGate)
	api.Delete("/cart/remove", "cart.remove", d.Cart.Remove, authGate)
	api.Get("/cart", "cart.show", d.Cart.Show, authGate)

	// Checkout.
	api.Post("/create-order", "orders.gateway", d.Orders.CreateGatewayOrder, authGate)
	api.Post("/orders", "orders.store", d.Orders.Store, authGate)
	api.Get("/orders", "orders.index", d.Orders.Index, authGate)

	// Operational endpoints.
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())
}

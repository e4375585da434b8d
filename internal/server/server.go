// Package server boots the storefront: configuration, Mongo, storage,
// the payment gateway and the HTTP stack, with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shashiranjanraj/infocart/app/controllers"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/routes"
	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/config"
	"github.com/shashiranjanraj/infocart/pkg/auth"
	"github.com/shashiranjanraj/infocart/pkg/database"
	"github.com/shashiranjanraj/infocart/pkg/logger"
	"github.com/shashiranjanraj/infocart/pkg/metrics"
	"github.com/shashiranjanraj/infocart/pkg/middleware"
	"github.com/shashiranjanraj/infocart/pkg/payment"
	"github.com/shashiranjanraj/infocart/pkg/reqid"
	"github.com/shashiranjanraj/infocart/pkg/router"
	"github.com/shashiranjanraj/infocart/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// rateLimitMax requests per rateLimitWindow, per client IP.
const (
	rateLimitMax    = 200
	rateLimitWindow = time.Minute
)

// NewRouter assembles the full middleware stack and route table around the
// given dependencies. Tests build it with a memory store and a stub gateway.
func NewRouter(cfg *config.Config, store *repositories.Store, disk storage.Disk, gateway payment.Gateway, tokens *auth.TokenManager) *router.Router {
	authSvc := services.NewAuthService(store.Users, tokens)
	catalogSvc := services.NewCatalogService(store.Products, store.Carts, disk, cfg.MaxUploadSize)
	cartSvc := services.NewCartService(store.Carts, store.Products)
	orderSvc := services.NewOrderService(store.Orders, store.Carts, store.Products, gateway)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(cfg.CORSOrigin),
		middleware.RateLimit(rateLimitMax, rateLimitWindow),
	)

	routes.RegisterAPI(r, routes.Deps{
		Auth:     controllers.NewAuthController(authSvc),
		Products: controllers.NewProductController(catalogSvc, cfg.MaxUploadSize),
		Cart:     controllers.NewCartController(cartSvc),
		Orders:   controllers.NewOrderController(orderSvc),
		Tokens:   tokens,
		Users:    store.Users,
	})

	// Serve local uploads directly. On S3 the image URLs point at the
	// bucket, so there is nothing to mount.
	if cfg.StorageDisk == "local" {
		root := cfg.UploadRoot
		if !filepath.IsAbs(root) {
			if wd, err := os.Getwd(); err == nil {
				root = filepath.Join(wd, root)
			}
		}
		prefix := "/" + strings.Trim(cfg.UploadURL, "/")
		r.Mount(prefix, http.StripPrefix(prefix+"/", http.FileServer(http.Dir(root))))
	}

	return r
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests and disconnects Mongo.
func Start(cfg *config.Config) error {
	logger.Setup(cfg.Production())

	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// Tee log records into Mongo when a collection is configured.
	if cfg.LogCollection != "" {
		h := logger.NewMongoHandler(db.Collection(cfg.LogCollection), logger.L.Handler())
		logger.SetHandler(h)
		defer h.Close()
	}

	store, err := repositories.NewMongoStore(ctx, db)
	if err != nil {
		return err
	}

	disk, err := storage.FromConfig(cfg)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	r := NewRouter(cfg, store, disk, gateway, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

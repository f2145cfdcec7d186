// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradefair/src/app/http/handler"
	"tradefair/src/app/middleware"
	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
	"tradefair/src/core/usecase"
	"tradefair/src/infra/config"
	"tradefair/src/infra/token"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server
	issuer *token.Issuer

	// Handlers
	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	shedHandler     *handler.ShedHandler
	productHandler  *handler.ProductHandler
	preorderHandler *handler.PreorderHandler
	followHandler   *handler.FollowHandler
	paymentHandler  *handler.PaymentHandler
}

// New creates a new Server with all dependencies wired up.
func New(
	cfg *config.Config,
	log *slog.Logger,
	repo ports.MarketRepository,
	registry *domain.Registry,
	gateway ports.PaymentGateway,
	cache ports.SnapshotCache,
	issuer *token.Issuer,
) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(repo, log)
	authService := usecase.NewAuthService(repo, issuer, log)
	shedService := usecase.NewShedService(repo, registry, cache, log)
	capacityService := usecase.NewCapacityService(repo, cache, log)
	productService := usecase.NewProductService(repo, log)
	preorderService := usecase.NewPreorderService(repo, log)
	followService := usecase.NewFollowService(repo, log)
	paymentService := usecase.NewPaymentService(repo, gateway, cache, log)

	s := &Server{
		cfg:             cfg,
		log:             log,
		router:          router,
		issuer:          issuer,
		healthHandler:   handler.NewHealthHandler(healthService),
		authHandler:     handler.NewAuthHandler(authService),
		shedHandler:     handler.NewShedHandler(shedService, capacityService),
		productHandler:  handler.NewProductHandler(productService),
		preorderHandler: handler.NewPreorderHandler(preorderService, paymentService),
		followHandler:   handler.NewFollowHandler(followService),
		paymentHandler:  handler.NewPaymentHandler(paymentService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RateLimit(s.cfg.Market.RateLimit, s.cfg.Market.RateBurst))
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.Logging(s.log))
	s.router.Use(middleware.Auth(s.issuer))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Operational endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Check)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := s.router.Group("/v1")
	{
		// Auth
		v1.POST("/auth/signup", s.authHandler.Signup)
		v1.POST("/auth/login", s.authHandler.Login)
		v1.GET("/users/me", middleware.RequireAuth(), s.authHandler.Me)

		// Domains (public)
		v1.GET("/domains", s.shedHandler.Domains)
		v1.GET("/domains/availability", s.shedHandler.Availability)

		// Sheds
		v1.GET("/sheds", s.shedHandler.List)
		v1.GET("/sheds/:shed_id", s.shedHandler.Get)
		v1.POST("/sheds", middleware.RequireAuth(), s.shedHandler.Create)
		v1.PATCH("/sheds/:shed_id", middleware.RequireAuth(), s.shedHandler.Update)
		v1.DELETE("/sheds/:shed_id", middleware.RequireAuth(), s.shedHandler.Release)
		v1.GET("/vendors/me/sheds", middleware.RequireAuth(), s.shedHandler.ListMine)

		// Products
		v1.GET("/products", s.productHandler.List)
		v1.GET("/products/:product_id", s.productHandler.Get)
		v1.POST("/sheds/:shed_id/products", middleware.RequireAuth(), s.productHandler.Create)
		v1.PUT("/products/:product_id", middleware.RequireAuth(), s.productHandler.Update)
		v1.DELETE("/products/:product_id", middleware.RequireAuth(), s.productHandler.Delete)

		// Preorders
		preorders := v1.Group("/preorders", middleware.RequireAuth())
		{
			preorders.POST("", s.preorderHandler.Create)
			preorders.GET("", s.preorderHandler.List)
			preorders.GET("/:preorder_id", s.preorderHandler.Get)
			preorders.PATCH("/:preorder_id", s.preorderHandler.Update)
			preorders.DELETE("/:preorder_id", s.preorderHandler.Delete)
			preorders.POST("/:preorder_id/confirm", s.preorderHandler.Confirm)
			preorders.POST("/:preorder_id/cancel", s.preorderHandler.Cancel)
			preorders.POST("/:preorder_id/payment", s.preorderHandler.Pay)
			preorders.GET("/:preorder_id/payment", s.preorderHandler.PaymentStatus)
		}

		// Follows
		v1.POST("/follows", middleware.RequireAuth(), s.followHandler.Follow)
		v1.GET("/follows", middleware.RequireAuth(), s.followHandler.List)
		v1.DELETE("/follows/:vendor_id", middleware.RequireAuth(), s.followHandler.Unfollow)

		// Payments
		v1.POST("/payments/sheds/:shed_id", middleware.RequireAuth(), s.paymentHandler.PayShed)
		v1.POST("/payments/webhook", s.paymentHandler.Webhook)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady waits until the server is ready to accept connections.
// Useful for integration tests.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"list-market/internal/cart"
	"list-market/internal/catalog"
	"list-market/internal/config"
	"list-market/internal/database"
	"list-market/internal/delivery"
	custommiddleware "list-market/internal/middleware"
	"list-market/internal/order"
	"list-market/internal/profile"
	"list-market/internal/session"
	"list-market/internal/storage"
	"list-market/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	db      *database.Service
	tracker *delivery.Tracker
}

// NewServer wires the storefront services over the given store and
// builds the HTTP server. The redis client and database service are
// optional and only used when the corresponding backend is configured.
func NewServer(cfg *config.Config, logger *zap.Logger, store storage.Store, redisClient *redis.Client, db *database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			custommiddleware.RespondWithJSON(w, http.StatusOK, db.Health(r.Context()))
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Initialize services
	products := catalog.Default()
	sessions := session.New(store, cfg.JWT.Secret, time.Duration(cfg.JWT.AccessExpiry)*time.Minute)
	carts := cart.New(store, sessions, logger, nil)
	orders := order.New(store, carts, logger, nil)
	profiles := profile.New(store, logger)

	tracker := delivery.NewTracker(cfg.Delivery.Ticks, time.Duration(cfg.Delivery.TickInterval)*time.Second, logger, func(orderID string) {
		if err := orders.MarkDelivered(context.Background(), orderID); err != nil {
			logger.Error("Failed to mark order delivered",
				zap.Error(err),
				zap.String("order_id", orderID),
			)
		}
	})

	// Initialize handlers
	sessionHandler := transport.NewSessionHandler(sessions, logger)
	catalogHandler := transport.NewCatalogHandler(products, logger, nil)
	cartHandler := transport.NewCartHandler(carts, products, logger)
	orderHandler := transport.NewOrderHandler(orders, tracker, logger)
	deliveryHandler := transport.NewDeliveryHandler(tracker, logger)
	profileHandler := transport.NewProfileHandler(profiles, sessions, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(sessions, logger)

	// Register routes
	sessionHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)
	deliveryHandler.RegisterRoutes(router)
	profileHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:  cfg,
		logger:  logger,
		db:      db,
		tracker: tracker,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Stop an in-flight delivery countdown
	s.tracker.Dismiss()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

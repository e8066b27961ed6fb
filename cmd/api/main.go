package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"list-market/internal/config"
	"list-market/internal/database"
	"list-market/internal/logger"
	"list-market/internal/server"
	"list-market/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// buildStore selects the persistence backend from configuration. The
// redis client and database service come back non-nil only for their
// respective backends so the caller can manage their lifecycle.
func buildStore(cfg *config.Config, log *zap.Logger) (storage.Store, *redis.Client, *database.Service, error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(client, cfg.Store.Prefix), client, nil, nil

	case "postgres":
		dbService, err := database.New(cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed successfully")
		return storage.NewPostgresStore(dbService.DB()), nil, dbService, nil

	case "memory":
		return storage.NewMemoryStore(), nil, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
	)

	store, redisClient, dbService, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}

	if dbService != nil {
		health := dbService.Health(context.Background())
		log.Info("Database health check", zap.Any("health", health))
	}

	// Create server
	srv := server.NewServer(cfg, log, store, redisClient, dbService)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}

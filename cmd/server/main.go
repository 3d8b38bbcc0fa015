package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lost-and-found-api/internal/api"
	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/lost-and-found-api/internal/service"
	"github.com/lost-and-found-api/pkg/logger"
	"github.com/lost-and-found-api/pkg/push"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Lost & Found API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Push delivery is optional; without a server key notifications stay
	// in-app only.
	var sender push.Sender
	if cfg.Push.ServerKey != "" {
		sender = push.NewHTTPSender(cfg.Push.Endpoint, cfg.Push.ServerKey, cfg.Push.Timeout, log)
	} else {
		log.Warn().Msg("PUSH_SERVER_KEY not set, push delivery disabled")
	}

	// Initialize services
	services := service.NewServices(repos, cfg, sender, log)

	// Start notification dispatcher
	services.Dispatcher.Start(context.Background())

	// Initialize router
	router := api.NewRouter(services, repos, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop notification dispatcher
	services.Dispatcher.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

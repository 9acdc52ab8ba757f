package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"volunteerhub/internal/config"
	"volunteerhub/internal/container"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/middleware"
	"volunteerhub/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	deps   *container.Container
	server *http.Server
	log    *logger.Logger
	mu     sync.Mutex
	closed bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	var shutdownErr error
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			shutdownErr = fmt.Errorf("HTTP server shutdown: %w", err)
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.deps != nil {
		r.deps.Close()
		r.log.Info("Database and cache connections closed")
	}

	if shutdownErr != nil {
		return shutdownErr
	}
	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting volunteerhub server")

	// Create dependency injection container
	ctx := context.Background()
	deps, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Setup router
	router := setupRouter(deps)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	resources := &Resources{
		deps:   deps,
		server: server,
		log:    log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(deps *container.Container) *chi.Mux {
	cfg := deps.Config
	log := deps.Logger
	authService := deps.GetAuthService()

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(deps.DB, deps.RedisClient, log)
	authHandler := handler.NewAuthHandler(authService, deps.UserService, log)
	activityHandler := handler.NewActivityHandler(deps.ActivityService, deps.RegistrationService, log)
	userHandler := handler.NewUserHandler(deps.UserService, deps.ActivityService, deps.RegistrationService, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		// Activity endpoints; listing and detail are public
		r.Route("/activities", func(r chi.Router) {
			r.Get("/", activityHandler.List)
			r.Get("/{activityID}", activityHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))
				r.Post("/", activityHandler.Create)
				r.Post("/{activityID}/register", activityHandler.Register)
				r.Delete("/{activityID}/register", activityHandler.Unregister)
				r.Get("/{activityID}/registrations", activityHandler.Roster)
			})
		})

		// Caller-scoped endpoints
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(authService, log))
			r.Get("/my-registrations", userHandler.MyRegistrations)
			r.Get("/my-activities", userHandler.MyActivities)
			r.Get("/statistics", userHandler.Statistics)
			r.Post("/check-in/{registrationID}", userHandler.CheckIn)
			r.Post("/complete/{registrationID}", userHandler.Complete)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}

// Package container wires repositories, services, and shared clients
// together so main stays a thin bootstrap.
package container

import (
	"context"

	"volunteerhub/internal/config"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/service"
	"volunteerhub/internal/service/auth"
	"volunteerhub/pkg/database"
	"volunteerhub/pkg/logger"
	"volunteerhub/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client

	Users         repository.UserRepository
	Activities    repository.ActivityRepository
	Registrations repository.RegistrationRepository

	Auth                *auth.Service
	ActivityService     *service.ActivityService
	RegistrationService *service.RegistrationService
	UserService         *service.UserService
}

// New creates a new dependency injection container. Redis is optional: a
// missing or unreachable REDIS_URL disables caching rather than failing the
// boot.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	users := repository.NewPostgresUserRepository(db)
	activities := repository.NewPostgresActivityRepository(db)
	registrations := repository.NewPostgresRegistrationRepository(db)

	cache := service.NewCacheService(redisClient, log.Logger)
	authService := auth.NewService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)

	return &Container{
		Config:              cfg,
		Logger:              log,
		DB:                  db,
		RedisClient:         redisClient,
		Users:               users,
		Activities:          activities,
		Registrations:       registrations,
		Auth:                authService,
		ActivityService:     service.NewActivityService(activities, registrations, cache, log.Logger),
		RegistrationService: service.NewRegistrationService(registrations, cache, log.Logger),
		UserService:         service.NewUserService(users, cache, log.Logger),
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Auth
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// Close releases the container's connections
func (c *Container) Close() {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

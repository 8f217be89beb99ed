package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
)

// RedisClient wraps the redis client with helper methods for the inventory
// list cache. Losing Redis never fails a request; callers fall through to
// Postgres on any cache error.
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDatabase,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDatabase),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

const carListKey = "inventory:cars"

// GetCarList returns the cached car listing, or (nil, false) on miss or any
// cache error.
func (r *RedisClient) GetCarList(ctx context.Context) ([]models.Car, bool) {
	raw, err := r.client.Get(ctx, carListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("⚠️ [Redis] Failed to read car list cache", "error", err)
		}
		return nil, false
	}

	var cars []models.Car
	if err := json.Unmarshal(raw, &cars); err != nil {
		r.logger.Warn("⚠️ [Redis] Corrupt car list cache entry, dropping it", "error", err)
		r.client.Del(ctx, carListKey)
		return nil, false
	}

	r.logger.Debug("📖 [Redis] Car list cache hit", "count", len(cars))
	return cars, true
}

// SetCarList stores the car listing with the configured TTL.
func (r *RedisClient) SetCarList(ctx context.Context, cars []models.Car) {
	raw, err := json.Marshal(cars)
	if err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to marshal car list", "error", err)
		return
	}

	ttl := time.Duration(r.cfg.CarCacheTTL) * time.Second
	if err := r.client.Set(ctx, carListKey, raw, ttl).Err(); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to write car list cache", "error", err)
	}
}

// InvalidateCarList drops the cached listing. Called after every inventory
// write so public reads never serve stale rows past the TTL window.
func (r *RedisClient) InvalidateCarList(ctx context.Context) {
	if err := r.client.Del(ctx, carListKey).Err(); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to invalidate car list cache", "error", err)
	}
}

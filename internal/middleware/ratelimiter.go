package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
)

// RateLimiter bounds how many AI recommendations a user may request per day.
// The external ranking call is metered and rate-limited upstream; this keeps
// a single user from burning the whole quota.
type RateLimiter interface {
	// CheckDailyLimit reports whether the user is still under the daily
	// recommendation limit. Returns: allowed bool, used int64, limit int64, error
	CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error)

	// IncrementDailyCount increments the daily recommendation count for a user
	IncrementDailyCount(ctx context.Context, userID uint) error

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based rate limiter
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDatabase),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisRateLimiter{
		client: client,
		limit:  cfg.AIDailyLimit,
		logger: logger,
	}, nil
}

// NewRateLimiterForTesting creates a limiter around a provided redis.Client.
func NewRateLimiterForTesting(client *redis.Client, limit int64, logger *slog.Logger) RateLimiter {
	return &redisRateLimiter{client: client, limit: limit, logger: logger}
}

// dailyKey generates the Redis key for the daily recommendation count
// Format: rate:recommend:{userID}:{YYYY-MM-DD}
func dailyKey(userID uint) string {
	today := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("rate:recommend:%d:%s", userID, today)
}

func (r *redisRateLimiter) CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error) {
	// If limit is 0 or negative, unlimited
	if r.limit <= 0 {
		return true, 0, 0, nil
	}

	key := dailyKey(userID)
	count, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return true, 0, r.limit, nil
	}
	if err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to get daily count", "error", err, "user_id", userID)
		// On error, allow the request but log it
		return true, 0, r.limit, err
	}

	return count < r.limit, count, r.limit, nil
}

func (r *redisRateLimiter) IncrementDailyCount(ctx context.Context, userID uint) error {
	key := dailyKey(userID)

	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key)

	// Expire at midnight UTC so the quota resets daily.
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	pipe.Expire(ctx, key, midnight.Sub(now))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to increment daily count", "error", err, "user_id", userID)
		return err
	}

	return nil
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - AI quota is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error) {
	return true, 0, 0, nil
}

func (r *NoOpRateLimiter) IncrementDailyCount(ctx context.Context, userID uint) error {
	return nil
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}

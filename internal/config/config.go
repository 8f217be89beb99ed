package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	LogLevel            slog.Level
	ApiServicePort      string
	PostgreSQLHost      string
	PostgreSQLPort      int64
	PostgreSQLUser      string
	PostgreSQLPassword  string
	PostgreSQLDatabase  string
	JWTSecret           string
	TokenExpiration     int64 // Access token lifetime in seconds
	RedisHost           string
	RedisPort           int64
	RedisPassword       string
	RedisDatabase       int64
	CarCacheTTL         int64 // Inventory list cache TTL in seconds
	AITimeout           int64 // Ranking call deadline in seconds
	AIDailyLimit        int64 // Recommendations per user per day, 0 = unlimited
	GeminiAPIKey        string
	GeminiModel         string
	GoogleClientID      string
	StripeSecretKey     string
	StripeWebhookSecret string
	ClientBaseURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MaxFileSize         int64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:              getEnv("APP_ENV", "development"),                     // Default development
		LogLevel:            getLogLevel(),                                        // Default INFO
		ApiServicePort:      getEnv("API_SERVICE_PORT", "3000"),                   // Default 3000
		PostgreSQLHost:      getEnv("POSTGRESQL_HOST", "db"),                      // Default db
		PostgreSQLPort:      getEnvAsInt64("POSTGRESQL_PORT", 5432),               // Default 5432
		PostgreSQLUser:      getEnv("POSTGRESQL_USER", "garasi_user"),             // Default user
		PostgreSQLPassword:  getEnv("POSTGRESQL_PASSWORD", "garasi_password"),     // Default password
		PostgreSQLDatabase:  getEnv("POSTGRESQL_DATABASE", "garasi_db"),           // Default database name
		JWTSecret:           getEnv("JWT_SECRET", "garasi_secret"),                // Default secret key
		TokenExpiration:     getEnvAsInt64("TOKEN_EXPIRATION", 43200),             // Default 12 hours
		RedisHost:           getEnv("REDIS_HOST", "redis"),                        // Default redis
		RedisPort:           getEnvAsInt64("REDIS_PORT", 6379),                    // Default 6379
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),                         // Default empty
		RedisDatabase:       getEnvAsInt64("REDIS_DATABASE", 0),                   // Default 0
		CarCacheTTL:         getEnvAsInt64("CAR_CACHE_TTL", 300),                  // Default 5 minutes
		AITimeout:           getEnvAsInt64("AI_TIMEOUT", 30),                      // Default 30 seconds
		AIDailyLimit:        getEnvAsInt64("AI_DAILY_LIMIT", 50),                  // Default 50 per day
		GeminiAPIKey:        getEnv("GOOGLE_GEN_AI_API_KEY", ""),                  // No default, ranking falls back without it
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),           // Default flash model
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),                       // OAuth audience for Google sign-in
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),                      // Stripe API key
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),                  // Webhook signing secret
		ClientBaseURL:       getEnv("CLIENT_BASE_URL", "https://ip-dio.web.app"),  // Redirect target for checkout
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),                  // Cloudinary cloud
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),                     // Cloudinary key
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),                  // Cloudinary secret
		MaxFileSize:         getEnvAsInt64("MAX_FILE_SIZE", 5*1024*1024),          // Default 5 MB upload limit
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

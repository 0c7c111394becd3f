package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	RedisAddr               string
	RedisPassword           string

	// ListingCacheTTL bounds how long a browsing session's generated
	// listing set stays pinned in Redis.
	ListingCacheTTL time.Duration

	// ScreeningTimeScale multiplies every screening delay; 1.0 is real
	// time, small values compress the pipeline for development.
	ScreeningTimeScale float64

	// PaymentProcessingDelay is the simulated gateway settling time.
	PaymentProcessingDelay time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		ListingCacheTTL:         getDurationEnv("LISTING_CACHE_TTL", 30*time.Minute),
		ScreeningTimeScale:      getFloatEnv("SCREENING_TIME_SCALE", 1.0),
		PaymentProcessingDelay:  getDurationEnv("PAYMENT_PROCESSING_DELAY", 3*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

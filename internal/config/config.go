package config

import (
	"errors"
	"os"
	"time"
)

// ErrMissingMongoURI: the connection string is the one piece of
// configuration the process cannot run without.
var ErrMissingMongoURI = errors.New("MONGO_URI environment variable is not set")

type Config struct {
	HTTPPort      string
	MongoURI      string
	MongoDBName   string
	RedisAddr     string
	RedisPassword string
	AdminToken    string

	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

func Load() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MongoURI:           mongoURI,
		MongoDBName:        getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

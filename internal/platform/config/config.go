package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration, read once at startup so main
// stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  string
	KafkaTopic    string
	NotifyBuffer  int
}

// RedisConfig tunes the optional Redis connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("KGOV_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("KGOV_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("KGOV_KAFKA_TOPIC")
	if topic == "" {
		topic = "kgov.notifications"
	}

	buffer := 256
	if v := os.Getenv("KGOV_NOTIFY_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			buffer = n
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		DatabaseURL:   os.Getenv("KGOV_DATABASE_URL"),
		RedisURL:      os.Getenv("KGOV_REDIS_URL"),
		KafkaBrokers:  os.Getenv("KGOV_KAFKA_BROKERS"),
		KafkaTopic:    topic,
		NotifyBuffer:  buffer,
	}
}

// Redis derives the Redis connection settings.
func (s Server) Redis() RedisConfig {
	return RedisConfig{
		URL:          s.RedisURL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

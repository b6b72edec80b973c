package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	PostgresDSN       string
	JWTSecret         string
	RedisAddr         string
	DemoMode          bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdle     time.Duration
	DBConnMaxLife     time.Duration
	RequestTimeout    time.Duration
	HeartbeatInterval time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		PostgresDSN:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		DemoMode:          getBool("DEMO_MODE", true),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:     getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:     getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 10*time.Second),
		HeartbeatInterval: getDuration("HEARTBEAT_INTERVAL", 30*time.Second),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

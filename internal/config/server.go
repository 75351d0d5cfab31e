package config

import (
	"fmt"
	"os"
	"time"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Server holds the API server settings.
type Server struct {
	Port          string
	Store         string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	LogLevel      string
	LogFile       string
}

// LoadServer reads the server settings from the environment.
func LoadServer() *Server {
	return &Server{
		Port:          getEnvOrDefault("PORT", "8080"),
		Store:         getEnvOrDefault("STORE", StorePostgres),
		DatabaseURL:   databaseURL(),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: getDurationOrDefault("JWT_EXPIRATION", 24*time.Hour),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
	}
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnvOrDefault("DB_HOST", "localhost"),
		getEnvOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnvOrDefault("DB_NAME", "inventory"),
		getEnvOrDefault("DB_PORT", "5432"),
	)
}

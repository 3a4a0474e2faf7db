package config

import (
	"os"
)

// Config holds the process configuration, read once from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	SessionSecret  string
	FrontendOrigin string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"),
		SessionSecret:  getEnv("SESSION_SECRET", "secret_key_change_me"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

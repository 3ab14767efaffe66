package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	AppEnv            string
	LogLevel          string
	JWTSecret         string
	PreviewRatePerSec float64
	PreviewBurst      int
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "file:foodlister.sqlite"),
		AppEnv:            getEnv("APP_ENV", "local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		PreviewRatePerSec: getEnvFloat("PREVIEW_RATE_PER_SEC", 5),
		PreviewBurst:      getEnvInt("PREVIEW_BURST", 10),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ErrInsecureSecret is returned by Validate when production runs on the
// development JWT secret.
var ErrInsecureSecret = errors.New("config: JWT_SECRET must be set to a non-default value in production")

const defaultJWTSecret = "secret"

// Validate rejects settings that are only acceptable outside production.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return ErrInsecureSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return fallback
}

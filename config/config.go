package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// HTTP server
	Port string

	// MongoDB configuration
	MongoURI string
	MongoDB  string

	// Token signing
	JWTSecret string
	TokenTTL  time.Duration

	// Listing source
	ListingBaseURL string

	// Completion service configuration
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	tokenTTL, _ := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "mercadoscout"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       time.Duration(tokenTTL) * time.Minute,
		ListingBaseURL: getEnv("LISTING_BASE_URL", "https://listado.mercadolibre.com.mx"),
		LLMEndpoint:    getEnv("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		Environment:    getEnv("SCOUT_ENVIRONMENT", "development"),
	}
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_MINUTES must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

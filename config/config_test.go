package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "mongodb://localhost:27017", config.MongoURI)
	assert.Equal(t, "mercadoscout", config.MongoDB)
	assert.Equal(t, 60*time.Minute, config.TokenTTL)
	assert.Equal(t, "https://listado.mercadolibre.com.mx", config.ListingBaseURL)
	assert.Equal(t, "development", config.Environment)

	// Test with environment variables
	os.Setenv("PORT", "9090")
	os.Setenv("MONGO_DB", "scout_test")
	os.Setenv("TOKEN_TTL_MINUTES", "15")
	os.Setenv("SCOUT_ENVIRONMENT", "production")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("MONGO_DB")
		os.Unsetenv("TOKEN_TTL_MINUTES")
		os.Unsetenv("SCOUT_ENVIRONMENT")
	}()

	config = LoadConfig()
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "scout_test", config.MongoDB)
	assert.Equal(t, 15*time.Minute, config.TokenTTL)
	assert.Equal(t, "production", config.Environment)
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	config.JWTSecret = ""
	assert.Error(t, config.Validate())

	config.JWTSecret = "test-secret"
	assert.NoError(t, config.Validate())

	config.MongoURI = ""
	assert.Error(t, config.Validate())
}

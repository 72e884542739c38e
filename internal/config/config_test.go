package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_SECRET", "s3cret")

	logger := zerolog.Nop()
	cfg := Load(&logger)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "moviebase", cfg.MongoDatabase)
	assert.Equal(t, "s3cret", cfg.Token.Secret)
	assert.Equal(t, "moviebase-api", cfg.Token.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.Token.ExpiresIn)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "moviebase_test")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("TOKEN_EXPIRES_IN", "30m")
	t.Setenv("HTTP_ADDR", ":9090")

	logger := zerolog.Nop()
	cfg := Load(&logger)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "moviebase_test", cfg.MongoDatabase)
	assert.Equal(t, 30*time.Minute, cfg.Token.ExpiresIn)
}

func TestValidate_MissingValues(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.validate(), "MONGODB_URI")

	cfg.MongoURI = "mongodb://localhost:27017"
	assert.ErrorContains(t, cfg.validate(), "TOKEN_SECRET")
}

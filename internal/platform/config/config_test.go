package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.APIPort)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, time.Hour, cfg.JWTExp)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.TokenEnvelope)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TOKEN_ENVELOPE", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8081", cfg.APIPort)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.TokenEnvelope)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{StoreDriver: StoreMongo, MongoURI: "mongodb://x", JWTExp: time.Hour}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.StoreDriver = "cassandra"
	assert.Error(t, c.Validate())

	c = base()
	c.StoreDriver = StorePostgres
	assert.Error(t, c.Validate(), "postgres without DSN")

	c = base()
	c.StoreDriver = StoreMemory
	assert.NoError(t, c.Validate())

	c = base()
	c.JWTExp = 0
	assert.Error(t, c.Validate())
}

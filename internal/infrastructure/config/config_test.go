package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "cart:", cfg.Cart.KeyPrefix)
	assert.Equal(t, 5, cfg.Cart.CASMaxRetries)
	assert.Equal(t, "storefront_session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects non-positive cart TTL", func(t *testing.T) {
		cfg := base()
		cfg.Cart.TTL = 0
		assert.Error(t, cfg.validate())
	})

	production := func() *Config {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Session.Secure = true
		cfg.JWT.Secret = "signing-key"
		return cfg
	}

	t.Run("hardened production config is valid", func(t *testing.T) {
		assert.NoError(t, production().validate())
	})

	t.Run("production requires database password", func(t *testing.T) {
		cfg := production()
		cfg.Database.Password = ""
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects in-memory cart store", func(t *testing.T) {
		cfg := production()
		cfg.Cart.InMemory = true
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a JWT secret", func(t *testing.T) {
		cfg := production()
		cfg.JWT.Secret = ""
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "svc",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}

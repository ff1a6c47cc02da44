package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"TRENDLENS_APP_NAME":                os.Getenv("TRENDLENS_APP_NAME"),
		"TRENDLENS_APP_ENV":                 os.Getenv("TRENDLENS_APP_ENV"),
		"TRENDLENS_APP_PORT":                os.Getenv("TRENDLENS_APP_PORT"),
		"TRENDLENS_DATABASE_HOST":           os.Getenv("TRENDLENS_DATABASE_HOST"),
		"TRENDLENS_DATABASE_PORT":           os.Getenv("TRENDLENS_DATABASE_PORT"),
		"TRENDLENS_DATABASE_USER":           os.Getenv("TRENDLENS_DATABASE_USER"),
		"TRENDLENS_DATABASE_PASSWORD":       os.Getenv("TRENDLENS_DATABASE_PASSWORD"),
		"TRENDLENS_DATABASE_DBNAME":         os.Getenv("TRENDLENS_DATABASE_DBNAME"),
		"TRENDLENS_DATABASE_SSLMODE":        os.Getenv("TRENDLENS_DATABASE_SSLMODE"),
		"TRENDLENS_DATABASE_MAX_OPEN_CONNS": os.Getenv("TRENDLENS_DATABASE_MAX_OPEN_CONNS"),
		"TRENDLENS_DATABASE_MAX_IDLE_CONNS": os.Getenv("TRENDLENS_DATABASE_MAX_IDLE_CONNS"),
		"TRENDLENS_SYNC_INTERVAL":           os.Getenv("TRENDLENS_SYNC_INTERVAL"),
		"TRENDLENS_ACTOR_API_KEY":           os.Getenv("TRENDLENS_ACTOR_API_KEY"),
		"TRENDLENS_CACHE_BACKEND":           os.Getenv("TRENDLENS_CACHE_BACKEND"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "trendlens-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "trendlens", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 8*time.Hour, cfg.Sync.Interval)
		assert.Equal(t, 5*time.Second, cfg.Actor.PollInterval)
		assert.Equal(t, 5*time.Minute, cfg.Actor.WaitBudget)
		assert.Equal(t, "memory", cfg.Cache.Backend)
	})

	t.Run("loads values from environment variables with TRENDLENS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_APP_NAME", "test-app")
		os.Setenv("TRENDLENS_APP_ENV", "testing")
		os.Setenv("TRENDLENS_APP_PORT", "9000")
		os.Setenv("TRENDLENS_DATABASE_HOST", "testdb.local")
		os.Setenv("TRENDLENS_DATABASE_PORT", "5433")
		os.Setenv("TRENDLENS_DATABASE_USER", "testuser")
		os.Setenv("TRENDLENS_DATABASE_PASSWORD", "testpass")
		os.Setenv("TRENDLENS_SYNC_INTERVAL", "2h")
		os.Setenv("TRENDLENS_ACTOR_API_KEY", "apify_api_test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 2*time.Hour, cfg.Sync.Interval)
		assert.Equal(t, "apify_api_test", cfg.Actor.APIKey)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("TRENDLENS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"TRENDLENS_APP_ENV":           os.Getenv("TRENDLENS_APP_ENV"),
		"TRENDLENS_DATABASE_PASSWORD": os.Getenv("TRENDLENS_DATABASE_PASSWORD"),
		"TRENDLENS_DATABASE_SSLMODE":  os.Getenv("TRENDLENS_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_APP_ENV", "production")
		os.Setenv("TRENDLENS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_APP_ENV", "production")
		os.Setenv("TRENDLENS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("TRENDLENS_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("TRENDLENS_APP_ENV", "production")
		os.Setenv("TRENDLENS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("TRENDLENS_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvKeys lists every variable these tests touch so each test can
// start from a clean environment.
var configEnvKeys = []string{
	"POLLS_APP_NAME",
	"POLLS_APP_ENV",
	"POLLS_APP_PORT",
	"POLLS_DATABASE_HOST",
	"POLLS_DATABASE_PORT",
	"POLLS_DATABASE_USER",
	"POLLS_DATABASE_PASSWORD",
	"POLLS_DATABASE_DBNAME",
	"POLLS_DATABASE_SSLMODE",
	"POLLS_DATABASE_MAX_OPEN_CONNS",
	"POLLS_DATABASE_MAX_IDLE_CONNS",
	"POLLS_JWT_SECRET",
	"POLLS_HTTP_CORS_ALLOW_ORIGINS",
	"POLLS_VOTING_ALLOW_VOTE_AFTER_CLOSE",
}

// setConfigEnv clears all known config variables, then applies the given
// ones. t.Setenv registers the original values for restore on cleanup.
func setConfigEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		setConfigEnv(t, nil)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "pollwise-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "pollwise", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Voting.AllowVoteAfterClose)
	})

	t.Run("loads values from environment variables with POLLS prefix", func(t *testing.T) {
		setConfigEnv(t, map[string]string{
			"POLLS_APP_NAME":                "test-app",
			"POLLS_APP_ENV":                 "testing",
			"POLLS_APP_PORT":                "9000",
			"POLLS_DATABASE_HOST":           "testdb.local",
			"POLLS_DATABASE_PORT":           "5433",
			"POLLS_DATABASE_USER":           "testuser",
			"POLLS_DATABASE_PASSWORD":       "testpass",
			"POLLS_DATABASE_DBNAME":         "testdb",
			"POLLS_DATABASE_SSLMODE":        "require",
			"POLLS_DATABASE_MAX_OPEN_CONNS": "50",
			"POLLS_DATABASE_MAX_IDLE_CONNS": "10",
		})

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("enables vote-after-close via env var", func(t *testing.T) {
		setConfigEnv(t, map[string]string{
			"POLLS_VOTING_ALLOW_VOTE_AFTER_CLOSE": "true",
		})

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Voting.AllowVoteAfterClose)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		setConfigEnv(t, map[string]string{
			"POLLS_DATABASE_MAX_OPEN_CONNS": "10",
			"POLLS_DATABASE_MAX_IDLE_CONNS": "20",
		})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		setConfigEnv(t, map[string]string{
			"POLLS_DATABASE_MAX_OPEN_CONNS": "0",
		})

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		setConfigEnv(t, map[string]string{
			"POLLS_DATABASE_MAX_IDLE_CONNS": "-1",
		})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	productionBase := map[string]string{
		"POLLS_APP_ENV":           "production",
		"POLLS_JWT_SECRET":        "this-is-a-very-secure-jwt-secret-key-32chars",
		"POLLS_DATABASE_PASSWORD": "secure-password",
		"POLLS_DATABASE_SSLMODE":  "require",
	}

	withoutKey := func(key string) map[string]string {
		vars := make(map[string]string, len(productionBase))
		for k, v := range productionBase {
			if k != key {
				vars[k] = v
			}
		}
		return vars
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		setConfigEnv(t, withoutKey("POLLS_JWT_SECRET"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		vars := withoutKey("POLLS_JWT_SECRET")
		vars["POLLS_JWT_SECRET"] = "short-secret"
		setConfigEnv(t, vars)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setConfigEnv(t, withoutKey("POLLS_DATABASE_PASSWORD"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		vars := withoutKey("POLLS_DATABASE_SSLMODE")
		vars["POLLS_DATABASE_SSLMODE"] = "disable"
		setConfigEnv(t, vars)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		vars := withoutKey("")
		vars["POLLS_HTTP_CORS_ALLOW_ORIGINS"] = "*"
		setConfigEnv(t, vars)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins cannot be '*'")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setConfigEnv(t, productionBase)

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

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "user",
			DBName:  "db",
			SSLMode: "disable",
		}

		assert.NotEmpty(t, cfg.DSN())
	})
}

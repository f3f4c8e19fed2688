package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DATABASE_DSN", "MYSQL_DSN", "CACHE_TTL", "PASSWORD_HASHER", "CORS_ALLOW_ORIGINS", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseDSN, "tcp(localhost:3306)")
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "argon2id", cfg.PasswordHasher)
	assert.Equal(t, "BreakThroughSalt", cfg.LegacyPasswordSalt)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MYSQL_DSN", "legacy-dsn")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESET_DB", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "legacy-dsn", cfg.DatabaseDSN)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEGACY_PASSWORD_SALT=FromFile\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv never overrides existing variables; register cleanup for the one it sets.
	t.Setenv("LEGACY_PASSWORD_SALT", "")
	require.NoError(t, os.Unsetenv("LEGACY_PASSWORD_SALT"))

	cfg := Load()

	assert.Equal(t, "FromFile", cfg.LegacyPasswordSalt)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	assert.Equal(t, 10, getEnvInt("BCRYPT_COST", 10))
}

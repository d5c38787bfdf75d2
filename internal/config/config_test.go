package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_SSLMODE", "DB_PATH",
	"HTTP_ADDRESS", "GRPC_ADDRESS", "METRICS_ENABLED", "LOG_LEVEL", "DEBUG",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_PostgresDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "users")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddress)
	assert.Equal(t, ":50051", cfg.GRPCAddress)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.Debug)
}

func TestFromEnv_PostgresRequiresHostAndName(t *testing.T) {
	clearEnv(t)
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestFromEnv_SQLite(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "test.db")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.DSN())
}

func TestFromEnv_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestDSN_ComposesPostgresURL(t *testing.T) {
	cfg := &Config{
		DBDriver:   DriverPostgres,
		DBUser:     "app",
		DBPassword: "p@ss",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "users",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/users?sslmode=disable", cfg.DSN())
}

func TestString_MasksPassword(t *testing.T) {
	cfg := &Config{DBDriver: DriverPostgres, DBUser: "app", DBPassword: "hunter2", DBHost: "db", DBPort: "5432", DBName: "users"}
	s := cfg.String()
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "masked")
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := strings.Join([]string{
		"DB_DRIVER=sqlite",
		"DB_PATH=from-file.db",
		"LOG_LEVEL=debug",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() {
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("DB_PATH")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

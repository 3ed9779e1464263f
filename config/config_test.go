package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  dsn: \"file::memory:\"\n  driver: sqlite\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "UTC", cfg.Hotel.Location.String())
	assert.Equal(t, 5, cfg.Hotel.SearchLimit)
	assert.Equal(t, 20, cfg.Hotel.LogLimit)
	assert.Equal(t, "X-Tenant-ID", cfg.Auth.TenantHeader)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, "07:00", cfg.Housekeeping.StartDayAt)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "from-env")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(writeConfig(t, "database:\n  dsn: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.DSN)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  driver: oracle\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "hotel:\n  timezone: Mars/Olympus\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

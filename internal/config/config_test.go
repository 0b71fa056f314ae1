package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage_driver: "sqlite"
storage_path: "storage/students.db"
http_server:
  address: "localhost:9090"
  shutdown_timeout: "2s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "storage/students.db", cfg.StoragePath)
	assert.Equal(t, "localhost:9090", cfg.HTTPServer.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTPServer.ShutdownTimeout)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
storage_path: "storage/db.json"
http_server:
  address: "localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverJSON, cfg.StorageDriver)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
storage_path: "storage/db.json"
http_server:
  address: "localhost:8082"
`)
	t.Setenv("STORAGE_PATH", "/tmp/override.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.json", cfg.StoragePath)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := writeConfig(t, `
storage_driver: "postgres"
storage_path: "x"
http_server:
  address: "localhost:8082"
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "unknown storage_driver")
	})

	t.Run("missing required address", func(t *testing.T) {
		path := writeConfig(t, `
storage_path: "storage/db.json"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// An empty directory: defaults apply and the missing file is tolerated.
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Address)
	require.Contains(t, cfg.Database.DSN, "postgres://")
	require.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
database:
  dsn: "postgres://app:app@db:5432/workouts?sslmode=disable"
jwt:
  secret: "file-secret"
  expiration: "30m"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Address)
	require.Equal(t, "file-secret", cfg.JWT.Secret)
	require.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
}

package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
graph:
  uri: bolt://graph-host:7687
  operationTimeout: 10s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph-host:7687", cfg.Graph.URI)
	assert.Equal(t, 10*time.Second, cfg.Graph.OperationTimeout)

	// Everything the file does not mention keeps its default.
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiry)
}

func TestLoadConfig_OverridesAcrossSections(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
  readTimeout: 15s
order:
  maxRetryAttempts: 5
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5, cfg.Order.MaxRetryAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := writeConfigFile(t, `
graph:
  operationTimeout: soon
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

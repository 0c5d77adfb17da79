package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
backend:
  kind: sqlite
  dsn: dashboard.db
  fetch_timeout: 2s
  retry:
    max_retries: 5
caps:
  bar_x: 30
  heatmap_max_cells: 900
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, BackendSQLite, cfg.Backend.Kind)
	assert.Equal(t, 2*time.Second, cfg.Backend.FetchTimeout)
	assert.Equal(t, 5, cfg.Backend.Retry.MaxRetries)
	assert.Equal(t, 30, cfg.Caps.BarX)
	assert.Equal(t, 900, cfg.Caps.HeatmapMaxCells)
	assert.Equal(t, 10, cfg.Caps.BarGroups, "unset keys keep their default")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
backend:
  kind: mongo
  fetch_timeout: 0s
caps:
  bar_x: 0
  page_size: -2
`)
	_, err := Load(path)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
	assert.Contains(t, err.Error(), "mongo")
	assert.Contains(t, err.Error(), "caps.bar_x")
	assert.Contains(t, err.Error(), "caps.page_size")
}

func TestLoadMissingDSN(t *testing.T) {
	_, err := Load(writeConfig(t, "backend:\n  kind: postgres\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.dsn")
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBackend:      "sqlite",
		EnvDSN:          "file:dash.db",
		EnvFetchTimeout: "250ms",
		EnvCacheTTL:     "not-a-duration",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default().ApplyEnv(lookup)
	assert.Equal(t, BackendSQLite, cfg.Backend.Kind)
	assert.Equal(t, "file:dash.db", cfg.Backend.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.Backend.FetchTimeout)
	assert.Equal(t, Default().Backend.CacheTTL, cfg.Backend.CacheTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

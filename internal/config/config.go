// Package config loads the dashboard's YAML configuration.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"labor-dashboard/internal/model"
	"labor-dashboard/pkg/utils"
)

// Backend kinds.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendNone     = "none"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Fallback FallbackConfig `yaml:"fallback"`
	Caps     Caps           `yaml:"caps"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BackendConfig describes the relational data service. FetchTimeout is the
// deadline a fetch races against before the fallback catalog is served.
type BackendConfig struct {
	Kind         string            `yaml:"kind"`
	DSN          string            `yaml:"dsn"`
	FetchTimeout time.Duration     `yaml:"fetch_timeout"`
	CacheTTL     time.Duration     `yaml:"cache_ttl"`
	MaxRows      int               `yaml:"max_rows"`
	Retry        model.RetryConfig `yaml:"retry"`
}

// FallbackConfig points at an optional directory of CSV or JSON files that
// replace the embedded sample datasets, one file per dataset name.
type FallbackConfig struct {
	Dir string `yaml:"dir"`
}

// Caps are the cardinality defaults filled into widgets that leave a bound
// unset.
type Caps struct {
	BarX              int `yaml:"bar_x"`
	BarGroups         int `yaml:"bar_groups"`
	Ranking           int `yaml:"ranking"`
	LineX             int `yaml:"line_x"`
	LineSeries        int `yaml:"line_series"`
	RadarCategories   int `yaml:"radar_categories"`
	HeatmapRows       int `yaml:"heatmap_rows"`
	HeatmapColumns    int `yaml:"heatmap_columns"`
	HeatmapMaxCells   int `yaml:"heatmap_max_cells"`
	ScatterPoints     int `yaml:"scatter_points"`
	ScatterCategories int `yaml:"scatter_categories"`
	TableRows         int `yaml:"table_rows"`
	PageSize          int `yaml:"page_size"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Backend: BackendConfig{
			Kind:         BackendNone,
			FetchTimeout: 5 * time.Second,
			CacheTTL:     time.Minute,
			MaxRows:      5000,
			Retry:        model.DefaultRetryConfig(),
		},
		Caps: Caps{
			BarX:              50,
			BarGroups:         10,
			Ranking:           15,
			LineX:             100,
			LineSeries:        10,
			RadarCategories:   20,
			HeatmapRows:       50,
			HeatmapColumns:    50,
			HeatmapMaxCells:   2500,
			ScatterPoints:     500,
			ScatterCategories: 10,
			TableRows:         1000,
			PageSize:          10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvAddr         = "DASHBOARD_ADDR"
	EnvBackend      = "DASHBOARD_BACKEND"
	EnvDSN          = "DASHBOARD_DSN"
	EnvFetchTimeout = "DASHBOARD_FETCH_TIMEOUT"
	EnvCacheTTL     = "DASHBOARD_CACHE_TTL"
	EnvFallbackDir  = "DASHBOARD_FALLBACK_DIR"
	EnvLogLevel     = "DASHBOARD_LOG_LEVEL"
)

// ApplyEnv returns c with any set environment variable layered on top.
// Unparsable durations keep the configured value.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) Config {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvAddr, &c.Server.Addr)
	set(EnvBackend, &c.Backend.Kind)
	set(EnvDSN, &c.Backend.DSN)
	set(EnvFallbackDir, &c.Fallback.Dir)
	set(EnvLogLevel, &c.Log.Level)
	if v, ok := lookup(EnvFetchTimeout); ok {
		c.Backend.FetchTimeout = utils.ParseDuration(v, c.Backend.FetchTimeout)
	}
	if v, ok := lookup(EnvCacheTTL); ok {
		c.Backend.CacheTTL = utils.ParseDuration(v, c.Backend.CacheTTL)
	}
	return c
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	add := func(format string, args ...interface{}) {
		errs = multierror.Append(errs, fmt.Errorf(format, args...))
	}

	if c.Server.Addr == "" {
		add("server.addr is required")
	}
	switch c.Backend.Kind {
	case BackendNone:
	case BackendPostgres, BackendSQLite:
		if c.Backend.DSN == "" {
			add("backend.dsn is required for backend %q", c.Backend.Kind)
		}
	default:
		add("backend.kind %q must be one of postgres, sqlite, none", c.Backend.Kind)
	}
	if c.Backend.FetchTimeout <= 0 {
		add("backend.fetch_timeout must be positive")
	}
	if c.Backend.CacheTTL < 0 {
		add("backend.cache_ttl must not be negative")
	}
	if c.Backend.MaxRows <= 0 {
		add("backend.max_rows must be positive")
	}
	if c.Backend.Retry.MaxRetries < 0 {
		add("backend.retry.max_retries must not be negative")
	}

	caps := map[string]int{
		"bar_x":              c.Caps.BarX,
		"bar_groups":         c.Caps.BarGroups,
		"ranking":            c.Caps.Ranking,
		"line_x":             c.Caps.LineX,
		"line_series":        c.Caps.LineSeries,
		"radar_categories":   c.Caps.RadarCategories,
		"heatmap_rows":       c.Caps.HeatmapRows,
		"heatmap_columns":    c.Caps.HeatmapColumns,
		"heatmap_max_cells":  c.Caps.HeatmapMaxCells,
		"scatter_points":     c.Caps.ScatterPoints,
		"scatter_categories": c.Caps.ScatterCategories,
		"table_rows":         c.Caps.TableRows,
		"page_size":          c.Caps.PageSize,
	}
	names := lo.Keys(caps)
	sort.Strings(names)
	for _, name := range names {
		if caps[name] <= 0 {
			add("caps.%s must be a positive integer, got %d", name, caps[name])
		}
	}

	return errs.ErrorOrNil()
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.twitter.com/2", cfg.Twitter.BaseURL)
	assert.Equal(t, 100, cfg.Query.PageSize)
	assert.Equal(t, 10, cfg.Query.TopAuthors)
	assert.Equal(t, time.Now().UTC().Year(), cfg.Query.TargetYear)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LIKESTATS_BEARER_TOKEN", "secret")
	t.Setenv("LIKESTATS_TARGET_YEAR", "2022")
	t.Setenv("LIKESTATS_PAGE_SIZE", "50")
	t.Setenv("LIKESTATS_LISTEN_ADDR", ":9090")
	t.Setenv("LIKESTATS_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "secret", cfg.Twitter.BearerToken)
	assert.Equal(t, 2022, cfg.Query.TargetYear)
	assert.Equal(t, 50, cfg.Query.PageSize)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("LIKESTATS_TARGET_YEAR", "not-a-year")
	t.Setenv("LIKESTATS_PAGE_SIZE", "-5")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, DefaultConfig().Query.TargetYear, cfg.Query.TargetYear)
	assert.Equal(t, 100, cfg.Query.PageSize)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
twitter:
  base_url: "https://upstream.example/2"
query:
  target_year: 2021
  page_size: 25
server:
  listen_addr: ":7070"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "https://upstream.example/2", cfg.Twitter.BaseURL)
	assert.Equal(t, 2021, cfg.Query.TargetYear)
	assert.Equal(t, 25, cfg.Query.PageSize)
	assert.Equal(t, ":7070", cfg.Server.ListenAddr)
	// Unset keys keep their defaults.
	assert.Equal(t, 10, cfg.Query.TopAuthors)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0644))

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base URL", func(c *Config) { c.Twitter.BaseURL = "" }},
		{"zero request timeout", func(c *Config) { c.Twitter.RequestTimeout = 0 }},
		{"year before upstream existed", func(c *Config) { c.Query.TargetYear = 1999 }},
		{"page size too small", func(c *Config) { c.Query.PageSize = 1 }},
		{"page size too large", func(c *Config) { c.Query.PageSize = 500 }},
		{"zero top authors", func(c *Config) { c.Query.TopAuthors = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeFlags(map[string]interface{}{
		"listen-addr": ":9999",
		"year":        2020,
		"top-authors": 5,
		"log-level":   "debug",
	})

	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, 2020, cfg.Query.TargetYear)
	assert.Equal(t, 5, cfg.Query.TopAuthors)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestMergeFlagsSkipsZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	original := cfg.Server.ListenAddr

	cfg.MergeFlags(map[string]interface{}{
		"listen-addr": "",
		"year":        0,
	})

	assert.Equal(t, original, cfg.Server.ListenAddr)
	assert.Equal(t, DefaultConfig().Query.TargetYear, cfg.Query.TargetYear)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query:\n  target_year: 2020\n"), 0644))

	t.Setenv("LIKESTATS_TARGET_YEAR", "2021")

	// Flags beat environment, environment beats file.
	cfg, err := Load(path, map[string]interface{}{"year": 2022})
	require.NoError(t, err)
	assert.Equal(t, 2022, cfg.Query.TargetYear)

	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2021, cfg.Query.TargetYear)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the likestats service. It is created
// once per process and must not be mutated between queries.
type Config struct {
	// Upstream API settings
	Twitter TwitterConfig `yaml:"twitter" json:"twitter"`

	// Query settings (target window, page size, top-K)
	Query QueryConfig `yaml:"query" json:"query"`

	// Client-side rate limiting
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry policy for transient upstream failures
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// HTTP server settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TwitterConfig holds upstream API configuration.
type TwitterConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	BearerToken    string        `yaml:"bearer_token" json:"bearer_token"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// QueryConfig holds the parameters of one stats query.
type QueryConfig struct {
	TargetYear int `yaml:"target_year" json:"target_year"`
	PageSize   int `yaml:"page_size" json:"page_size"`
	TopAuthors int `yaml:"top_authors" json:"top_authors"`
}

// RateLimitConfig holds client-side pacing configuration.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int `yaml:"burst_size" json:"burst_size"`
}

// RetryConfig holds the retry policy for transient upstream failures.
// MaxAttempts counts the initial call, so 3 means at most two retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr" json:"listen_addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout" json:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Twitter: TwitterConfig{
			BaseURL:        "https://api.twitter.com/2",
			RequestTimeout: 10 * time.Second,
		},
		Query: QueryConfig{
			TargetYear: time.Now().UTC().Year(),
			PageSize:   100,
			TopAuthors: 10,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			BurstSize:         10,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    30 * time.Second,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv overrides configuration from LIKESTATS_* environment variables.
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("LIKESTATS_BEARER_TOKEN"); token != "" {
		c.Twitter.BearerToken = token
	}
	if baseURL := os.Getenv("LIKESTATS_BASE_URL"); baseURL != "" {
		c.Twitter.BaseURL = baseURL
	}
	if year := os.Getenv("LIKESTATS_TARGET_YEAR"); year != "" {
		if val, err := strconv.Atoi(year); err == nil && val > 0 {
			c.Query.TargetYear = val
		}
	}
	if pageSize := os.Getenv("LIKESTATS_PAGE_SIZE"); pageSize != "" {
		if val, err := strconv.Atoi(pageSize); err == nil && val > 0 {
			c.Query.PageSize = val
		}
	}
	if topK := os.Getenv("LIKESTATS_TOP_AUTHORS"); topK != "" {
		if val, err := strconv.Atoi(topK); err == nil && val > 0 {
			c.Query.TopAuthors = val
		}
	}
	if rpm := os.Getenv("LIKESTATS_REQUESTS_PER_MINUTE"); rpm != "" {
		if val, err := strconv.Atoi(rpm); err == nil && val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}
	if addr := os.Getenv("LIKESTATS_LISTEN_ADDR"); addr != "" {
		c.Server.ListenAddr = addr
	}
	if logLevel := os.Getenv("LIKESTATS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path falls back
// to the standard locations; a missing file there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".likestats.yaml",
		".likestats.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "likestats", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "likestats", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. The bearer token is not
// checked here; it may still be resolved from the keyring after loading.
func (c *Config) Validate() error {
	var errs []error

	if c.Twitter.BaseURL == "" {
		errs = append(errs, errors.New("upstream base URL is required"))
	}
	if c.Twitter.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Query.TargetYear < 2006 {
		errs = append(errs, errors.New("target year must be 2006 or later"))
	}
	if c.Query.PageSize < 5 || c.Query.PageSize > 200 {
		errs = append(errs, errors.New("page size must be between 5 and 200"))
	}
	if c.Query.TopAuthors <= 0 {
		errs = append(errs, errors.New("top authors count must be positive"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.BurstSize <= 0 {
		errs = append(errs, errors.New("burst size must be positive"))
	}

	if c.Retry.MaxAttempts <= 0 {
		errs = append(errs, errors.New("retry max attempts must be positive"))
	}

	if c.Server.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeFlags merges command line flag values into the configuration.
func (c *Config) MergeFlags(flags map[string]interface{}) {
	if addr, ok := flags["listen-addr"].(string); ok && addr != "" {
		c.Server.ListenAddr = addr
	}
	if year, ok := flags["year"].(int); ok && year > 0 {
		c.Query.TargetYear = year
	}
	if topK, ok := flags["top-authors"].(int); ok && topK > 0 {
		c.Query.TopAuthors = topK
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources.
// Precedence: command line flags > environment variables > .env file > config file > defaults.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

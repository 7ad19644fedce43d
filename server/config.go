package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/renderer"
)

// envPrefix prefixes every environment override.
const envPrefix = "OASDOCS_"

// Config holds all configuration for the documentation server.
type Config struct {
	Addr     string `toml:"addr"`
	Spec     string `toml:"spec"`      // Path of the OpenAPI/Swagger document to serve
	BasePath string `toml:"base_path"` // URL path the page is mounted at, e.g. "/docs/"
	Compact  bool   `toml:"compact"`   // Render without the sidebar

	// MaxSpecSize caps the document size in bytes. 0 uses document.DefaultMaxSize.
	MaxSpecSize int64 `toml:"max_spec_size"`

	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`

	Watch      WatchConfig         `toml:"watch"`
	RateLimit  RateLimitConfig     `toml:"rate_limit"`
	Logging    LoggingConfig       `toml:"logging"`
	ClassNames renderer.ClassNames `toml:"class_names"`
}

// WatchConfig configures reloading the document when its file changes.
type WatchConfig struct {
	Enabled  bool   `toml:"enabled"`
	Debounce string `toml:"debounce"` // duration string, default "250ms"
}

// GetDebounce parses and returns the debounce delay.
func (c *WatchConfig) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// RateLimitConfig throttles page requests. A zero rate disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Enabled reports whether requests are throttled.
func (c *RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// GetReadTimeout parses and returns the read timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDurationOr(c.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout parses and returns the write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDurationOr(c.WriteTimeout, 30*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:8080",
		BasePath:     "/",
		ReadTimeout:  "15s",
		WriteTimeout: "30s",
		Watch: WatchConfig{
			Debounce: "250ms",
		},
		RateLimit: RateLimitConfig{
			Burst: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a TOML file (optional) merged over the
// defaults, then applies OASDOCS_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server: failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, &oaserrors.ConfigError{
				Option:  "config file",
				Value:   path,
				Message: "invalid TOML",
				Cause:   err,
			}
		}
	}

	if err := applyEnvOverrides(config, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("ADDR"); ok {
		config.Addr = v
	}
	if v, ok := get("SPEC"); ok {
		config.Spec = v
	}
	if v, ok := get("BASE_PATH"); ok {
		config.BasePath = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		config.Logging.Level = strings.ToLower(v)
	}
	if v, ok := get("LOG_FORMAT"); ok {
		config.Logging.Format = strings.ToLower(v)
	}
	if v, ok := get("WATCH_DEBOUNCE"); ok {
		config.Watch.Debounce = v
	}

	var err error
	if v, ok := get("COMPACT"); ok {
		if config.Compact, err = parseEnvBool("COMPACT", v); err != nil {
			return err
		}
	}
	if v, ok := get("WATCH"); ok {
		if config.Watch.Enabled, err = parseEnvBool("WATCH", v); err != nil {
			return err
		}
	}
	if v, ok := get("RATE_LIMIT"); ok {
		rps, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return envError("RATE_LIMIT", v, "must be a number", perr)
		}
		config.RateLimit.RequestsPerSecond = rps
	}
	if v, ok := get("RATE_BURST"); ok {
		burst, perr := strconv.Atoi(v)
		if perr != nil {
			return envError("RATE_BURST", v, "must be an integer", perr)
		}
		config.RateLimit.Burst = burst
	}
	if v, ok := get("MAX_SPEC_SIZE"); ok {
		size, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return envError("MAX_SPEC_SIZE", v, "must be an integer", perr)
		}
		config.MaxSpecSize = size
	}
	return nil
}

func parseEnvBool(name, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, envError(name, v, "must be a boolean", err)
	}
	return b, nil
}

func envError(name, value, msg string, cause error) error {
	return &oaserrors.ConfigError{Option: envPrefix + name, Value: value, Message: msg, Cause: cause}
}

// Validate checks option combinations that cannot work.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return &oaserrors.ConfigError{Option: "addr", Message: "must not be empty"}
	}
	if strings.ContainsAny(c.BasePath, "?#") {
		return &oaserrors.ConfigError{Option: "base_path", Value: c.BasePath, Message: "must not contain a query or fragment"}
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return &oaserrors.ConfigError{Option: "base_path", Value: c.BasePath, Message: "must start with '/'"}
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return &oaserrors.ConfigError{Option: "rate_limit.requests_per_second", Value: c.RateLimit.RequestsPerSecond, Message: "must not be negative"}
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		return &oaserrors.ConfigError{Option: "rate_limit.burst", Value: c.RateLimit.Burst, Message: "must be at least 1 when rate limiting is enabled"}
	}
	if c.MaxSpecSize < 0 {
		return &oaserrors.ConfigError{Option: "max_spec_size", Value: c.MaxSpecSize, Message: "must not be negative"}
	}
	if c.Watch.Enabled && c.Spec == "" {
		return &oaserrors.ConfigError{Option: "watch", Message: "requires a spec file"}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return &oaserrors.ConfigError{Option: "logging.format", Value: c.Logging.Format, Message: "must be text or json"}
	}
	return nil
}

// mountPath returns the route prefix the page is served under, always
// ending in '/'.
func (c *Config) mountPath() string {
	p := c.BasePath
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheFileTTL time.Duration
	CacheURLTTL  time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Render tool defaults.
	Compact bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDOCS_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("OASDOCS_MCP_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("OASDOCS_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:    envDuration("OASDOCS_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:     envDuration("OASDOCS_MCP_CACHE_URL_TTL", 5*time.Minute),
		MaxInlineSize:   int64(envInt("OASDOCS_MCP_MAX_INLINE_SIZE", 10<<20)),
		AllowPrivateIPs: envBool("OASDOCS_MCP_ALLOW_PRIVATE_IPS", false),
		ListLimit:       envInt("OASDOCS_MCP_LIST_LIMIT", 100),
		MaxLimit:        envInt("OASDOCS_MCP_MAX_LIMIT", 1000),
		Compact:         envBool("OASDOCS_MCP_COMPACT", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

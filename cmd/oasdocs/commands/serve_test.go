package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/oaserrors"
)

// clearServeEnv isolates the tests from OASDOCS_* variables in the environment.
func clearServeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASDOCS_ADDR", "OASDOCS_SPEC", "OASDOCS_BASE_PATH", "OASDOCS_LOG_LEVEL",
		"OASDOCS_LOG_FORMAT", "OASDOCS_WATCH", "OASDOCS_WATCH_DEBOUNCE", "OASDOCS_COMPACT",
		"OASDOCS_RATE_LIMIT", "OASDOCS_RATE_BURST", "OASDOCS_MAX_SPEC_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestServeConfig_Defaults(t *testing.T) {
	clearServeEnv(t)
	fs, flags := SetupServeFlags()
	require.NoError(t, fs.Parse([]string{}))

	cfg, err := ServeConfig(fs, flags)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Empty(t, cfg.Spec)
	assert.False(t, cfg.Watch.Enabled)
}

func TestServeConfig_FlagsOverrideFileAndEnv(t *testing.T) {
	clearServeEnv(t)
	t.Setenv("OASDOCS_ADDR", ":7000")
	t.Setenv("OASDOCS_COMPACT", "true")
	configPath := testutil.WriteTempFile(t, "oasdocs.toml", `
addr = ":6000"
base_path = "/docs/"

[logging]
level = "debug"
`)
	spec := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	fs, flags := SetupServeFlags()
	require.NoError(t, fs.Parse([]string{"--config", configPath, "--addr", ":9000", "--watch", spec}))

	cfg, err := ServeConfig(fs, flags)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr, "flag wins over env and file")
	assert.Equal(t, "/docs/", cfg.BasePath, "file value kept when no flag is set")
	assert.True(t, cfg.Compact, "env value kept when no flag is set")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, spec, cfg.Spec)
}

func TestServeConfig_UnsetFlagsKeepFalse(t *testing.T) {
	clearServeEnv(t)
	t.Setenv("OASDOCS_COMPACT", "true")

	fs, flags := SetupServeFlags()
	require.NoError(t, fs.Parse([]string{"--compact=false"}))

	cfg, err := ServeConfig(fs, flags)
	require.NoError(t, err)
	assert.False(t, cfg.Compact, "an explicit false flag overrides the environment")
}

func TestServeConfig_Invalid(t *testing.T) {
	clearServeEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"watch without spec", []string{"--watch"}},
		{"relative base path", []string{"--base-path", "docs"}},
		{"missing config file", []string{"--config", "/nonexistent/oasdocs.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, flags := SetupServeFlags()
			require.NoError(t, fs.Parse(tt.args))
			_, err := ServeConfig(fs, flags)
			assert.Error(t, err)
		})
	}
}

func TestServeConfig_InvalidIsConfigError(t *testing.T) {
	clearServeEnv(t)
	fs, flags := SetupServeFlags()
	require.NoError(t, fs.Parse([]string{"--watch"}))

	_, err := ServeConfig(fs, flags)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestHandleServe_Errors(t *testing.T) {
	clearServeEnv(t)
	captureStreams(t, nil)

	assert.NoError(t, HandleServe([]string{"--help"}))
	assert.Error(t, HandleServe([]string{"a.yaml", "b.yaml"}))
	assert.Error(t, HandleServe([]string{"--watch"}))
}

func TestHandleMCP_Args(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
	assert.Error(t, HandleMCP([]string{"extra"}))
}

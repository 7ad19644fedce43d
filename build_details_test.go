package oasdocs

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommit(t *testing.T) {
	result := Commit()
	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.GreaterOrEqual(t, len(result), 7, "commit should be a git hash, got: %s", result)
	}
}

func TestBuildTime(t *testing.T) {
	result := BuildTime()
	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.Contains(t, result, "T", "BuildTime() should be RFC3339, got: %s", result)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

// TestUserAgent verifies the "oasdocs/{version}" format used by the server and MCP implementation.
func TestUserAgent(t *testing.T) {
	result := UserAgent()
	assert.Equal(t, "oasdocs/"+Version(), result)
	assert.NotContains(t, result, " ")
	assert.NotContains(t, result, "\n")
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, result, label)
	}
	assert.Contains(t, result, Version())
	assert.Contains(t, result, GoVersion())
}

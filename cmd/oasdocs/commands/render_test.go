package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/oaserrors"
)

func TestSetupRenderFlags(t *testing.T) {
	fs, flags := SetupRenderFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatHTML, flags.Format)
		assert.False(t, flags.Compact)
		assert.False(t, flags.Fragment)
		assert.Empty(t, flags.Query)
		assert.Empty(t, flags.Output)
		assert.False(t, flags.Quiet)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "markdown", "--compact", "--query", "endpoint=get--users", "-o", "out.md", "-q", "api.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, FormatMarkdown, flags.Format)
		assert.True(t, flags.Compact)
		assert.Equal(t, "endpoint=get--users", flags.Query)
		assert.Equal(t, "out.md", flags.Output)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "api.yaml", fs.Arg(0))
	})
}

func TestHandleRender_NoArgs(t *testing.T) {
	captureStreams(t, nil)
	assert.Error(t, HandleRender([]string{}))
}

func TestHandleRender_Help(t *testing.T) {
	assert.NoError(t, HandleRender([]string{"--help"}))
}

func TestHandleRender_HTML(t *testing.T) {
	out, errOut := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	require.NoError(t, HandleRender([]string{"--query", "endpoint=get--users", path}))

	page := out.String()
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Sample Full API</title>")
	assert.Contains(t, page, `id="get--users"`)
	assert.Contains(t, page, `aria-current="true"`)
	assert.Contains(t, errOut.String(), "Operations: 6")
}

func TestHandleRender_Markdown(t *testing.T) {
	out, errOut := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	require.NoError(t, HandleRender([]string{"--format", "markdown", "--compact", "-q", path}))

	md := out.String()
	assert.Contains(t, md, "# Sample Full API")
	assert.Contains(t, md, "List all users")
	assert.NotContains(t, md, "<div")
	assert.Empty(t, errOut.String(), "quiet mode writes no diagnostics")
}

func TestHandleRender_Fragment(t *testing.T) {
	out, _ := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	require.NoError(t, HandleRender([]string{"--fragment", "-q", path}))
	assert.NotContains(t, out.String(), "<html")
	assert.NotContains(t, out.String(), "<style>")
}

func TestHandleRender_Stdin(t *testing.T) {
	out, _ := captureStreams(t, strings.NewReader(testutil.Swagger2YAML))

	require.NoError(t, HandleRender([]string{"-q", "-"}))
	assert.Contains(t, out.String(), "Legacy API")
	assert.Contains(t, out.String(), `id="component-Item"`)
}

func TestHandleRender_OutputFile(t *testing.T) {
	out, errOut := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)
	dest := filepath.Join(t.TempDir(), "docs.html")

	require.NoError(t, HandleRender([]string{"-o", dest, path}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Output written to: "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sample Full API")
}

func TestHandleRender_Errors(t *testing.T) {
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)
	broken := testutil.WriteTempFile(t, "broken.yaml", "openapi: [unclosed")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid format", []string{"--format", "pdf", path}, "invalid format 'pdf'"},
		{"invalid query", []string{"--query", "endpoint=%zz", path}, "invalid query string"},
		{"invalid base path", []string{"--base-path", "/docs?x", path}, "must not contain a query or fragment"},
		{"parse error", []string{broken}, "loading " + broken},
		{"output overwrites input", []string{"-o", path, path}, "would overwrite input file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStreams(t, nil)
			err := HandleRender(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHandleRender_ParseErrorIsTyped(t *testing.T) {
	captureStreams(t, nil)
	broken := testutil.WriteTempFile(t, "broken.yaml", "openapi: [unclosed")

	err := HandleRender([]string{broken})
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}

func TestHandleRender_Glob(t *testing.T) {
	_, errOut := captureStreams(t, nil)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "v2"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sample.yaml"), []byte(testutil.SampleSpecYAML), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "v2", "legacy.yaml"), []byte(testutil.Swagger2YAML), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignored"), 0600))
	dest := filepath.Join(t.TempDir(), "site")

	require.NoError(t, HandleRender([]string{"--format", "markdown", "-o", dest, filepath.Join(src, "**", "*.yaml")}))

	sample, err := os.ReadFile(filepath.Join(dest, "sample.md"))
	require.NoError(t, err)
	assert.Contains(t, string(sample), "Sample Full API")

	legacy, err := os.ReadFile(filepath.Join(dest, "legacy.md"))
	require.NoError(t, err)
	assert.Contains(t, string(legacy), "Legacy API")

	assert.Contains(t, errOut.String(), "Rendered 2 of 2 documents")
}

func TestHandleRender_GlobErrors(t *testing.T) {
	captureStreams(t, nil)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "good.yaml"), []byte(testutil.SampleSpecYAML), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bad.yaml"), []byte("openapi: [unclosed"), 0600))

	t.Run("requires output directory", func(t *testing.T) {
		err := HandleRender([]string{filepath.Join(src, "*.yaml")})
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("no matches", func(t *testing.T) {
		err := HandleRender([]string{"-o", t.TempDir(), filepath.Join(src, "*.json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files match")
	})

	t.Run("failed documents do not stop the batch", func(t *testing.T) {
		dest := t.TempDir()
		err := HandleRender([]string{"-q", "-o", dest, filepath.Join(src, "*.yaml")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yaml")
		assert.FileExists(t, filepath.Join(dest, "good.html"))
		assert.NoFileExists(t, filepath.Join(dest, "bad.html"))
	})
}

func TestIsGlob(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"openapi.yaml", false},
		{"-", false},
		{"https://example.com/api?x=*", false},
		{"specs/*.yaml", true},
		{"specs/**/openapi.{yaml,json}", true},
		{"spec?.yaml", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isGlob(tt.path), tt.path)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery("?endpoint=get--users&theme=dark")
	require.NoError(t, err)
	assert.Equal(t, "get--users", q.Get("endpoint"))
	assert.Equal(t, "dark", q.Get("theme"))

	q, err = parseQuery("")
	require.NoError(t, err)
	assert.Empty(t, q)
}

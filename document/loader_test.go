package document

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithOptions_FilePath(t *testing.T) {
	path := testutil.WriteTempFile(t, "api.yaml", testutil.SampleSpecYAML)

	doc, err := LoadWithOptions(WithFilePath(path))
	require.NoError(t, err)

	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, SourceFormatYAML, doc.Format)
	assert.Equal(t, int64(len(testutil.SampleSpecYAML)), doc.SourceSize)
	assert.Equal(t, testutil.SampleSpecYAML, string(doc.Source()))
	assert.Equal(t, "Sample Full API", doc.Info().Title)
}

func TestLoadWithOptions_Reader(t *testing.T) {
	doc, err := LoadWithOptions(
		WithReader(strings.NewReader(testutil.PetstoreJSON)),
		WithSourceName("stdin"),
	)
	require.NoError(t, err)

	assert.Equal(t, "stdin", doc.SourcePath)
	assert.Equal(t, SourceFormatJSON, doc.Format)
	assert.Equal(t, "Petstore", doc.Info().Title)
}

func TestLoadWithOptions_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.UserAgent(), "oasdocs/"))
		_, _ = w.Write([]byte(testutil.SampleSpecYAML))
	}))
	defer srv.Close()

	doc, err := LoadWithOptions(WithURL(srv.URL + "/openapi.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Sample Full API", doc.Info().Title)
}

func TestLoadWithOptions_URLStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := LoadWithOptions(WithURL(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLoadWithOptions_InputSourceValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no source", nil},
		{"two sources", []Option{WithBytes([]byte("a: 1")), WithFilePath("x.yaml")}},
		{"nil reader", []Option{WithReader(nil)}},
		{"nil bytes", []Option{WithBytes(nil)}},
		{"negative size", []Option{WithBytes([]byte("a: 1")), WithMaxSize(-1)}},
		{"bad url scheme", []Option{WithURL("ftp://example.com/api.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig), "got %v", err)
		})
	}
}

func TestLoadWithOptions_MaxSize(t *testing.T) {
	_, err := LoadWithOptions(WithBytes([]byte(testutil.SampleSpecYAML)), WithMaxSize(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

	_, err = LoadWithOptions(WithReader(strings.NewReader(testutil.SampleSpecYAML)), WithMaxSize(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

	_, err = LoadWithOptions(WithBytes([]byte(testutil.SampleSpecYAML)), WithMaxSize(0))
	assert.NoError(t, err)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("openapi: 3.0.0\npaths:\n  /a: [unclosed\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	var pe *oaserrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "yaml", pe.Format)
	assert.Equal(t, "bytes", pe.Path)
	assert.NotEmpty(t, pe.Detail())
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte("{\n  \"openapi\": \"3.0.0\",\n  \"paths\": }\n"))
	require.Error(t, err)

	var pe *oaserrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "json", pe.Format)
	assert.Equal(t, 3, pe.Line)
	assert.Positive(t, pe.Column)
}

func TestParse_TrailingJSON(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1} {"b": 2}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestParse_EmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "null", "~"} {
		doc, err := Parse([]byte(src))
		require.NoError(t, err, "input %q", src)
		assert.True(t, doc.IsEmpty(), "input %q", src)
		assert.Empty(t, doc.Paths())
	}
}

func TestParse_JSONMatchesYAML(t *testing.T) {
	yamlDoc := mustParse(t, testutil.SampleSpecYAML)
	data, err := yamlDoc.Root().MarshalJSONIndent()
	require.NoError(t, err)

	jsonDoc := mustParse(t, string(data))
	assert.Equal(t, SourceFormatJSON, jsonDoc.Format)

	again, err := jsonDoc.Root().MarshalJSONIndent()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
	assert.Equal(t, yamlDoc.Stats(), jsonDoc.Stats())
}

func TestLoadWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := LoadWithOptions(WithBytes([]byte(testutil.SampleSpecYAML)), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "document loaded")
	assert.Contains(t, buf.String(), "operations=6")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, DetectFormat([]byte("  \n{}")))
	assert.Equal(t, SourceFormatJSON, DetectFormat([]byte("[1]")))
	assert.Equal(t, SourceFormatJSON, DetectFormat([]byte("\xef\xbb\xbf{}")))
	assert.Equal(t, SourceFormatYAML, DetectFormat([]byte("openapi: 3.0.0")))
	assert.Equal(t, SourceFormatUnknown, DetectFormat([]byte(" \n")))
	assert.True(t, IsSpecFile("a/b.YML"))
	assert.False(t, IsSpecFile("a/b.txt"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3<<19))
}

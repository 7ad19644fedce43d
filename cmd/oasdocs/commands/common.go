// Package commands provides CLI command handlers for oasdocs.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/internal/cliutil"
)

// Output format constants
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Streams the commands write to. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateFormat returns an error unless format is one of valid.
func ValidateFormat(format string, valid ...string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(valid, ", "))
}

// OutputStructured writes data as indented JSON or YAML to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", strings.TrimRight(string(out), "\n"))
	return nil
}

// LoadSpec loads the document at specPath: a file, an http(s) URL, or
// StdinFilePath for standard input.
func LoadSpec(specPath string) (*document.Document, error) {
	var opts []document.Option
	switch {
	case specPath == StdinFilePath:
		opts = append(opts, document.WithReader(stdin), document.WithSourceName("<stdin>"))
	case strings.HasPrefix(specPath, "http://") || strings.HasPrefix(specPath, "https://"):
		opts = append(opts, document.WithURL(specPath))
	default:
		opts = append(opts, document.WithFilePath(specPath))
	}
	return document.LoadWithOptions(opts...)
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputSpecHeader outputs the common specification header to stderr:
// oasdocs version, specification path, version and size statistics.
func OutputSpecHeader(specPath string, doc *document.Document) {
	stats := doc.Stats()
	version := doc.SpecVersion()
	if version == "" {
		version = "unknown"
	}
	Writef(stderr, "oasdocs version: %s\n", oasdocs.Version())
	Writef(stderr, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(stderr, "OAS Version: %s\n", version)
	Writef(stderr, "Source Size: %s\n", document.FormatBytes(doc.SourceSize))
	Writef(stderr, "Paths: %d\n", stats.PathCount)
	Writef(stderr, "Operations: %d\n", stats.OperationCount)
	Writef(stderr, "Schemas: %d\n", stats.SchemaCount)
	Writef(stderr, "Load Time: %v\n", doc.LoadTime)
}

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/internal/options"
	"github.com/erraggy/oasdocs/oaserrors"
	"go.yaml.in/yaml/v4"
)

// DefaultMaxSize is the default upper bound on the size of a loaded document.
const DefaultMaxSize int64 = 16 << 20

// DefaultFetchTimeout bounds a WithURL fetch.
const DefaultFetchTimeout = 30 * time.Second

// Option configures a load operation.
type Option func(*loadConfig) error

type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	sourceName string
	maxSize    int64
	httpClient *http.Client
	logger     Logger
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		maxSize: DefaultMaxSize,
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if _, err := options.SingleInputSource(
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithURL", Set: cfg.url != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return cfg, nil
}

// WithFilePath loads the document from a file.
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithURL fetches the document over HTTP(S).
func WithURL(rawURL string) Option {
	return func(cfg *loadConfig) error {
		if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
			return &oaserrors.ConfigError{Option: "WithURL", Value: rawURL, Message: "URL must use http or https"}
		}
		cfg.url = &rawURL
		return nil
	}
}

// WithReader reads the document from r.
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes parses the document from data.
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName sets the name reported in errors and in Document.SourcePath
// for reader and byte inputs.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithMaxSize sets the maximum accepted input size in bytes.
// Default: DefaultMaxSize. Zero disables the limit.
func WithMaxSize(n int64) Option {
	return func(cfg *loadConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxSize", Value: n, Message: "must not be negative"}
		}
		cfg.maxSize = n
		return nil
	}
}

// WithHTTPClient sets the client used by WithURL.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *loadConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets the structured logger.
// Default: NopLogger (no output).
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// Parse is shorthand for LoadWithOptions(WithBytes(data)).
func Parse(data []byte) (*Document, error) {
	return LoadWithOptions(WithBytes(data))
}

// LoadWithOptions reads and parses a document using functional options.
//
// Errors are *oaserrors.ConfigError for invalid options, *oaserrors.ResourceLimitError
// for oversized input, nesting deeper than MaxNestingDepth or excessive YAML aliasing,
// and *oaserrors.ParseError for malformed YAML or JSON, including an alias that refers
// to a node enclosing it.
// Empty input is not an error: it yields a Document whose IsEmpty reports true.
func LoadWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, name, err := cfg.read()
	if err != nil {
		return nil, err
	}

	doc, err := parseBytes(data, name)
	if err != nil {
		cfg.logger.Warn("document load failed", "source", name, "error", err)
		return nil, err
	}
	doc.LoadTime = time.Since(start)

	stats := doc.Stats()
	cfg.logger.Debug("document loaded",
		"source", name,
		"format", string(doc.Format),
		"size", FormatBytes(doc.SourceSize),
		"paths", stats.PathCount,
		"operations", stats.OperationCount,
		"schemas", stats.SchemaCount,
		"duration", doc.LoadTime,
	)
	return doc, nil
}

func (cfg *loadConfig) read() ([]byte, string, error) {
	name := cfg.sourceName
	switch {
	case cfg.filePath != nil:
		if name == "" {
			name = *cfg.filePath
		}
		f, err := os.Open(*cfg.filePath)
		if err != nil {
			return nil, name, fmt.Errorf("document: failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		data, err := cfg.readLimited(f, name)
		return data, name, err

	case cfg.url != nil:
		if name == "" {
			name = *cfg.url
		}
		data, err := cfg.fetch(*cfg.url, name)
		return data, name, err

	case cfg.reader != nil:
		if name == "" {
			name = "reader"
		}
		data, err := cfg.readLimited(cfg.reader, name)
		return data, name, err

	default:
		if name == "" {
			name = "bytes"
		}
		if cfg.maxSize > 0 && int64(len(cfg.bytes)) > cfg.maxSize {
			return nil, name, sizeError(cfg.maxSize, int64(len(cfg.bytes)), name)
		}
		return cfg.bytes, name, nil
	}
}

func (cfg *loadConfig) readLimited(r io.Reader, name string) ([]byte, error) {
	if cfg.maxSize > 0 {
		r = io.LimitReader(r, cfg.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read %s: %w", name, err)
	}
	if cfg.maxSize > 0 && int64(len(data)) > cfg.maxSize {
		return nil, sizeError(cfg.maxSize, 0, name)
	}
	return data, nil
}

func (cfg *loadConfig) fetch(rawURL, name string) ([]byte, error) {
	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("document: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", oasdocs.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document: failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document: failed to fetch URL: HTTP %d", resp.StatusCode)
	}
	return cfg.readLimited(resp.Body, name)
}

func sizeError(limit, actual int64, name string) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "document_size",
		Limit:        limit,
		Actual:       actual,
		Message:      name + " is too large",
	}
}

// parseBytes decodes data into a Document. Blank input produces an empty document.
func parseBytes(data []byte, name string) (*Document, error) {
	doc := &Document{
		SourcePath: name,
		SourceSize: int64(len(data)),
		Format:     DetectFormat(data),
		source:     data,
	}

	switch doc.Format {
	case SourceFormatUnknown:
		return doc, nil

	case SourceFormatJSON:
		raw, err := decodeJSONNode(data)
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			limitErr.Message = name + ": " + limitErr.Message
			return nil, limitErr
		}
		if err != nil {
			line, col := jsonErrorPosition(data, err)
			return nil, &oaserrors.ParseError{
				Path:    name,
				Format:  string(SourceFormatJSON),
				Line:    line,
				Column:  col,
				Message: "invalid JSON",
				Cause:   err,
			}
		}
		doc.root = wrap(raw)

	default:
		var raw yaml.Node
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &oaserrors.ParseError{
				Path:    name,
				Format:  string(SourceFormatYAML),
				Line:    yamlErrorLine(err),
				Message: "invalid YAML",
				Cause:   err,
			}
		}
		if err := checkTree(&raw, name, defaultTreeLimits); err != nil {
			return nil, err
		}
		doc.root = wrap(&raw)
	}
	return doc, nil
}

// jsonErrorPosition converts the byte offset of a JSON syntax error to a 1-based line and column.
func jsonErrorPosition(data []byte, err error) (int, int) {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return 0, 0
	}
	offset := min(int(syntaxErr.Offset), len(data))
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := offset - bytes.LastIndexByte(before, '\n')
	return line, col
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the line number the YAML decoder reports in its message.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

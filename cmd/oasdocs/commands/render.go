package commands

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/renderer"
	"github.com/erraggy/oasdocs/selection"
)

// RenderFlags contains flags for the render command
type RenderFlags struct {
	Format   string
	Compact  bool
	Fragment bool
	Query    string
	BasePath string
	Output   string
	Quiet    bool
}

// SetupRenderFlags creates and configures a FlagSet for the render command.
// Returns the FlagSet and a RenderFlags struct with bound flag variables.
func SetupRenderFlags() (*flag.FlagSet, *RenderFlags) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	flags := &RenderFlags{}

	fs.StringVar(&flags.Format, "format", FormatHTML, "output format: html or markdown")
	fs.BoolVar(&flags.Compact, "compact", false, "render without the sidebar")
	fs.BoolVar(&flags.Fragment, "fragment", false, "write only the page element, without <html> and stylesheet (html format)")
	fs.StringVar(&flags.Query, "query", "", "page query string selecting an entry (e.g. endpoint=get--users)")
	fs.StringVar(&flags.BasePath, "base-path", "", "URL path sidebar links point at (e.g. /docs/)")
	fs.StringVar(&flags.Output, "o", "", "output file path, or directory when rendering a glob (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path, or directory when rendering a glob (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the page, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the page, no diagnostic messages")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs render [flags] <file|url|glob|->\n\n")
		Writef(output, "Render the documentation page of an OpenAPI or Swagger document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs render openapi.yaml > docs.html\n")
		Writef(output, "  oasdocs render --format markdown -o API.md openapi.yaml\n")
		Writef(output, "  oasdocs render --query 'component=User' openapi.yaml\n")
		Writef(output, "  oasdocs render -o site/ 'specs/**/*.yaml'\n")
		Writef(output, "  cat openapi.json | oasdocs render -q -\n")
		Writef(output, "\nGlobs:\n")
		Writef(output, "  A pattern matching several files renders each one into the -o directory,\n")
		Writef(output, "  named after the source file (users.yaml -> users.html).\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    All documents rendered\n")
		Writef(output, "  1    A document could not be loaded or rendered\n")
	}

	return fs, flags
}

// HandleRender executes the render command
func HandleRender(args []string) error {
	fs, flags := SetupRenderFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("render command requires exactly one file path, URL, glob, or '-' for stdin")
	}
	if err := ValidateFormat(flags.Format, FormatHTML, FormatMarkdown); err != nil {
		return err
	}
	query, err := parseQuery(flags.Query)
	if err != nil {
		return err
	}
	opts := []renderer.Option{
		renderer.WithExpanded(!flags.Compact),
		renderer.WithStandalone(!flags.Fragment),
		renderer.WithQuery(query),
	}
	if flags.BasePath != "" {
		opts = append(opts, renderer.WithBasePath(flags.BasePath))
	}

	specPath := fs.Arg(0)
	if isGlob(specPath) {
		return renderGlob(specPath, flags, query, opts)
	}

	doc, err := LoadSpec(specPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	if !flags.Quiet {
		Writef(stderr, "OpenAPI Documentation Renderer\n")
		Writef(stderr, "==============================\n\n")
		OutputSpecHeader(specPath, doc)
		Writef(stderr, "\n")
	}

	data, err := renderPage(doc, query, flags.Format, opts)
	if err != nil {
		return err
	}
	if err := cliutil.WriteOutput(stdout, flags.Output, data, specPath); err != nil {
		return err
	}
	if flags.Output != "" && !flags.Quiet {
		Writef(stderr, "Output written to: %s\n", flags.Output)
	}
	return nil
}

// renderPage renders doc with the selection in query and converts the page
// to the output format.
func renderPage(doc *document.Document, query url.Values, format string, opts []renderer.Option) ([]byte, error) {
	router := selection.NewMemoryRouter(query)
	ctrl := selection.NewController(router)

	page, err := renderer.Render(doc, navigation.Build(doc), ctrl.State(), opts...)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	ctrl.Commit(page)

	if format == FormatMarkdown {
		md, err := page.Markdown()
		if err != nil {
			return nil, fmt.Errorf("converting page to markdown: %w", err)
		}
		return []byte(md + "\n"), nil
	}
	return page.Bytes(), nil
}

// renderGlob renders every file matching pattern into the output directory.
// Every match is attempted; the errors of the ones that fail are joined.
func renderGlob(pattern string, flags *RenderFlags, query url.Values, opts []renderer.Option) error {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return &oaserrors.ConfigError{Option: "glob", Value: pattern, Message: "invalid pattern"}
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expanding %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}
	if flags.Output == "" {
		return &oaserrors.ConfigError{Option: "output", Message: "rendering a glob requires an output directory (use -o)"}
	}
	if err := os.MkdirAll(flags.Output, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ext := ".html"
	if flags.Format == FormatMarkdown {
		ext = ".md"
	}

	var errs []error
	rendered := 0
	for _, match := range matches {
		doc, err := LoadSpec(match)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", match, err))
			continue
		}
		data, err := renderPage(doc, query, flags.Format, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", match, err))
			continue
		}
		name := strings.TrimSuffix(filepath.Base(match), filepath.Ext(match)) + ext
		out := filepath.Join(flags.Output, name)
		if err := cliutil.WriteOutput(stdout, out, data, matches...); err != nil {
			errs = append(errs, err)
			continue
		}
		rendered++
		if !flags.Quiet {
			Writef(stderr, "%s -> %s\n", match, out)
		}
	}

	if !flags.Quiet {
		Writef(stderr, "\nRendered %d of %d documents\n", rendered, len(matches))
	}
	return errors.Join(errs...)
}

// parseQuery parses a page query string, with or without the leading '?'.
func parseQuery(raw string) (url.Values, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "query", Value: raw, Message: "invalid query string", Cause: err}
	}
	return q, nil
}

// isGlob reports whether specPath is a file pattern rather than a single
// path, URL or stdin.
func isGlob(specPath string) bool {
	if specPath == StdinFilePath || strings.Contains(specPath, "://") {
		return false
	}
	return strings.ContainsAny(specPath, "*?[{")
}

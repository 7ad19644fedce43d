// Package oaserrors provides structured error types for the oasdocs library.
//
// Import path: github.com/erraggy/oasdocs/oaserrors
//
// # Error Types
//
//   - [ParseError]: YAML/JSON syntax failures in the input document
//   - [ResourceLimitError]: input exceeded a configured size limit
//   - [RenderError]: page rendering or output failures
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrRender]: Matches any [RenderError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// A parse failure is never partially rendered; callers render the single error
// message instead:
//
//	doc, err := document.LoadWithOptions(document.WithFilePath("api.yaml"))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    _ = renderer.RenderError(w, err)
//	    return
//	}
//
// Extract error details with errors.As():
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Printf("%s (%s): %s\n", parseErr.Path, parseErr.Format, parseErr.Detail())
//	}
package oaserrors

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/renderer"
	"github.com/erraggy/oasdocs/selection"
)

type listTagsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to list"`
	Tag    string    `json:"tag,omitempty"    jsonschema:"Only return the group with this tag name (case-insensitive)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of tag groups to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N tag groups (for pagination)"`
}

type tagGroupOutput struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Endpoints   []navigation.Endpoint `json:"endpoints"`
}

type listTagsOutput struct {
	Title     string           `json:"title"`
	Total     int              `json:"total"`
	Matched   int              `json:"matched"`
	Returned  int              `json:"returned"`
	Endpoints int              `json:"endpoint_count"`
	Tags      []tagGroupOutput `json:"tags,omitempty"`
}

func handleListTags(_ context.Context, _ *mcp.CallToolRequest, input listTagsInput) (*mcp.CallToolResult, any, error) {
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	all := spec.model.Tags
	matched := all
	if input.Tag != "" {
		matched = nil
		for _, g := range all {
			if strings.EqualFold(g.Name, input.Tag) {
				matched = append(matched, g)
			}
		}
	}
	returned := paginate(matched, input.Offset, input.Limit)

	output := listTagsOutput{
		Title:     spec.model.Title,
		Total:     len(all),
		Matched:   len(matched),
		Returned:  len(returned),
		Endpoints: spec.model.EndpointCount(),
		Tags:      makeSlice[tagGroupOutput](len(returned)),
	}
	for _, g := range returned {
		output.Tags = append(output.Tags, tagGroupOutput{
			Name:        g.Name,
			Description: g.Description,
			Endpoints:   g.Endpoints,
		})
	}
	return nil, output, nil
}

type listComponentsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to list"`
	Name   string    `json:"name,omitempty"   jsonschema:"Filter by schema name; supports glob patterns (e.g. *Order*)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of components to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N components (for pagination)"`
}

type listComponentsOutput struct {
	Total      int                    `json:"total"`
	Matched    int                    `json:"matched"`
	Returned   int                    `json:"returned"`
	Components []navigation.Component `json:"components,omitempty"`
}

func handleListComponents(_ context.Context, _ *mcp.CallToolRequest, input listComponentsInput) (*mcp.CallToolResult, any, error) {
	if input.Name != "" && !doublestar.ValidatePattern(input.Name) {
		return errResult(fmt.Errorf("invalid glob pattern %q", input.Name)), nil, nil
	}
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	all := spec.model.Components
	var matched []navigation.Component
	for _, c := range all {
		if matchName(input.Name, c.Name) {
			matched = append(matched, c)
		}
	}
	returned := paginate(matched, input.Offset, input.Limit)

	return nil, listComponentsOutput{
		Total:      len(all),
		Matched:    len(matched),
		Returned:   len(returned),
		Components: returned,
	}, nil
}

// matchName reports whether name matches pattern: a glob when the pattern
// contains glob characters, a case-insensitive comparison otherwise.
func matchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		return strings.EqualFold(pattern, name)
	}
	ok, _ := doublestar.Match(pattern, name)
	return ok
}

// endpointAnchor returns the anchor an endpoint is referenced by: anchor
// itself, or the anchor built from method and path. It returns "" when
// neither form is given.
func endpointAnchor(anchor, method, path string) (string, error) {
	if anchor != "" {
		if method != "" || path != "" {
			return "", fmt.Errorf("use either anchor or method and path, not both")
		}
		return anchor, nil
	}
	if (method == "") != (path == "") {
		return "", fmt.Errorf("method and path must be given together")
	}
	if method == "" {
		return "", nil
	}
	return navigation.EndpointAnchor(strings.ToLower(method), path), nil
}

type getEndpointInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document containing the endpoint"`
	Anchor string    `json:"anchor,omitempty" jsonschema:"Endpoint anchor as returned by list_tags (e.g. get--users--userId-)"`
	Method string    `json:"method,omitempty" jsonschema:"HTTP method (e.g. get); used with path when anchor is empty"`
	Path   string    `json:"path,omitempty"   jsonschema:"Path template (e.g. /users/{userId}); used with method when anchor is empty"`
}

type parameterOutput struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type responseOutput struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

type endpointOutput struct {
	Anchor      string            `json:"anchor"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	OperationID string            `json:"operation_id,omitempty"`
	Tags        []string          `json:"tags"`
	Deprecated  bool              `json:"deprecated,omitempty"`
	Parameters  []parameterOutput `json:"parameters,omitempty"`
	RequestBody string            `json:"request_body,omitempty"`
	Callbacks   string            `json:"callbacks,omitempty"`
	Responses   []responseOutput  `json:"responses,omitempty"`
	Markdown    string            `json:"markdown"`
}

func handleGetEndpoint(_ context.Context, _ *mcp.CallToolRequest, input getEndpointInput) (*mcp.CallToolResult, any, error) {
	anchor, err := endpointAnchor(input.Anchor, input.Method, input.Path)
	if err != nil {
		return errResult(err), nil, nil
	}
	if anchor == "" {
		return errResult(fmt.Errorf("anchor, or method and path, must be provided")), nil, nil
	}
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	op, ok := findOperation(spec.doc, anchor)
	if !ok {
		return errResult(fmt.Errorf("no endpoint with anchor %q", anchor)), nil, nil
	}

	page, err := renderer.Render(spec.doc, spec.model, selection.Endpoint(anchor),
		renderer.WithExpanded(false), renderer.WithStandalone(false))
	if err != nil {
		return errResult(err), nil, nil
	}
	markdown, err := page.SectionMarkdown(anchor)
	if err != nil {
		return errResult(err), nil, nil
	}

	output := endpointOutput{
		Anchor:      anchor,
		Method:      op.Method,
		Path:        op.Path,
		Summary:     op.Summary(),
		Description: op.Description(),
		OperationID: op.OperationID(),
		Tags:        op.Tags(),
		Deprecated:  op.Deprecated(),
		Markdown:    markdown,
	}
	for _, p := range op.Parameters() {
		output.Parameters = append(output.Parameters, parameterOutput{
			Name:        p.Name(),
			In:          p.In(),
			Type:        p.Type(),
			Required:    p.Required(),
			Description: p.Description(),
		})
	}
	if output.RequestBody, err = dumpJSON(op.RequestBody()); err != nil {
		return errResult(err), nil, nil
	}
	if output.Callbacks, err = dumpJSON(op.Callbacks()); err != nil {
		return errResult(err), nil, nil
	}
	for _, r := range op.Responses() {
		output.Responses = append(output.Responses, responseOutput{Code: r.Code, Description: r.Description})
	}
	return nil, output, nil
}

// findOperation returns the operation whose anchor is anchor.
func findOperation(doc *document.Document, anchor string) (document.Operation, bool) {
	for _, item := range doc.Paths() {
		for _, op := range item.Operations() {
			if navigation.EndpointAnchor(op.Method, op.Path) == anchor {
				return op, true
			}
		}
	}
	return document.Operation{}, false
}

func dumpJSON(n *document.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	data, err := n.MarshalJSONIndent()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

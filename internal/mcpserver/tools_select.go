package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/renderer"
)

type selectEndpointInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document the endpoint belongs to"`
	Anchor string    `json:"anchor,omitempty" jsonschema:"Endpoint anchor (e.g. get--users); empty, with no method and path, clears the selection"`
	Method string    `json:"method,omitempty" jsonschema:"HTTP method; used with path when anchor is empty"`
	Path   string    `json:"path,omitempty"   jsonschema:"Path template; used with method when anchor is empty"`
}

type selectResultOutput struct {
	Selection selectionOutput `json:"selection"`
	Found     bool            `json:"found"`
	Target    string          `json:"target,omitempty"`
	Markdown  string          `json:"markdown,omitempty"`
}

func (s *session) handleSelectEndpoint(_ context.Context, _ *mcp.CallToolRequest, input selectEndpointInput) (*mcp.CallToolResult, any, error) {
	anchor, err := endpointAnchor(input.Anchor, input.Method, input.Path)
	if err != nil {
		return errResult(err), nil, nil
	}
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	if anchor == "" {
		s.ctrl.Clear()
		return nil, selectResultOutput{Selection: s.snapshot()}, nil
	}

	state := s.ctrl.SelectEndpoint(anchor)
	navigated := s.takeNavigated()
	_, found := spec.model.Endpoint(anchor)

	output := selectResultOutput{Selection: s.snapshot(), Found: found}
	if !found {
		return nil, output, nil
	}

	page, err := renderer.Render(spec.doc, spec.model, state,
		renderer.WithStandalone(false), renderer.WithQuery(s.router.Query()))
	if err != nil {
		return errResult(err), nil, nil
	}
	if page.ScrollIntoView(navigated) {
		output.Target = page.Target()
	}
	return nil, output, nil
}

type selectComponentInput struct {
	Spec specInput `json:"spec"           jsonschema:"The document the component belongs to"`
	Name string    `json:"name,omitempty" jsonschema:"Component schema name (e.g. User); empty clears the selection"`
}

func (s *session) handleSelectComponent(_ context.Context, _ *mcp.CallToolRequest, input selectComponentInput) (*mcp.CallToolResult, any, error) {
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	if input.Name == "" {
		s.ctrl.Clear()
		return nil, selectResultOutput{Selection: s.snapshot()}, nil
	}

	state := s.ctrl.SelectComponent(input.Name)
	_, found := spec.model.Component(input.Name)

	page, err := renderer.Render(spec.doc, spec.model, state,
		renderer.WithStandalone(false), renderer.WithQuery(s.router.Query()))
	if err != nil {
		return errResult(err), nil, nil
	}

	output := selectResultOutput{Selection: s.snapshot(), Found: found}
	if s.ctrl.Commit(page) {
		output.Target = page.Target()
		if output.Markdown, err = page.SectionMarkdown(output.Target); err != nil {
			return errResult(err), nil, nil
		}
	}
	return nil, output, nil
}

type getSelectionInput struct{}

func (s *session) handleGetSelection(_ context.Context, _ *mcp.CallToolRequest, _ getSelectionInput) (*mcp.CallToolResult, any, error) {
	return nil, s.snapshot(), nil
}

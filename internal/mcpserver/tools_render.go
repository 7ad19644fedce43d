package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/renderer"
)

type renderPageInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The document to render"`
	Format  string    `json:"format,omitempty"  jsonschema:"Output format: markdown (default) or html"`
	Compact *bool     `json:"compact,omitempty" jsonschema:"Render without the sidebar (default from OASDOCS_MCP_COMPACT)"`
}

type renderPageOutput struct {
	Format    string          `json:"format"`
	Selection selectionOutput `json:"selection"`
	Size      int             `json:"size"`
	Page      string          `json:"page"`
}

func (s *session) handleRenderPage(_ context.Context, _ *mcp.CallToolRequest, input renderPageInput) (*mcp.CallToolResult, any, error) {
	format := input.Format
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "html" {
		return errResult(fmt.Errorf("invalid format %q: must be markdown or html", input.Format)), nil, nil
	}
	compact := cfg.Compact
	if input.Compact != nil {
		compact = *input.Compact
	}

	opts := []renderer.Option{
		renderer.WithExpanded(!compact),
		renderer.WithStandalone(format == "html"),
		renderer.WithQuery(s.router.Query()),
	}

	spec, err := input.Spec.resolve()
	if err != nil {
		// The page a browser would show for a document that does not load.
		return errResult(fmt.Errorf("%s%s", renderer.ErrorPrefix, renderer.ErrorMessage(err))), nil, nil
	}

	page, err := renderer.Render(spec.doc, spec.model, s.ctrl.State(), opts...)
	if err != nil {
		return errResult(err), nil, nil
	}
	s.ctrl.Commit(page)

	output := renderPageOutput{Format: format, Selection: s.snapshot()}
	if format == "html" {
		output.Page = page.String()
	} else if output.Page, err = page.Markdown(); err != nil {
		return errResult(err), nil, nil
	}
	output.Size = len(output.Page)
	return nil, output, nil
}

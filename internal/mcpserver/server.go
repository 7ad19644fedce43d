// Package mcpserver implements an MCP (Model Context Protocol) server
// that lets agents browse and render OpenAPI documentation pages over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs"
)

const serverInstructions = `oasdocs MCP server: navigates and renders documentation pages of OpenAPI and Swagger documents.

Every tool takes the document as spec: exactly one of file, url or content.

Navigation: list_tags returns operations grouped by tag with their anchors; list_components returns component schemas. get_endpoint returns one operation by anchor (or method + path).

Selection: the session keeps one selection, mirrored to a page query string (?endpoint=<anchor> or ?component=<name>, never both). select_endpoint and select_component change it; an empty anchor clears it. get_selection reports it. render_page renders the page with the session's selection marked active.

Configuration: OASDOCS_MCP_* environment variables set in your MCP client config.
- OASDOCS_MCP_CACHE_ENABLED (default: true), OASDOCS_MCP_CACHE_MAX_SIZE (10), OASDOCS_MCP_CACHE_FILE_TTL (15m), OASDOCS_MCP_CACHE_URL_TTL (5m)
- OASDOCS_MCP_MAX_INLINE_SIZE (default: 10485760): maximum size in bytes of inline content input
- OASDOCS_MCP_LIST_LIMIT (default: 100): default result limit for list tools; OASDOCS_MCP_MAX_LIMIT (1000) caps an explicit limit
- OASDOCS_MCP_COMPACT (default: false): render without the sidebar by default
- OASDOCS_MCP_ALLOW_PRIVATE_IPS (default: false): allow url inputs on private networks`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdocs", Version: oasdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, newSession())
	return server
}

func registerAllTools(server *mcp.Server, s *session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List the operations of an OpenAPI/Swagger document grouped by tag, in sidebar order. Operations without tags are grouped under \"General\"; an operation with several tags appears under each. Each endpoint carries its anchor, used by get_endpoint and select_endpoint. Filter by tag name; use offset/limit to paginate over tag groups.",
	}, handleListTags)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_components",
		Description: "List the component schemas of a document (components.schemas, or definitions for Swagger 2.0) with their descriptions. Filter by name with a glob pattern (e.g. *Order*). Use offset/limit to paginate.",
	}, handleListComponents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_endpoint",
		Description: "Get one operation by anchor (e.g. get--users--userId-) or by method and path. Returns summary, description, parameters, request body, responses and the endpoint section of the page as Markdown.",
	}, handleGetEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_endpoint",
		Description: "Select an endpoint in the session, by anchor or by method and path. Replaces any component selection. An empty anchor clears the selection. Returns the new selection, the page query string and whether the anchor exists in the document.",
	}, s.handleSelectEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_component",
		Description: "Select a component schema in the session by name. Replaces any endpoint selection. The page is rendered and scrolled to the component section, which is returned as Markdown. An empty name clears the selection.",
	}, s.handleSelectComponent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_selection",
		Description: "Get the session's current selection and the page query string that encodes it.",
	}, s.handleGetSelection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_page",
		Description: "Render the documentation page of a document as Markdown (default) or standalone HTML, with the session's selection marked active in the sidebar. Use compact=true to omit the sidebar. Large documents produce large pages; prefer get_endpoint for single operations.",
	}, s.handleRenderPage)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

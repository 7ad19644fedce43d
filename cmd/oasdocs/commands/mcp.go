package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdocs/internal/mcpserver"
)

// HandleMCP executes the mcp command: an MCP server over stdio that runs
// until the client disconnects.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs mcp\n\n")
		Writef(output, "Run a Model Context Protocol server over stdio. Configure it in your MCP client:\n\n")
		Writef(output, "  {\"mcpServers\": {\"oasdocs\": {\"command\": \"oasdocs\", \"args\": [\"mcp\"]}}}\n\n")
		Writef(output, "Environment:\n")
		Writef(output, "  OASDOCS_MCP_CACHE_ENABLED, OASDOCS_MCP_CACHE_MAX_SIZE, OASDOCS_MCP_CACHE_FILE_TTL,\n")
		Writef(output, "  OASDOCS_MCP_CACHE_URL_TTL, OASDOCS_MCP_MAX_INLINE_SIZE, OASDOCS_MCP_LIST_LIMIT,\n")
		Writef(output, "  OASDOCS_MCP_MAX_LIMIT, OASDOCS_MCP_COMPACT, OASDOCS_MCP_ALLOW_PRIVATE_IPS\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/cmd/oasdocs/commands"
)

var handlers = map[string]func([]string) error{
	"render": commands.HandleRender,
	"nav":    commands.HandleNav,
	"serve":  commands.HandleServe,
	"mcp":    commands.HandleMCP,
}

// commandNames lists every command, for suggestions.
var commandNames = []string{"render", "nav", "serve", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasdocs v%s\n", oasdocs.Version())
		fmt.Println(oasdocs.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the command closest to input, or "" when none is
// within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasdocs - OpenAPI Documentation Pages

Usage:
  oasdocs <command> [options]

Commands:
  render      Render the documentation page of a document as HTML or Markdown
  nav         Print the navigation (tags, endpoints, components) of a document
  serve       Serve the documentation page over HTTP
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasdocs render openapi.yaml > docs.html
  oasdocs render --format markdown --query endpoint=get--users openapi.yaml
  oasdocs nav --format json openapi.yaml
  oasdocs serve --watch openapi.yaml

Run 'oasdocs <command> --help' for more information on a command.`)
}

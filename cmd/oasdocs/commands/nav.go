package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/oasdocs/navigation"
)

// NavFlags contains flags for the nav command
type NavFlags struct {
	Format string
	Quiet  bool
}

// SetupNavFlags creates and configures a FlagSet for the nav command.
// Returns the FlagSet and a NavFlags struct with bound flag variables.
func SetupNavFlags() (*flag.FlagSet, *NavFlags) {
	fs := flag.NewFlagSet("nav", flag.ContinueOnError)
	flags := &NavFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the navigation, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the navigation, no diagnostic messages")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs nav [flags] <file|url|->\n\n")
		Writef(output, "Print the sidebar of a document: operations grouped by tag, and component schemas,\n")
		Writef(output, "with the anchors that select them (?endpoint=<anchor>, ?component=<name>).\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs nav openapi.yaml\n")
		Writef(output, "  oasdocs nav --format json -q openapi.yaml | jq '.tags[].name'\n")
	}

	return fs, flags
}

// HandleNav executes the nav command
func HandleNav(args []string) error {
	fs, flags := SetupNavFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("nav command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	doc, err := LoadSpec(specPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	if !flags.Quiet {
		Writef(stderr, "OpenAPI Documentation Navigation\n")
		Writef(stderr, "================================\n\n")
		OutputSpecHeader(specPath, doc)
		Writef(stderr, "\n")
	}

	model := navigation.Build(doc)
	if flags.Format != FormatText {
		return OutputStructured(stdout, model, flags.Format)
	}
	return writeNavText(model)
}

func writeNavText(model *navigation.Model) error {
	Writef(stdout, "%s\n\n", model.Title)

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	Writef(tw, "Endpoints (%d)\n", model.EndpointCount())
	for _, g := range model.Tags {
		Writef(tw, "%s\t\t\t\n", g.Name)
		for _, ep := range g.Endpoints {
			summary := ep.Summary
			if ep.Deprecated {
				summary = strings.TrimSpace(summary + " (deprecated)")
			}
			Writef(tw, "  %s\t%s\t%s\t#%s\n", strings.ToUpper(ep.Method), ep.Path, summary, ep.Anchor)
		}
	}
	if len(model.Components) > 0 {
		Writef(tw, "\nComponents (%d)\n", len(model.Components))
		for _, c := range model.Components {
			Writef(tw, "  %s\t%s\t\t#%s\n", c.Name, c.Description, navigation.ComponentElementID(c.Anchor))
		}
	}
	return tw.Flush()
}

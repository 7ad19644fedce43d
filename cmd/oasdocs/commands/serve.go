package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdocs/server"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Config   string
	Addr     string
	BasePath string
	Watch    bool
	Compact  bool
	LogLevel string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Config, "config", "", "TOML config file")
	fs.StringVar(&flags.Addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	fs.StringVar(&flags.BasePath, "base-path", "", "URL path the page is served at (default /)")
	fs.BoolVar(&flags.Watch, "watch", false, "reload the document when the file changes")
	fs.BoolVar(&flags.Compact, "compact", false, "render without the sidebar")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, or error")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs serve [flags] [file]\n\n")
		Writef(output, "Serve the documentation page of a document over HTTP.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nRoutes:\n")
		Writef(output, "  GET <base>         documentation page (?endpoint=<anchor> or ?component=<name>)\n")
		Writef(output, "  GET <base>openapi  raw document\n")
		Writef(output, "  GET /healthz       load status\n")
		Writef(output, "  GET /metrics       Prometheus metrics\n")
		Writef(output, "\nConfiguration:\n")
		Writef(output, "  Settings are read from the config file, then OASDOCS_* environment\n")
		Writef(output, "  variables (OASDOCS_ADDR, OASDOCS_SPEC, OASDOCS_WATCH, ...), then flags.\n")
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs serve openapi.yaml\n")
		Writef(output, "  oasdocs serve --watch --addr :9000 openapi.yaml\n")
		Writef(output, "  oasdocs serve --config oasdocs.toml\n")
	}

	return fs, flags
}

// ServeConfig builds the server configuration from the config file, the
// environment and the flags that were set on the command line.
func ServeConfig(fs *flag.FlagSet, flags *ServeFlags) (*server.Config, error) {
	cfg, err := server.LoadConfig(flags.Config)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flags.Addr
		case "base-path":
			cfg.BasePath = flags.BasePath
		case "watch":
			cfg.Watch.Enabled = flags.Watch
		case "compact":
			cfg.Compact = flags.Compact
		case "log-level":
			cfg.Logging.Level = flags.LogLevel
		}
	})
	if fs.NArg() == 1 {
		cfg.Spec = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("serve command accepts at most one file path")
	}

	cfg, err := ServeConfig(fs, flags)
	if err != nil {
		return err
	}

	logger := server.NewLogger(cfg.Logging, stderr)
	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

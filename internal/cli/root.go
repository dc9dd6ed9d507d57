package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/tablediff/internal/config"
)

// RootOptions holds global flags and the resolved configuration for all
// commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config and Logger are set once flags are parsed.
	Config *config.Config
	Logger *slog.Logger

	// TraceIDs defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.ValidFormats

// NewRootCommand creates the root command for the tablediff CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tablediff",
		Short: "tablediff - compare expected tables with actual data",
		Long: `Compare an expected table against a set of actual items and print
a marked, column-aligned report of missing rows and extra items.

Settings are read from tablediff.yaml, TABLEDIFF_* environment variables
and flags, in increasing order of precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default tablediff.yaml)")

	// Add subcommands
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// load resolves the configuration once per invocation. Commands built on
// their own, without the root, keep Format and Verbose as set on opts.
func (o *RootOptions) load(cmd *cobra.Command) error {
	if o.Config != nil {
		return nil
	}

	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if cmd.Flags().Lookup("format") == nil && o.Format != "" {
		cfg.Format = o.Format
	}
	if cmd.Flags().Lookup("verbose") == nil {
		cfg.Verbose = cfg.Verbose || o.Verbose
	}

	o.Config = cfg
	o.Format = cfg.Format
	o.Verbose = cfg.Verbose
	o.Logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	o.Logger.Debug("configuration loaded",
		"file", cfg.File,
		"format", cfg.Format,
		"style", cfg.Style,
		"locale", cfg.Locale)
	return nil
}

func (o *RootOptions) traceID() string {
	if o.TraceIDs == nil {
		o.TraceIDs = UUIDv7Generator{}
	}
	return o.TraceIDs.Generate()
}

// newLogger writes text logs to w: debug and up when verbose, warnings
// and up otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

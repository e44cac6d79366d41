package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string // dotenv file with OPENAI_* settings
	Cache   string // cache location; default depends on Backend
	Backend string // "json" | "sqlite"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidBackends defines the allowed cache backends.
var ValidBackends = []string{BackendJSON, BackendSQLite}

// NewRootCommand creates the root command for the twentyfour CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "twentyfour",
		Short: "Solve the 24 game with a language-model oracle",
		Long: `Breadth-first search over the 24 game, asking a language model for
candidate moves and for feasibility judgments on small states. Judgments
are cached on disk and reused across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !slices.Contains(ValidBackends, opts.Backend) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends))
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", DefaultEnvFile, "dotenv file with OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL")
	cmd.PersistentFlags().StringVar(&opts.Cache, "cache", "", "cache location (default "+DefaultJSONCache+" or "+DefaultSQLiteCache+")")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", BackendJSON, "cache backend (json|sqlite)")

	// Add subcommands
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// configureLogging installs the default slog handler: text on stderr, debug
// level when verbose.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// formatter returns an OutputFormatter bound to cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// Execute runs the CLI with os.Args and returns the process exit code.
// Errors are reported on stderr in the selected format.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format, _ := cmd.PersistentFlags().GetString("format")
	if !slices.Contains(ValidFormats, format) {
		format = "text"
	}
	out := &OutputFormatter{Format: format, Writer: cmd.ErrOrStderr()}
	_ = out.Error(ErrorCode(err), err.Error(), nil)

	return GetExitCode(err)
}

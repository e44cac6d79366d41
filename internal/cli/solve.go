package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/twentyfour/internal/engine"
	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/oracle"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Sets      []string // extra number sets, space separated
	Script    string   // scripted oracle fixture instead of the model
	Threshold int
	Metrics   string // Prometheus textfile written when the command ends

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator

	// Oracle allows overriding the oracle (for testing).
	Oracle oracle.Oracle
}

// SolveOutput is one solved number set.
type SolveOutput struct {
	Numbers ir.Multiset `json:"numbers"`
	Result  *ir.Result  `json:"result"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve [numbers...]",
		Short: "Search for a 24 solution",
		Long: `Search for a sequence of operations that reaches 24.

Positional arguments form one number set; --set adds more. Sets are solved
in order against one shared cache, which is flushed after every finished
search.

Exit codes:
  0 - Every set was solved
  1 - A set had no solution, or the oracle failed
  2 - Command error (bad numbers, missing API key, etc.)

Examples:
  twentyfour solve 4 4 6 8
  twentyfour solve --set "4 4 6 8" --set "1 1 1 1"
  twentyfour solve 4 4 6 8 --backend sqlite --format json
  twentyfour solve 4 4 6 8 --script ./oracle.yaml
  twentyfour solve 4 4 6 8 --metrics-file /var/lib/node_exporter/twentyfour.prom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "number set to solve, e.g. \"4 4 6 8\" (repeatable)")
	cmd.Flags().StringVar(&opts.Script, "script", "", "YAML oracle script to use instead of the model")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", engine.DefaultFeasibilityThreshold, "largest state size judged before expanding")
	cmd.Flags().StringVar(&opts.Metrics, "metrics-file", "", "write Prometheus metrics to this file when done")

	return cmd
}

func runSolve(opts *SolveOptions, args []string, cmd *cobra.Command) error {
	sets, err := parseSets(args, opts.Sets)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid numbers", err)
	}

	o, err := buildOracle(opts)
	if err != nil {
		return err
	}

	if opts.Metrics != "" {
		defer func() {
			if err := writeMetricsFile(opts.Metrics); err != nil {
				slog.Warn("failed to write metrics", "error", err)
			}
		}()
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, err := openWorkspace(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer ws.Close()

	out := opts.formatter(cmd)

	solverOpts := []engine.Option{engine.WithFeasibilityThreshold(opts.Threshold)}
	if opts.RunIDs != nil {
		solverOpts = append(solverOpts, engine.WithRunIDGenerator(opts.RunIDs))
	}
	if ws.store != nil {
		solverOpts = append(solverOpts, engine.WithRecorder(ws.store))
	}
	if opts.Verbose {
		solverOpts = append(solverOpts, engine.WithTracer(engine.TracerFunc(func(ev engine.TraceEvent) {
			out.VerboseLog("[%d] %s %s", ev.Seq, ev.Kind, ev.Key)
		})))
	}
	solver := engine.New(o, ws.cache, solverOpts...)

	results := make([]SolveOutput, 0, len(sets))
	unsolved := 0
	for _, numbers := range sets {
		res, err := solver.Solve(ctx, numbers)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("solve %s aborted", numbers.Spaced()), err)
		}
		if !res.Success {
			unsolved++
		}
		results = append(results, SolveOutput{Numbers: numbers, Result: res})
	}

	if opts.Format == "json" {
		if err := out.Success(results); err != nil {
			return err
		}
	} else {
		writeSolveText(cmd, results)
	}

	if unsolved > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d set(s) unsolved", unsolved, len(sets)))
	}
	return nil
}

// buildOracle picks the injected oracle, a script, or the model adapter.
func buildOracle(opts *SolveOptions) (oracle.Oracle, error) {
	if opts.Oracle != nil {
		return opts.Oracle, nil
	}
	if opts.Script != "" {
		s, err := oracle.LoadScript(opts.Script)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load oracle script", err)
		}
		return s, nil
	}

	cfg, err := LoadConfig(opts.EnvFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o, err := oracle.NewOpenAI(cfg.OracleConfig())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create oracle", err)
	}
	return o, nil
}

// parseSets turns positional numbers and --set values into multisets.
func parseSets(args []string, sets []string) ([]ir.Multiset, error) {
	var out []ir.Multiset
	if len(args) > 0 {
		ms, err := parseNumbers(args)
		if err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	for _, s := range sets {
		ms, err := parseNumbers(strings.Fields(s))
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", s, err)
		}
		out = append(out, ms)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no numbers given")
	}
	return out, nil
}

func parseNumbers(fields []string) (ir.Multiset, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty number set")
	}
	ms := make(ir.Multiset, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", f)
		}
		ms = append(ms, n)
	}
	return ms, nil
}

// writeSolveText prints results for humans.
func writeSolveText(cmd *cobra.Command, results []SolveOutput) {
	w := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !r.Result.Success {
			fmt.Fprintf(w, "✗ %s: %s\n", r.Numbers.Spaced(), r.Result.Message)
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", r.Numbers.Spaced())
		for j, step := range r.Result.Steps {
			fmt.Fprintf(w, "  %d. %s\n", j+1, step)
		}
		fmt.Fprintf(w, "  left: %s\n", r.Result.Final.Spaced())
		fmt.Fprintf(w, "  judgment: %s\n", verdictLine(r.Result.Reason))
	}
}

// verdictLine returns the last line of a judgment, where the
// verdict usually sits, trimmed.
func verdictLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

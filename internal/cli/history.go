package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	RunID string
}

// HistoryEntry is one recorded run.
type HistoryEntry struct {
	Seq     int64       `json:"seq"`
	Numbers ir.Multiset `json:"numbers"`
	Result  ir.Result   `json:"result"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded solve runs",
		Long: `Show solve runs recorded in the SQLite database, newest first.

Run history is only kept by the sqlite backend.

Examples:
  twentyfour history --backend sqlite
  twentyfour history --backend sqlite --limit 5 --format json
  twentyfour history --backend sqlite --run 0192f1c4-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to show (0 = all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run by ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if opts.Backend != BackendSQLite {
		return NewExitError(ExitCommandError, "run history requires --backend sqlite")
	}

	ctx := cmd.Context()
	ws, err := openWorkspace(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer ws.Close()

	var records []store.RunRecord
	if opts.RunID != "" {
		rec, err := ws.store.ReadRun(ctx, opts.RunID)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitFailure, fmt.Sprintf("run not found: %s", opts.RunID))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		records = append(records, rec)
	} else {
		records, err = ws.store.ReadRuns(ctx, opts.Limit)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read runs", err)
		}
	}

	entries := make([]HistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = HistoryEntry{Seq: rec.Seq, Numbers: rec.Numbers, Result: rec.Result}
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, e := range entries {
		status := "✗"
		detail := e.Result.Message
		if e.Result.Success {
			status = "✓"
			detail = fmt.Sprintf("%d step(s), left %s", len(e.Result.Steps), e.Result.Final.Spaced())
		}
		fmt.Fprintf(w, "[%d] %s %s  %s  %s\n", e.Seq, status, e.Result.RunID, e.Numbers.Spaced(), detail)
		if opts.Verbose || opts.RunID != "" {
			for j, step := range e.Result.Steps {
				fmt.Fprintf(w, "       %d. %s\n", j+1, step)
			}
		}
	}
	return nil
}

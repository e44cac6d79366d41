package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/twentyfour/internal/cache"
	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/oracle"
)

// CacheStats summarizes cached judgments by verdict.
type CacheStats struct {
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	Entries    int    `json:"entries"`
	Feasible   int    `json:"feasible"`
	Infeasible int    `json:"infeasible"`
	Ambiguous  int    `json:"ambiguous"`
}

// CacheListEntry is one cached judgment with its verdict.
type CacheListEntry struct {
	Key      ir.Key `json:"key"`
	Verdict  string `json:"verdict"`
	Judgment string `json:"judgment"`
}

// ValidVerdicts defines the allowed values of cache list --verdict.
var ValidVerdicts = []string{
	ir.VerdictFeasible.String(),
	ir.VerdictInfeasible.String(),
	ir.VerdictAmbiguous.String(),
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the judgment cache",
	}

	cmd.AddCommand(newCacheListCommand(rootOpts))
	cmd.AddCommand(newCacheStatsCommand(rootOpts))

	return cmd
}

func newCacheListCommand(opts *RootOptions) *cobra.Command {
	var verdict string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached judgments in key order",
		Long: `List cached judgments in key order.

Examples:
  twentyfour cache list
  twentyfour cache list --verdict infeasible
  twentyfour cache list --backend sqlite --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verdict != "" && !slices.Contains(ValidVerdicts, verdict) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid verdict %q: must be one of %v", verdict, ValidVerdicts))
			}

			ws, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer ws.Close()

			list := make([]CacheListEntry, 0, ws.cache.Len())
			for _, e := range ws.cache.Entries() {
				v := oracle.Classify(e.Judgment).String()
				if verdict != "" && v != verdict {
					continue
				}
				list = append(list, CacheListEntry{Key: e.Key, Verdict: v, Judgment: e.Judgment})
			}

			if opts.Format == "json" {
				return opts.formatter(cmd).Success(list)
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "Cache is empty.")
				return nil
			}
			for _, e := range list {
				fmt.Fprintf(w, "%-16s %-10s %s\n", e.Key, e.Verdict, oneLine(e.Judgment))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&verdict, "verdict", "", "only show feasible, infeasible or ambiguous judgments")

	return cmd
}

func newCacheStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize cached judgments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer ws.Close()

			stats := summarize(ws.cache.Entries())
			stats.Backend = opts.Backend
			stats.Path = opts.cachePath()

			if opts.Format == "json" {
				return opts.formatter(cmd).Success(stats)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cache: %s (%s)\n", stats.Path, stats.Backend)
			fmt.Fprintf(w, "  Entries:    %d\n", stats.Entries)
			fmt.Fprintf(w, "  Feasible:   %d\n", stats.Feasible)
			fmt.Fprintf(w, "  Infeasible: %d\n", stats.Infeasible)
			fmt.Fprintf(w, "  Ambiguous:  %d\n", stats.Ambiguous)
			return nil
		},
	}
}

func summarize(entries []cache.Entry) CacheStats {
	stats := CacheStats{Entries: len(entries)}
	for _, e := range entries {
		switch oracle.Classify(e.Judgment) {
		case ir.VerdictFeasible:
			stats.Feasible++
		case ir.VerdictInfeasible:
			stats.Infeasible++
		default:
			stats.Ambiguous++
		}
	}
	return stats
}

// oneLine collapses whitespace so multi-line judgments fit a table row.
func oneLine(s string) string {
	const max = 80
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

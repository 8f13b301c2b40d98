package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tessera/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	TraceDB string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute a state scenario",
		Long: `Execute a scenario file against a fresh state tree.

The scenario declares an initial state and a list of steps (set, batch,
undo, redo). The final snapshot, history (when enabled), and metrics are
printed when the run completes.

Examples:
  tessera run counter.yaml
  tessera run counter.yaml --trace-db ./trace.db
  tessera run counter.yaml --format json`,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			var store *trace.Store
			if opts.TraceDB != "" {
				store, err = trace.Open(opts.TraceDB)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			result, err := RunScenario(sc, store)
			if err != nil {
				return err
			}
			return writeRunResult(cmd, opts, sc, result)
		},
	}

	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "record mutations into this trace database")
	return cmd
}

func writeRunResult(cmd *cobra.Command, opts *RunOptions, sc *Scenario, result *RunResult) error {
	out := cmd.OutOrStdout()

	if opts.Format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if sc.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	}
	final, err := json.Marshal(result.Final)
	if err != nil {
		return fmt.Errorf("encode final snapshot: %w", err)
	}
	fmt.Fprintf(out, "final: %s\n", final)
	if result.History != nil {
		fmt.Fprintf(out, "history: %d entries\n", len(result.History))
		for i, e := range result.History {
			snap, err := json.Marshal(e.Snapshot)
			if err != nil {
				return fmt.Errorf("encode history entry: %w", err)
			}
			fmt.Fprintf(out, "  %2d %-8s %s\n", i, e.Action, snap)
		}
	}
	fmt.Fprintf(out, "updates: %d  avg: %s\n",
		result.Metrics.Updates, result.Metrics.AverageUpdateTime)
	return nil
}

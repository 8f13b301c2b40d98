package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tessera/trace"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Database string
	Action   string
	Limit    int
}

// InspectResult holds the formatted trace output.
type InspectResult struct {
	Entries []InspectEntry `json:"entries"`
	Stats   InspectStats   `json:"stats"`
}

// InspectEntry is one mutation in the timeline.
type InspectEntry struct {
	Seq     int64  `json:"seq"`
	Action  string `json:"action"`
	Payload string `json:"payload,omitempty"`
	New     string `json:"new"`
}

// InspectStats summarizes a trace.
type InspectStats struct {
	Total   int `json:"total"`
	Updates int `json:"updates"`
	Undos   int `json:"undos"`
	Redos   int `json:"redos"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a mutation trace",
		Long: `Query a mutation trace database.

Shows the committed mutations in logical-clock order with payloads and
resulting snapshots, plus summary statistics.

Examples:
  tessera inspect --db ./trace.db
  tessera inspect --db ./trace.db --action UNDO
  tessera inspect --db ./trace.db --limit 20 --format json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Database == "" {
				return fmt.Errorf("--db is required")
			}
			store, err := trace.Open(opts.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(context.Background(), trace.Filter{
				Action: opts.Action,
				Limit:  opts.Limit,
			})
			if err != nil {
				return err
			}
			return writeInspectResult(cmd, opts, buildInspectResult(entries))
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "trace database path")
	cmd.Flags().StringVar(&opts.Action, "action", "", "filter to one action (UPDATE|UNDO|REDO)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum entries to show (0 = all)")
	return cmd
}

func buildInspectResult(entries []trace.Entry) *InspectResult {
	result := &InspectResult{Entries: make([]InspectEntry, 0, len(entries))}
	for _, e := range entries {
		result.Entries = append(result.Entries, InspectEntry{
			Seq:     e.Seq,
			Action:  e.Action,
			Payload: e.Payload,
			New:     e.New,
		})
		result.Stats.Total++
		switch e.Action {
		case "UPDATE":
			result.Stats.Updates++
		case "UNDO":
			result.Stats.Undos++
		case "REDO":
			result.Stats.Redos++
		}
	}
	return result
}

func writeInspectResult(cmd *cobra.Command, opts *InspectOptions, result *InspectResult) error {
	out := cmd.OutOrStdout()

	if opts.Format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, e := range result.Entries {
		fmt.Fprintf(out, "%4d %-8s payload=%s new=%s\n", e.Seq, e.Action, e.Payload, e.New)
	}
	fmt.Fprintf(out, "total=%d updates=%d undos=%d redos=%d\n",
		result.Stats.Total, result.Stats.Updates, result.Stats.Undos, result.Stats.Redos)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/tessera/trace"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Out      string
}

// ExportedEntry is the msgpack wire shape of one trace entry.
type ExportedEntry struct {
	ID      string `msgpack:"id"`
	Seq     int64  `msgpack:"seq"`
	Action  string `msgpack:"action"`
	Payload string `msgpack:"payload"`
	Old     string `msgpack:"old"`
	New     string `msgpack:"new"`
	AtNanos int64  `msgpack:"at"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a mutation trace to msgpack",
		Long: `Export a trace database as a compact msgpack stream for external
tooling. Entries are emitted in logical-clock order.

Examples:
  tessera export --db ./trace.db --out trace.msgpack`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Database == "" || opts.Out == "" {
				return fmt.Errorf("--db and --out are required")
			}
			store, err := trace.Open(opts.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(context.Background(), trace.Filter{})
			if err != nil {
				return err
			}

			exported := make([]ExportedEntry, len(entries))
			for i, e := range entries {
				exported[i] = ExportedEntry{
					ID:      e.ID,
					Seq:     e.Seq,
					Action:  e.Action,
					Payload: e.Payload,
					Old:     e.Old,
					New:     e.New,
					AtNanos: e.At.UnixNano(),
				}
			}

			data, err := msgpack.Marshal(exported)
			if err != nil {
				return fmt.Errorf("encode trace: %w", err)
			}
			if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(exported), opts.Out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "trace database path")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file path")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"desknotes/internal/gc"
)

var (
	gcNoteID int64
	gcAll    bool
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete attachment files no longer referenced by their note",
	Long: `Runs an orphan collection pass over the attachments directory.

Files newer than GC_GRACE_PERIOD are kept. Do not run this while the
server is writing to the same data directory.`,
	Example: `  desknotes gc --note 12
  desknotes gc --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if gcAll == (gcNoteID > 0) {
			return fmt.Errorf("exactly one of --note or --all is required")
		}

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.close(context.Background()); err != nil {
				slog.Warn("Close failed", "error", err)
			}
		}()

		var res gc.Result
		if gcAll {
			res, err = a.collector.CollectAll(ctx)
		} else {
			res, err = a.collector.CollectOrphans(ctx, gcNoteID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d file(s)\n", res.DeletedCount)
		return err
	},
}

func init() {
	gcCmd.Flags().Int64Var(&gcNoteID, "note", 0, "collect a single note")
	gcCmd.Flags().BoolVar(&gcAll, "all", false, "collect every note")
	rootCmd.AddCommand(gcCmd)
}

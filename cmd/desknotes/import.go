package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"desknotes/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Create a note from every markdown file under a directory",
	Long: `Walks DIR for .md and .markdown files and creates one note per file.
The rendered document becomes the note content. The first level-one
heading becomes the title, or the file name when there is none.

Hidden directories such as .obsidian and .git are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		report, err := importer.New(a.service).ImportDir(ctx, args[0])
		out := cmd.OutOrStdout()
		for _, imp := range report.Imported {
			fmt.Fprintf(out, "%s -> note %d %q\n", imp.File.RelPath, imp.NoteID, imp.Title)
		}
		fmt.Fprintf(out, "imported %d, skipped %d empty, failed %d\n", len(report.Imported), len(report.Skipped), report.Failed)
		return err
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

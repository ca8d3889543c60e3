package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/puzzlekit/wordjudge/internal/config"
	"github.com/puzzlekit/wordjudge/internal/report"
	"github.com/puzzlekit/wordjudge/internal/store"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stored ratings as a scored wordlist",
		Long: `Export writes every stored evaluation as "word;rating" lines, sorted
by word. This is the format crossword construction tools import as a
scored wordlist.

Examples:
  # Export everything to stdout
  wordjudge export

  # Write a scored wordlist file
  wordjudge export -o results.csv

  # Keep only words rated 30 or better
  wordjudge export --min-rating 30 -o good.csv`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write to specified file path instead of stdout")
	cmd.Flags().Int("min-rating", 0,
		"Only export words rated at or above this value")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	minRating, err := cmd.Flags().GetInt("min-rating")
	if err != nil {
		return err
	}

	db, err := store.Open(config.XDGDataDir(), store.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open evaluation store: %w", err)
	}
	defer db.Close()

	evals, err := db.ExportAll(context.Background())
	if err != nil {
		return err
	}

	if minRating > 0 {
		filtered := evals[:0]
		for _, ev := range evals {
			if ev.Rating >= minRating {
				filtered = append(filtered, ev)
			}
		}
		evals = filtered
	}

	output := cmd.OutOrStdout()
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := report.NewCSVWriter(output)
	if _, err := writer.WriteEvaluations(evals); err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(evals), outputPath)
	}

	return nil
}

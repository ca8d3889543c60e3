package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/puzzlekit/wordjudge/internal/config"
	"github.com/puzzlekit/wordjudge/internal/model"
	"github.com/puzzlekit/wordjudge/internal/store"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over all stored evaluations",
		Long: `Stats summarizes every rating stored so far: total count, band
distribution, and the best and worst rated words across all runs.

Examples:
  # Show the summary
  wordjudge stats

  # Show the 25 best and worst words
  wordjudge stats -n 25

  # Machine-readable output
  wordjudge stats --json`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().IntP("top", "n", 10,
		"Number of best and worst words to list")
	cmd.Flags().BoolP("json", "j", false,
		"Output statistics as JSON")

	return cmd
}

// storeStats is the JSON shape of the stats command output.
type storeStats struct {
	Total  int                `json:"total"`
	Bands  map[string]int     `json:"bands"`
	Top    []model.Evaluation `json:"top"`
	Bottom []model.Evaluation `json:"bottom"`
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	topN, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := store.Open(config.XDGDataDir(), store.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open evaluation store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	stats, err := collectStats(ctx, db, topN)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	}

	printStats(cmd, stats)
	return nil
}

// collectStats gathers counts and rankings from the store.
func collectStats(ctx context.Context, db *store.Store, topN int) (*storeStats, error) {
	total, err := db.Count(ctx)
	if err != nil {
		return nil, err
	}

	bandCounts, err := db.CountByBand(ctx)
	if err != nil {
		return nil, err
	}

	top, err := db.TopRated(ctx, topN)
	if err != nil {
		return nil, err
	}

	bottom, err := db.BottomRated(ctx, topN)
	if err != nil {
		return nil, err
	}

	bands := make(map[string]int, len(bandCounts))
	for band, count := range bandCounts {
		bands[band.String()] = count
	}

	return &storeStats{
		Total:  total,
		Bands:  bands,
		Top:    top,
		Bottom: bottom,
	}, nil
}

// printStats writes the human-readable statistics summary.
func printStats(cmd *cobra.Command, stats *storeStats) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Stored evaluations: %d\n\n", stats.Total)

	if stats.Total == 0 {
		fmt.Fprintln(out, "No words evaluated yet. Run 'wordjudge eval <wordlist>' first.")
		return
	}

	fmt.Fprintln(out, "Rating distribution:")
	for _, band := range model.Bands() {
		count := stats.Bands[band.String()]
		bar := strings.Repeat("#", scaleBar(count, stats.Total))
		fmt.Fprintf(out, "  %-10s %6d  %s\n", band.String()+":", count, bar)
	}

	fmt.Fprintln(out, "\nBest words:")
	for _, ev := range stats.Top {
		fmt.Fprintf(out, "  [%2d] %s\n", ev.Rating, ev.Word)
	}

	fmt.Fprintln(out, "\nWorst words:")
	for _, ev := range stats.Bottom {
		fmt.Fprintf(out, "  [%2d] %s\n", ev.Rating, ev.Word)
	}
}

// scaleBar maps a count to a bar length capped at 40 characters.
func scaleBar(count, total int) int {
	if total == 0 {
		return 0
	}
	const maxWidth = 40
	width := count * maxWidth / total
	if count > 0 && width == 0 {
		width = 1
	}
	return width
}

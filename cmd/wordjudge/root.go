// Package main provides the entry point for the wordjudge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wordjudge.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordjudge",
		Short: "Rate crossword wordlist entries with a language model",
		Long: `Wordjudge batch-evaluates crossword wordlist entries using a language model.

Each entry is rated from 10 (garbage fill) to 50 (excellent answer word).
Ratings are stored locally, so interrupted runs resume where they left off,
and results can be exported as a scored wordlist.

Credentials come from the environment: set GEMINI_API_KEY for the Gemini
API, or the usual Google Cloud variables for Vertex AI.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewEvalCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

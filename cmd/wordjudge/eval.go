package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/puzzlekit/wordjudge/internal/config"
	"github.com/puzzlekit/wordjudge/internal/llm"
	"github.com/puzzlekit/wordjudge/internal/log"
	"github.com/puzzlekit/wordjudge/internal/model"
	"github.com/puzzlekit/wordjudge/internal/pipeline"
	"github.com/puzzlekit/wordjudge/internal/report"
	"github.com/puzzlekit/wordjudge/internal/store"
	"github.com/puzzlekit/wordjudge/internal/wordlist"
)

// NewEvalCmd creates the eval command.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [wordlist...]",
		Short: "Evaluate wordlist entries with a language model",
		Long: `Eval rates every entry of the given wordlists from 10 (garbage) to 50
(excellent crossword answer).

Entries are normalized (trimmed, lowercased, deduplicated) before
evaluation. Each successful rating is stored immediately, so an
interrupted run loses nothing: rerunning the same command skips words
that already have a rating and continues with the rest.

Words whose evaluation fails (malformed model output, rating out of
range) are reported but not stored, and are retried on the next run.

Examples:
  # Evaluate a wordlist
  wordjudge eval words.txt

  # Evaluate several lists with higher concurrency
  wordjudge eval -b 8 common.txt themed.txt

  # Trial run on the first 100 words
  wordjudge eval --limit 100 words.txt

  # Re-rate everything from scratch
  wordjudge eval --no-resume words.txt

  # Use a named model profile and write a Markdown report
  wordjudge eval -p careful -m -o report.md words.txt

Configuration file (.wordjudge) example:
  defaults:
    model: gemini-2.5-flash
    temperature: 0.2
  profiles:
    careful:
      model: gemini-2.5-pro
      maxTokens: 2048`,
		Args: cobra.ArbitraryArgs,
		RunE: runEvalCmd,
	}

	// Evaluation behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each model request")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent model requests")
	cmd.Flags().Int("chunk", config.DefaultChunkSize,
		"Number of words per processing chunk")
	cmd.Flags().IntP("limit", "l", 0,
		"Evaluate at most this many words (0 = no limit)")
	cmd.Flags().Bool("no-resume", false,
		"Re-evaluate words that already have a stored rating")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wordjudge in current or home directory)")
	cmd.Flags().StringP("profile", "p", "",
		"Model profile from the configuration file")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output word;rating lines (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runEvalCmd executes the eval command.
func runEvalCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, finishing in-flight requests...")
		cancel()
	}()

	return runEval(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ChunkSize, err = cmd.Flags().GetInt("chunk")
	if err != nil {
		return nil, err
	}

	cfg.Limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}

	noResume, err := cmd.Flags().GetBool("no-resume")
	if err != nil {
		return nil, err
	}
	cfg.Resume = !noResume

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Profile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}

	// Load model profiles from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently fall back to built-in defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Profiles = &config.File{
			Profiles: make(map[string]config.Profile),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.DBDir = config.XDGDataDir()
	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are wordlist paths
	cfg.Wordlists = args

	return cfg, nil
}

// runEval executes the evaluation run.
func runEval(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	profile, ok := cfg.Profiles.GetProfile(cfg.Profile)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownProfile, cfg.Profile)
	}

	logger.Info("starting evaluation run",
		"wordlists", cfg.Wordlists,
		"model", profile.Model,
		"batchSize", cfg.BatchSize,
		"resume", cfg.Resume,
	)

	db, err := store.Open(cfg.DBDir, store.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open evaluation store: %w", err)
	}
	defer db.Close()
	logger.Info("evaluation store opened", "dir", cfg.DBDir)

	evaluator, err := llm.NewGeminiEvaluator(ctx, profile,
		llm.WithTimeout(cfg.Timeout),
		llm.WithGeminiLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluator: %w", err)
	}

	batch := pipeline.NewBatchProcessor(evaluator,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithChunkSize(cfg.ChunkSize),
		pipeline.WithBatchLogger(logger),
	)

	// Persist every rating as it arrives. Saves run on a detached context
	// so that results from in-flight requests still land in the store when
	// the run is being cancelled.
	onResult := func(ctx context.Context, ev *model.Evaluation) error {
		return db.SaveEvaluation(context.WithoutCancel(ctx), ev)
	}

	p := pipeline.New(pipeline.WithLogger(logger))

	loader := wordlist.NewLoader(wordlist.WithLogger(logger))
	p.AddStep(pipeline.NewLoadStep(loader,
		pipeline.WithLimit(cfg.Limit),
		pipeline.WithLoadLogger(logger),
	))

	if cfg.Resume {
		p.AddStep(pipeline.NewResumeStep(db, pipeline.WithResumeLogger(logger)))
	}

	p.AddStep(pipeline.NewEvaluateStep(batch, onResult))
	p.AddStep(pipeline.NewSummaryStep(logger))

	runReport := model.NewRunReport(cfg.Wordlists...)

	err = p.Execute(ctx, runReport)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := db.SaveRun(context.WithoutCancel(ctx), runReport); err != nil {
		logger.Error("failed to save run history", "error", err)
	}

	return outputReport(cfg, runReport)
}

// outputReport writes the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	case cfg.CSVReport:
		writer = report.NewCSVWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(runReport)
	return err
}

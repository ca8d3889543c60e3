package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/puzzlekit/wordjudge/internal/config"
	"github.com/puzzlekit/wordjudge/internal/model"
)

// parseEvalFlags builds a config from the given eval command arguments.
// Flag parsing separates positional wordlist paths from flags, exactly
// as cobra does before invoking RunE.
func parseEvalFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	cmd := NewEvalCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	return buildConfig(cmd, cmd.Flags().Args())
}

// TestBuildConfig tests flag to config mapping.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseEvalFlags(t, "words.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("expected default batch size, got %d", cfg.BatchSize)
		}
		if cfg.ChunkSize != config.DefaultChunkSize {
			t.Errorf("expected default chunk size, got %d", cfg.ChunkSize)
		}
		if !cfg.Resume {
			t.Error("expected resume enabled by default")
		}
		if len(cfg.Wordlists) != 1 || cfg.Wordlists[0] != "words.txt" {
			t.Errorf("unexpected wordlists: %v", cfg.Wordlists)
		}
		if cfg.DBDir == "" {
			t.Error("expected database directory to be set")
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseEvalFlags(t,
			"--batch", "8",
			"--chunk", "16",
			"--limit", "100",
			"--timeout", "30s",
			"--no-resume",
			"words.txt",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BatchSize != 8 {
			t.Errorf("expected batch 8, got %d", cfg.BatchSize)
		}
		if cfg.ChunkSize != 16 {
			t.Errorf("expected chunk 16, got %d", cfg.ChunkSize)
		}
		if cfg.Limit != 100 {
			t.Errorf("expected limit 100, got %d", cfg.Limit)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
		}
		if cfg.Resume {
			t.Error("expected resume disabled")
		}
	})

	t.Run("missing explicit config file fails", func(t *testing.T) {
		t.Parallel()

		_, err := parseEvalFlags(t,
			"--config", filepath.Join(t.TempDir(), "missing.yaml"),
			"words.txt",
		)
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("loads explicit config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "defaults:\n  model: gemini-2.5-pro\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := parseEvalFlags(t, "--config", path, "words.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		profile, ok := cfg.Profiles.GetProfile("")
		if !ok {
			t.Fatal("expected default profile")
		}
		if profile.Model != "gemini-2.5-pro" {
			t.Errorf("expected model from config file, got %q", profile.Model)
		}
	})
}

// TestConfigValidationThroughFlags tests that invalid flag combinations
// are rejected before any run starts.
func TestConfigValidationThroughFlags(t *testing.T) {
	t.Parallel()

	t.Run("no wordlist", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseEvalFlags(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrNoWordlist) {
			t.Errorf("expected ErrNoWordlist, got %v", err)
		}
	})

	t.Run("conflicting report formats", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseEvalFlags(t, "--json", "--markdown", "words.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// TestOutputReport tests report destination and format selection.
func TestOutputReport(t *testing.T) {
	// Not parallel: writes to stdout in the default case are avoided by
	// always configuring a report file.

	runReport := model.NewRunReport("words.txt")
	runReport.Model = "fake-model"
	runReport.AddEvaluation(model.Evaluation{Word: "apple", Analysis: "ok", Rating: 48})

	t.Run("writes CSV report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "results.csv")
		cfg := config.NewConfig()
		cfg.CSVReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, runReport); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}
		if strings.TrimSpace(string(content)) != "apple;48" {
			t.Errorf("unexpected CSV content: %q", string(content))
		}
	})

	t.Run("writes JSON report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, runReport); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}
		if !strings.Contains(string(content), `"model": "fake-model"`) {
			t.Errorf("unexpected JSON content: %q", string(content))
		}
	})

	t.Run("writes Markdown report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, runReport); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}
		if !strings.Contains(string(content), "# Wordjudge Run Report") {
			t.Errorf("unexpected Markdown content: %q", string(content))
		}
	})
}

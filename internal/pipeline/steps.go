package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/puzzlekit/wordjudge/internal/model"
	"github.com/puzzlekit/wordjudge/internal/wordlist"
)

// LoadStep reads the wordlist sources and fills the report's word queue.
type LoadStep struct {
	// loader normalizes and deduplicates wordlist entries.
	loader *wordlist.Loader

	// limit caps the number of words queued; zero means no cap.
	limit int

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLimit caps the number of words queued for evaluation.
// Useful for trial runs against a large wordlist.
func WithLimit(n int) LoadStepOption {
	return func(s *LoadStep) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a step that loads the report's wordlist sources.
func NewLoadStep(loader *wordlist.Loader, opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		loader: loader,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load_wordlists"
}

// Do reads every source file, then queues the normalized unique words.
func (s *LoadStep) Do(ctx context.Context, report *model.RunReport) error {
	words, stats, err := s.loader.Load(report.Sources...)
	if err != nil {
		return fmt.Errorf("failed to load wordlists: %w", err)
	}

	// A wordlist that filters down to nothing is a usage error, not a
	// successful empty run.
	if len(words) == 0 {
		return fmt.Errorf("%w: %s", wordlist.ErrNoEntries, strings.Join(report.Sources, ", "))
	}

	if s.limit > 0 && len(words) > s.limit {
		s.logger.Info("limiting word queue", "loaded", len(words), "limit", s.limit)
		words = words[:s.limit]
	}

	report.Pending = words
	report.TotalWords = len(words)

	s.logger.Info("wordlists loaded",
		"sources", len(report.Sources),
		"lines", stats.LinesRead,
		"queued", len(words),
		"duplicates", stats.Duplicates,
	)

	return nil
}

// ProcessedLister reports which words already have a stored evaluation.
// The store satisfies this; tests substitute a map-backed fake.
type ProcessedLister interface {
	ProcessedWords(ctx context.Context) (map[string]struct{}, error)
}

// ResumeStep drops words that already have a stored evaluation from the
// queue, so interrupted runs pick up where they left off.
type ResumeStep struct {
	// store lists already-evaluated words.
	store ProcessedLister

	// logger for structured logging.
	logger *slog.Logger
}

// ResumeStepOption configures a ResumeStep.
type ResumeStepOption func(*ResumeStep)

// WithResumeLogger sets a custom logger for the resume step.
func WithResumeLogger(logger *slog.Logger) ResumeStepOption {
	return func(s *ResumeStep) {
		s.logger = logger
	}
}

// NewResumeStep creates a step that filters the queue against the store.
func NewResumeStep(store ProcessedLister, opts ...ResumeStepOption) *ResumeStep {
	s := &ResumeStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ResumeStep) Name() string {
	return "resume_filter"
}

// Do removes already-evaluated words from the queue.
func (s *ResumeStep) Do(ctx context.Context, report *model.RunReport) error {
	processed, err := s.store.ProcessedWords(ctx)
	if err != nil {
		return fmt.Errorf("failed to list processed words: %w", err)
	}

	if len(processed) == 0 {
		return nil
	}

	remaining := report.Pending[:0]
	for _, word := range report.Pending {
		if _, ok := processed[word]; ok {
			report.SkippedWords++
			continue
		}
		remaining = append(remaining, word)
	}
	report.Pending = remaining

	s.logger.Info("resume filter applied",
		"skipped", report.SkippedWords,
		"remaining", len(report.Pending),
	)

	return nil
}

// EvaluateStep runs the batch processor over the queued words.
type EvaluateStep struct {
	// batch evaluates the queue concurrently.
	batch *BatchProcessor

	// onResult receives each successful evaluation, typically to persist it.
	onResult ResultFunc

	// logger for structured logging.
	logger *slog.Logger
}

// NewEvaluateStep creates a step that evaluates the report's word queue.
// onResult is invoked for every successful evaluation as it completes.
func NewEvaluateStep(batch *BatchProcessor, onResult ResultFunc) *EvaluateStep {
	return &EvaluateStep{
		batch:    batch,
		onResult: onResult,
		logger:   slog.Default(),
	}
}

// Name returns the step name.
func (s *EvaluateStep) Name() string {
	return "evaluate_words"
}

// Do evaluates every queued word. An interrupted run is not an error:
// the report is marked cancelled and the results collected so far flow
// on to the remaining steps.
func (s *EvaluateStep) Do(ctx context.Context, report *model.RunReport) error {
	report.Model = s.batch.evaluator.Model()

	if len(report.Pending) == 0 {
		s.logger.Info("nothing to evaluate, queue is empty")
		return nil
	}

	err := s.batch.ProcessWords(ctx, report.Pending, report, s.onResult)
	report.Pending = nil

	if err != nil {
		if ctx.Err() != nil {
			report.Cancelled = true
			s.logger.Warn("evaluation interrupted, partial results kept",
				"evaluated", report.EvaluatedCount(),
				"failed", report.FailedCount(),
			)
			return nil
		}
		return fmt.Errorf("batch evaluation failed: %w", err)
	}

	return nil
}

// SummaryStep closes out the run by recording the elapsed time.
type SummaryStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewSummaryStep creates the final pipeline step.
func NewSummaryStep(logger *slog.Logger) *SummaryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryStep{logger: logger}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summarize"
}

// Do records the elapsed time and logs the run totals.
func (s *SummaryStep) Do(ctx context.Context, report *model.RunReport) error {
	report.Elapsed = time.Since(report.StartedAt)

	s.logger.Info("run complete",
		"total_words", report.TotalWords,
		"skipped", report.SkippedWords,
		"evaluated", report.EvaluatedCount(),
		"failed", report.FailedCount(),
		"average_rating", report.AverageRating(),
		"elapsed", report.Elapsed,
		"cancelled", report.Cancelled,
	)

	return nil
}

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/puzzlekit/wordjudge/internal/llm"
	"github.com/puzzlekit/wordjudge/internal/model"
)

// ResultFunc receives each successful evaluation as it completes.
// It is called from the goroutine that produced the result, so it must be
// safe for concurrent use. Returning an error aborts the batch.
type ResultFunc func(ctx context.Context, ev *model.Evaluation) error

// BatchProcessor evaluates many words concurrently against a single
// Evaluator. Words are split into chunks that complete in order; within a
// chunk, up to 'concurrency' requests run simultaneously.
//
// Design decision: Chunking bounds how much work can be lost on a crash:
// a chunk boundary is a natural progress line in the logs, and the result
// callback has already persisted everything in completed chunks. Within a
// chunk we use errgroup.SetLimit rather than a worker pool because it is
// simpler and handles the concurrency limit correctly.
type BatchProcessor struct {
	// evaluator rates individual words.
	evaluator llm.Evaluator

	// concurrency is the maximum number of in-flight requests.
	concurrency int

	// chunkSize is the number of words per chunk.
	chunkSize int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithConcurrency sets the maximum number of concurrent requests.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithChunkSize sets the number of words processed per chunk.
// Default is 32 if not specified.
func WithChunkSize(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.chunkSize = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a BatchProcessor for the given evaluator.
func NewBatchProcessor(evaluator llm.Evaluator, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		evaluator:   evaluator,
		concurrency: 4,
		chunkSize:   32,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessWords evaluates all words, recording successes and failures on the
// report and streaming each success to onResult.
//
// Failed words are recorded on the report and do not abort the batch; they
// stay unstored and remain eligible for the next resumed run. Cancellation
// stops new requests but in-flight results are still delivered.
func (bp *BatchProcessor) ProcessWords(
	ctx context.Context,
	words []string,
	report *model.RunReport,
	onResult ResultFunc,
) error {
	bp.logger.Info("starting batch evaluation",
		"total_words", len(words),
		"concurrency", bp.concurrency,
		"chunk_size", bp.chunkSize,
	)

	startTime := time.Now()
	processed := 0

	for start := 0; start < len(words); start += bp.chunkSize {
		select {
		case <-ctx.Done():
			bp.logger.Warn("batch cancelled",
				"processed", processed,
				"remaining", len(words)-processed,
			)
			return ctx.Err()
		default:
		}

		end := min(start+bp.chunkSize, len(words))
		chunk := words[start:end]

		if err := bp.processChunk(ctx, chunk, report, onResult); err != nil {
			return err
		}

		processed += len(chunk)
		bp.logger.Info("chunk complete",
			"processed", processed,
			"total", len(words),
			"evaluated", report.EvaluatedCount(),
			"failed", report.FailedCount(),
		)
	}

	bp.logger.Info("batch evaluation complete",
		"total_words", len(words),
		"elapsed", time.Since(startTime),
	)

	return nil
}

// processChunk evaluates one chunk of words concurrently.
func (bp *BatchProcessor) processChunk(
	ctx context.Context,
	chunk []string,
	report *model.RunReport,
	onResult ResultFunc,
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for _, word := range chunk {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ev, err := bp.evaluator.Evaluate(ctx, word)
			if err != nil {
				// Cancellation is not a per-word failure; the word stays
				// pending for the next run.
				if ctx.Err() != nil {
					return ctx.Err()
				}

				bp.logger.Warn("evaluation failed", "word", word, "error", err)
				report.AddFailure(word, err)
				return nil
			}

			report.AddEvaluation(*ev)

			bp.logger.Debug("word evaluated",
				"word", word,
				"rating", ev.Rating,
				"band", model.BandOf(ev.Rating).String(),
			)

			return onResult(ctx, ev)
		})
	}

	return g.Wait()
}

package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// fakeEvaluator implements llm.Evaluator for testing.
// Words listed in failWords return an error; everything else succeeds
// with a fixed rating.
type fakeEvaluator struct {
	rating    int
	failWords map[string]bool
	calls     atomic.Int64
}

// Evaluate implements llm.Evaluator.
func (f *fakeEvaluator) Evaluate(_ context.Context, word string) (*model.Evaluation, error) {
	f.calls.Add(1)
	if f.failWords[word] {
		return nil, errors.New("no JSON object in response")
	}
	return &model.Evaluation{
		Word:     word,
		Analysis: "test analysis",
		Rating:   f.rating,
		Model:    "fake-model",
	}, nil
}

// Model implements llm.Evaluator.
func (f *fakeEvaluator) Model() string {
	return "fake-model"
}

// discardResult is a ResultFunc that ignores results.
func discardResult(_ context.Context, _ *model.Evaluation) error {
	return nil
}

// TestBatchProcessorProcessWords tests concurrent batch evaluation.
func TestBatchProcessorProcessWords(t *testing.T) {
	t.Parallel()

	t.Run("evaluates every word", func(t *testing.T) {
		t.Parallel()

		eval := &fakeEvaluator{rating: 30}
		bp := NewBatchProcessor(eval, WithConcurrency(4), WithChunkSize(3))

		words := []string{"one", "two", "three", "four", "five", "six", "seven"}
		report := model.NewRunReport("words.txt")

		if err := bp.ProcessWords(context.Background(), words, report, discardResult); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := report.EvaluatedCount(); got != len(words) {
			t.Errorf("expected %d evaluations, got %d", len(words), got)
		}
		if got := eval.calls.Load(); got != int64(len(words)) {
			t.Errorf("expected %d evaluator calls, got %d", len(words), got)
		}
	})

	t.Run("records failures without aborting", func(t *testing.T) {
		t.Parallel()

		eval := &fakeEvaluator{
			rating:    30,
			failWords: map[string]bool{"bad1": true, "bad2": true},
		}
		bp := NewBatchProcessor(eval, WithChunkSize(2))

		words := []string{"good1", "bad1", "good2", "bad2", "good3"}
		report := model.NewRunReport("words.txt")

		if err := bp.ProcessWords(context.Background(), words, report, discardResult); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := report.EvaluatedCount(); got != 3 {
			t.Errorf("expected 3 evaluations, got %d", got)
		}
		if got := report.FailedCount(); got != 2 {
			t.Errorf("expected 2 failures, got %d", got)
		}
	})

	t.Run("streams each result to the callback", func(t *testing.T) {
		t.Parallel()

		eval := &fakeEvaluator{rating: 42}
		bp := NewBatchProcessor(eval)

		var mu sync.Mutex
		seen := make(map[string]int)
		onResult := func(_ context.Context, ev *model.Evaluation) error {
			mu.Lock()
			defer mu.Unlock()
			seen[ev.Word] = ev.Rating
			return nil
		}

		words := []string{"alpha", "beta", "gamma"}
		report := model.NewRunReport("words.txt")

		if err := bp.ProcessWords(context.Background(), words, report, onResult); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, w := range words {
			if seen[w] != 42 {
				t.Errorf("expected callback for %q with rating 42, got %d", w, seen[w])
			}
		}
	})

	t.Run("callback error aborts the batch", func(t *testing.T) {
		t.Parallel()

		eval := &fakeEvaluator{rating: 30}
		bp := NewBatchProcessor(eval, WithConcurrency(1), WithChunkSize(2))

		saveErr := errors.New("disk full")
		onResult := func(_ context.Context, _ *model.Evaluation) error {
			return saveErr
		}

		words := []string{"one", "two", "three", "four"}
		report := model.NewRunReport("words.txt")

		err := bp.ProcessWords(context.Background(), words, report, onResult)
		if !errors.Is(err, saveErr) {
			t.Errorf("expected callback error, got %v", err)
		}
	})

	t.Run("stops starting new chunks after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		eval := &fakeEvaluator{rating: 30}
		bp := NewBatchProcessor(eval, WithConcurrency(1), WithChunkSize(1))

		// Cancel from within the first result callback.
		onResult := func(_ context.Context, _ *model.Evaluation) error {
			cancel()
			return nil
		}

		words := []string{"one", "two", "three", "four", "five"}
		report := model.NewRunReport("words.txt")

		err := bp.ProcessWords(ctx, words, report, onResult)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if got := eval.calls.Load(); got >= int64(len(words)) {
			t.Errorf("expected cancellation to skip remaining words, got %d calls", got)
		}
		if report.EvaluatedCount() == 0 {
			t.Error("expected results from before cancellation to be kept")
		}
	})

	t.Run("empty word slice completes immediately", func(t *testing.T) {
		t.Parallel()

		eval := &fakeEvaluator{rating: 30}
		bp := NewBatchProcessor(eval)

		report := model.NewRunReport("words.txt")
		if err := bp.ProcessWords(context.Background(), nil, report, discardResult); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eval.calls.Load() != 0 {
			t.Error("expected no evaluator calls")
		}
	})
}

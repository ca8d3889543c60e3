package model

import (
	"errors"
	"sync"
	"testing"
)

// TestNewRunReport verifies the constructor initializes the report state.
func TestNewRunReport(t *testing.T) {
	t.Parallel()

	r := NewRunReport("wordlist.txt", "extra.txt")

	if len(r.Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(r.Sources))
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
	if r.BandCounts == nil {
		t.Error("expected BandCounts map to be initialized")
	}
	if r.EvaluatedCount() != 0 {
		t.Errorf("expected 0 evaluations, got %d", r.EvaluatedCount())
	}
}

// TestRunReportAddEvaluation verifies evaluations update band counts.
func TestRunReportAddEvaluation(t *testing.T) {
	t.Parallel()

	r := NewRunReport("wordlist.txt")
	r.AddEvaluation(Evaluation{Word: "apple", Rating: 50})
	r.AddEvaluation(Evaluation{Word: "asdfg", Rating: 10})
	r.AddEvaluation(Evaluation{Word: "ibex", Rating: 45})

	if r.EvaluatedCount() != 3 {
		t.Errorf("expected 3 evaluations, got %d", r.EvaluatedCount())
	}
	if got := r.BandCount(BandExcellent); got != 2 {
		t.Errorf("expected 2 excellent, got %d", got)
	}
	if got := r.BandCount(BandJunk); got != 1 {
		t.Errorf("expected 1 junk, got %d", got)
	}
}

// TestRunReportAddFailure verifies failures are recorded with reasons.
func TestRunReportAddFailure(t *testing.T) {
	t.Parallel()

	r := NewRunReport("wordlist.txt")
	r.AddFailure("zzxqy", errors.New("rating out of range"))

	if r.FailedCount() != 1 {
		t.Fatalf("expected 1 failure, got %d", r.FailedCount())
	}
	if r.Failures[0].Word != "zzxqy" {
		t.Errorf("expected word zzxqy, got %q", r.Failures[0].Word)
	}
	if r.Failures[0].Reason != "rating out of range" {
		t.Errorf("unexpected reason %q", r.Failures[0].Reason)
	}
}

// TestRunReportAverageRating verifies mean rating computation.
func TestRunReportAverageRating(t *testing.T) {
	t.Parallel()

	t.Run("empty report returns zero", func(t *testing.T) {
		t.Parallel()
		r := NewRunReport("wordlist.txt")
		if avg := r.AverageRating(); avg != 0 {
			t.Errorf("expected 0, got %f", avg)
		}
	})

	t.Run("computes mean of ratings", func(t *testing.T) {
		t.Parallel()
		r := NewRunReport("wordlist.txt")
		r.AddEvaluation(Evaluation{Word: "a", Rating: 20})
		r.AddEvaluation(Evaluation{Word: "b", Rating: 40})
		if avg := r.AverageRating(); avg != 30 {
			t.Errorf("expected 30, got %f", avg)
		}
	})
}

// TestRunReportConcurrentAccess verifies the report is safe under
// concurrent result callbacks, which is how the batch processor uses it.
func TestRunReportConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRunReport("wordlist.txt")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.AddEvaluation(Evaluation{Word: "word", Rating: 30})
		}()
		go func() {
			defer wg.Done()
			r.AddFailure("word", errors.New("boom"))
		}()
	}
	wg.Wait()

	if r.EvaluatedCount() != 50 {
		t.Errorf("expected 50 evaluations, got %d", r.EvaluatedCount())
	}
	if r.FailedCount() != 50 {
		t.Errorf("expected 50 failures, got %d", r.FailedCount())
	}
	if got := r.BandCount(BandFair); got != 50 {
		t.Errorf("expected 50 fair, got %d", got)
	}
}

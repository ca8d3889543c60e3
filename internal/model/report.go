package model

import (
	"encoding/json"
	"sync"
	"time"
)

// Failure records a word that could not be evaluated, together with the
// reason. Failures are reported but never stored; the word stays eligible
// for the next resumed run.
type Failure struct {
	// Word is the wordlist entry that failed.
	Word string `json:"word"`

	// Reason is the error message describing why evaluation failed.
	Reason string `json:"reason"`
}

// RunReport accumulates the state and results of a single evaluation run.
// It is created once per invocation, passed through the pipeline steps, and
// finally handed to the report writers.
//
// Design decision: The report carries the word queue (Pending) in addition
// to results because pipeline steps communicate exclusively through the
// report. LoadStep fills Pending, ResumeStep shrinks it, EvaluateStep
// consumes it. This keeps steps decoupled from each other.
type RunReport struct {
	// Sources are the wordlist file paths this run evaluated.
	Sources []string `json:"sources"`

	// Model is the name of the language model used for this run.
	Model string `json:"model"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the total run duration, set by the summary step.
	Elapsed time.Duration `json:"elapsed"`

	// TotalWords is the number of unique words loaded from the sources.
	TotalWords int `json:"totalWords"`

	// SkippedWords is the number of words dropped by resume because they
	// already had a stored evaluation.
	SkippedWords int `json:"skippedWords"`

	// Pending is the queue of words still to be evaluated.
	// Steps consume this; it is empty once evaluation finishes.
	Pending []string `json:"-"`

	// Evaluations holds all successful evaluations from this run.
	Evaluations []Evaluation `json:"evaluations"`

	// Failures holds words whose evaluation failed, with reasons.
	Failures []Failure `json:"failures,omitempty"`

	// BandCounts maps band names to the number of evaluations in each band.
	BandCounts map[string]int `json:"bandCounts"`

	// Cancelled is true when the run was interrupted before completion.
	// Results collected up to that point are still valid.
	Cancelled bool `json:"cancelled,omitempty"`

	// mu guards Evaluations, Failures, and BandCounts, which are appended
	// to concurrently by the batch processor's result callbacks.
	mu sync.Mutex
}

// MarshalJSON renders Elapsed as a duration string (e.g. "1m30s") instead
// of raw nanoseconds, keeping the JSON report readable for consumers.
func (r *RunReport) MarshalJSON() ([]byte, error) {
	type alias RunReport
	return json.Marshal(&struct {
		*alias
		Elapsed string `json:"elapsed"`
	}{
		alias:   (*alias)(r),
		Elapsed: r.Elapsed.String(),
	})
}

// NewRunReport creates a RunReport for the given wordlist sources.
func NewRunReport(sources ...string) *RunReport {
	return &RunReport{
		Sources:    sources,
		StartedAt:  time.Now(),
		BandCounts: make(map[string]int),
	}
}

// AddEvaluation records a successful evaluation. Safe for concurrent use.
func (r *RunReport) AddEvaluation(ev Evaluation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Evaluations = append(r.Evaluations, ev)
	r.BandCounts[BandOf(ev.Rating).String()]++
}

// AddFailure records a failed word. Safe for concurrent use.
func (r *RunReport) AddFailure(word string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Word: word, Reason: err.Error()})
}

// EvaluatedCount returns the number of successful evaluations so far.
func (r *RunReport) EvaluatedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Evaluations)
}

// FailedCount returns the number of failed words so far.
func (r *RunReport) FailedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Failures)
}

// BandCount returns the number of evaluations in the given band.
func (r *RunReport) BandCount(b Band) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.BandCounts[b.String()]
}

// AverageRating returns the mean rating of all successful evaluations,
// or zero when there are none.
func (r *RunReport) AverageRating() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Evaluations) == 0 {
		return 0
	}
	sum := 0
	for _, ev := range r.Evaluations {
		sum += ev.Rating
	}
	return float64(sum) / float64(len(r.Evaluations))
}

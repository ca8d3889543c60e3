package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// jsonBlockPattern locates the first brace-delimited block in a reply.
// The response schema should yield bare JSON, but models occasionally wrap
// the object in prose or a code fence; the fallback recovers those replies.
var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseEvaluation extracts a validated Evaluation from the model's reply
// for the given input word.
//
// The returned evaluation always carries the input word: when the model
// echoes a variant spelling back, the input word wins, because it is the
// key the store and the resume logic agree on.
func ParseEvaluation(raw, word string) (*model.Evaluation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyResponse
	}

	var ev model.Evaluation
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		// Fall back to extracting the first JSON block from the reply.
		block := jsonBlockPattern.FindString(raw)
		if block == "" {
			return nil, fmt.Errorf("%w: %q", ErrNoJSON, truncate(raw, 120))
		}
		if err := json.Unmarshal([]byte(block), &ev); err != nil {
			return nil, fmt.Errorf("failed to parse evaluation JSON: %w", err)
		}
	}

	if !model.ValidRating(ev.Rating) {
		return nil, fmt.Errorf("%w: %d (expected %d-%d)",
			ErrRatingOutOfRange, ev.Rating, model.MinRating, model.MaxRating)
	}

	ev.Analysis = strings.TrimSpace(ev.Analysis)
	if ev.Analysis == "" {
		return nil, ErrMissingAnalysis
	}

	ev.Word = word
	return &ev, nil
}

// truncate shortens s for inclusion in error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

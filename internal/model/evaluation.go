package model

import "time"

// Rating bounds for word evaluations. The language model is instructed to
// rate each word on this scale, and responses outside the range are rejected
// during parsing rather than clamped.
const (
	// MinRating is the lowest possible quality score. It is assigned to
	// entries that look like typos, random strings, or unknown tokens.
	MinRating = 10

	// MaxRating is the highest possible quality score. It is assigned to
	// common, interesting words that make good crossword fill.
	MaxRating = 50
)

// Evaluation is a single word's quality assessment as returned by the
// language model. The JSON tags match the response schema the model is
// asked to produce: {"word": ..., "analysis": ..., "rating": ...}.
type Evaluation struct {
	// Word is the evaluated wordlist entry. It is always the normalized
	// input word, even when the model echoes a variant spelling back.
	Word string `json:"word"`

	// Analysis is the model's short reasoning for the rating.
	Analysis string `json:"analysis"`

	// Rating is the quality score in [MinRating, MaxRating].
	Rating int `json:"rating"`

	// Model identifies which model produced this evaluation.
	// Not part of the model's response; filled in by the client.
	Model string `json:"model,omitempty"`

	// EvaluatedAt records when the evaluation completed.
	// Not part of the model's response; filled in by the client.
	EvaluatedAt time.Time `json:"evaluatedAt,omitempty"`
}

// ValidRating reports whether r is within the accepted rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

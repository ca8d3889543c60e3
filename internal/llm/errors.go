package llm

import "errors"

// Response parsing errors.
// These errors are returned when the model's reply cannot be turned into
// a valid evaluation. They are recorded per word in the run report; a
// parse failure never aborts the batch.
var (
	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrNoJSON is returned when no JSON object could be located in the
	// model's reply, even with the fallback block extraction.
	ErrNoJSON = errors.New("no JSON object found in model response")

	// ErrRatingOutOfRange is returned when the parsed rating falls outside
	// the accepted 10-50 scale. Out-of-range ratings are rejected rather
	// than clamped so that bad responses stay visible.
	ErrRatingOutOfRange = errors.New("rating out of range")

	// ErrMissingAnalysis is returned when the reply carries no analysis
	// text. An unexplained rating is treated as a malformed response.
	ErrMissingAnalysis = errors.New("model response missing analysis")
)

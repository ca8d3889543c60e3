package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoWordlist is returned when no wordlist file is specified.
	ErrNoWordlist = errors.New("no wordlist specified: provide one or more wordlist files as arguments")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent requests, effectively
	// stopping the evaluation.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidChunkSize is returned when the chunk size is not positive.
	// Words are grouped into chunks for progress reporting; an empty chunk
	// makes no sense.
	ErrInvalidChunkSize = errors.New("invalid chunk size: must be positive")

	// ErrInvalidLimit is returned when the word limit is negative.
	// Use 0 to evaluate the whole wordlist.
	ErrInvalidLimit = errors.New("invalid limit: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown, and --csv is specified. Only one output format can be
	// used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown, and --csv cannot be combined")

	// ErrUnknownProfile is returned when the requested model profile does
	// not exist in the configuration file.
	ErrUnknownProfile = errors.New("unknown model profile")
)

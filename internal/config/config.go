package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The evaluation defaults mirror the sampling parameters the tool has
// always used for consistent ratings; the throughput defaults are chosen
// to stay well inside typical API rate limits.
const (
	// DefaultModel is the language model used for evaluations.
	// A small, fast model is sufficient for word-quality judgments and keeps
	// large wordlist runs affordable.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature keeps sampling low so that ratings are consistent
	// across runs. Higher temperatures make the same word score differently
	// from one run to the next.
	DefaultTemperature = 0.2

	// DefaultTopP is the nucleus sampling parameter paired with the low
	// temperature above.
	DefaultTopP = 0.95

	// DefaultMaxTokens bounds the model's response. The analysis is short,
	// but chain-of-thought reasoning before the JSON needs headroom.
	DefaultMaxTokens = 1024

	// DefaultTimeout is the per-request timeout. Generation latency varies
	// with model load, so the timeout is generous.
	DefaultTimeout = 120 * time.Second

	// DefaultBatchSize is the number of concurrent evaluation requests.
	// Higher values increase throughput but risk hitting API rate limits.
	DefaultBatchSize = 4

	// DefaultChunkSize is the number of words grouped into one processing
	// chunk. Progress is reported and results are flushed per chunk, so a
	// moderate size keeps long runs observable.
	DefaultChunkSize = 32

	// DefaultMaxWordLength caps wordlist entries in bytes. Longer lines are
	// almost certainly not crossword entries and are skipped with a warning.
	DefaultMaxWordLength = 128

	// AppName is the application name used for XDG directory paths.
	AppName = "wordjudge"
)

// Config holds all configuration options for an evaluation run.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Wordlists are the paths of the wordlist files to evaluate.
	// Each file holds one candidate entry per line.
	Wordlists []string

	// Profile names the model profile from the configuration file to use.
	// Empty means the file's defaults (or built-in defaults when no
	// configuration file exists).
	Profile string

	// Profiles holds model profiles loaded from the configuration file.
	Profiles *File

	// Timeout is the per-request timeout for model calls.
	Timeout time.Duration

	// BatchSize is the number of concurrent evaluation requests.
	BatchSize int

	// ChunkSize is the number of words processed per chunk.
	ChunkSize int

	// Limit caps the number of words evaluated this run. Zero means no cap.
	// Useful for sampling a large wordlist before committing to a full run.
	Limit int

	// Resume skips words that already have a stored evaluation.
	// Enabled by default so interrupted runs pick up where they left off.
	Resume bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .wordjudge in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of the human-readable
	// summary. Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport and CSVReport.
	MarkdownReport bool

	// CSVReport enables "word;rating" CSV output, one line per evaluation.
	// Mutually exclusive with JSONReport and MarkdownReport.
	CSVReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for the SQLite evaluation store.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, batch sizes).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		BatchSize: DefaultBatchSize,
		ChunkSize: DefaultChunkSize,
		Resume:    true,
	}
}

// XDGDataDir returns the XDG data directory for wordjudge.
// On Linux: ~/.local/share/wordjudge
// On macOS: ~/Library/Application Support/wordjudge
// On Windows: %LOCALAPPDATA%\wordjudge
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wordjudge.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Wordlists) == 0 {
		return ErrNoWordlist
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}

	if c.Limit < 0 {
		return ErrInvalidLimit
	}

	// At most one report format may be selected
	formats := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if enabled {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}

package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNoEntries is returned when the wordlist files contain no usable
// entries once blank lines, comments, and over-long lines are filtered.
var ErrNoEntries = errors.New("wordlist contains no entries")

// Stats summarizes what happened while loading wordlist files.
type Stats struct {
	// LinesRead is the total number of lines read across all files.
	LinesRead int

	// Kept is the number of unique entries kept for evaluation.
	Kept int

	// Blank is the number of blank or comment lines skipped.
	Blank int

	// Duplicates is the number of repeated entries skipped.
	Duplicates int

	// TooLong is the number of entries skipped for exceeding the length cap.
	TooLong int
}

// Loader reads wordlist files into a deduplicated slice of entries.
//
// Design decision: Normalization (NFC + lowercase) happens at load time
// rather than at evaluation time so that the resume set, the store keys,
// and the prompts all agree on a single canonical form of each word.
type Loader struct {
	// maxWordLength caps entry length in bytes. Longer lines are skipped
	// with a warning; they are almost never legitimate crossword entries.
	maxWordLength int

	// logger for structured logging.
	logger *slog.Logger

	// lower folds entries to lowercase with full Unicode casing rules.
	lower cases.Caser
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxWordLength sets the maximum entry length in bytes.
func WithMaxWordLength(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxWordLength = n
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		maxWordLength: 128,
		lower:         cases.Lower(language.Und),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// Load reads all entries from the given files in order. Entries are
// trimmed, NFC-normalized, lowercased, and deduplicated preserving
// first-seen order. Lines starting with '#' are treated as comments.
func (l *Loader) Load(paths ...string) ([]string, *Stats, error) {
	stats := &Stats{}
	seen := make(map[string]struct{})
	var words []string

	for _, path := range paths {
		if err := l.loadFile(path, seen, &words, stats); err != nil {
			return nil, nil, err
		}
	}

	stats.Kept = len(words)
	return words, stats, nil
}

// loadFile reads one wordlist file, appending kept entries to words.
func (l *Loader) loadFile(path string, seen map[string]struct{}, words *[]string, stats *Stats) error {
	f, err := os.Open(path) //nolint:gosec // User-provided wordlist path is intentional
	if err != nil {
		return fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		stats.LinesRead++

		entry := Normalize(scanner.Text(), l.lower)
		if entry == "" || strings.HasPrefix(entry, "#") {
			stats.Blank++
			continue
		}

		if len(entry) > l.maxWordLength {
			stats.TooLong++
			l.logger.Warn("skipping over-long wordlist entry",
				"file", path,
				"length", len(entry),
				"max", l.maxWordLength,
			)
			continue
		}

		if _, ok := seen[entry]; ok {
			stats.Duplicates++
			continue
		}
		seen[entry] = struct{}{}
		*words = append(*words, entry)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read wordlist %s: %w", path, err)
	}

	return nil
}

// Normalize returns the canonical form of a wordlist entry: surrounding
// whitespace trimmed, interior runs of whitespace collapsed to single
// spaces (entries may be phrases), Unicode NFC, lowercase.
func Normalize(entry string, lower cases.Caser) string {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return ""
	}
	entry = strings.Join(strings.Fields(entry), " ")
	entry = norm.NFC.String(entry)
	return lower.String(entry)
}

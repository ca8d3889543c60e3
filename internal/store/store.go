package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/puzzlekit/wordjudge/internal/model"
)

// Store provides SQLite-based storage for evaluations and run history.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: Evaluations are keyed by word with latest-wins upsert
// semantics rather than keeping every historical rating per word. The
// resume logic only needs to know whether a word has a rating, and
// re-evaluating a word is an explicit request to replace the old one.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "wordjudge.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; evaluations arrive from concurrent
	// callbacks, so all writes funnel through this single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- One row per word; re-evaluating a word replaces the old rating
	CREATE TABLE IF NOT EXISTS evaluations (
		word TEXT PRIMARY KEY,
		rating INTEGER NOT NULL,
		analysis TEXT NOT NULL,
		model TEXT NOT NULL,
		evaluated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_rating ON evaluations(rating);

	-- Run history for auditing long evaluation sessions
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		model TEXT NOT NULL,
		total_words INTEGER NOT NULL,
		evaluated INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		cancelled INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveEvaluation inserts or replaces the evaluation for a word.
func (s *Store) SaveEvaluation(ctx context.Context, ev *model.Evaluation) error {
	query := `
	INSERT INTO evaluations (word, rating, analysis, model, evaluated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(word) DO UPDATE SET
		rating = excluded.rating,
		analysis = excluded.analysis,
		model = excluded.model,
		evaluated_at = excluded.evaluated_at
	`

	evaluatedAt := ev.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		ev.Word,
		ev.Rating,
		ev.Analysis,
		ev.Model,
		evaluatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}

	return nil
}

// GetEvaluation retrieves the stored evaluation for a word.
// Returns nil without error when the word has no stored evaluation.
func (s *Store) GetEvaluation(ctx context.Context, word string) (*model.Evaluation, error) {
	query := `
	SELECT word, rating, analysis, model, evaluated_at
	FROM evaluations
	WHERE word = ?
	`

	var ev model.Evaluation
	var timestamp string

	err := s.db.QueryRowContext(ctx, query, word).Scan(
		&ev.Word,
		&ev.Rating,
		&ev.Analysis,
		&ev.Model,
		&timestamp,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	ev.EvaluatedAt = parseTimestamp(timestamp)
	return &ev, nil
}

// ProcessedWords returns the set of words that already have a stored
// evaluation. This is the resume skip set.
func (s *Store) ProcessedWords(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM evaluations`)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed words: %w", err)
	}
	defer rows.Close()

	processed := make(map[string]struct{})
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		processed[word] = struct{}{}
	}

	return processed, rows.Err()
}

// Count returns the total number of stored evaluations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	return count, nil
}

// CountByBand returns the number of stored evaluations in each band.
func (s *Store) CountByBand(ctx context.Context) (map[model.Band]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rating, COUNT(*) FROM evaluations GROUP BY rating`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by band: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Band]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan band count: %w", err)
		}
		counts[model.BandOf(rating)] += count
	}

	return counts, rows.Err()
}

// TopRated returns the highest-rated evaluations, best first.
// Ties break alphabetically so the output is stable.
func (s *Store) TopRated(ctx context.Context, limit int) ([]model.Evaluation, error) {
	return s.listByRating(ctx, "DESC", limit)
}

// BottomRated returns the lowest-rated evaluations, worst first.
func (s *Store) BottomRated(ctx context.Context, limit int) ([]model.Evaluation, error) {
	return s.listByRating(ctx, "ASC", limit)
}

// listByRating queries evaluations ordered by rating in the given direction.
func (s *Store) listByRating(ctx context.Context, direction string, limit int) ([]model.Evaluation, error) {
	query := fmt.Sprintf(`
	SELECT word, rating, analysis, model, evaluated_at
	FROM evaluations
	ORDER BY rating %s, word ASC
	LIMIT ?
	`, direction)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows)
}

// ExportAll returns every stored evaluation ordered by word.
// This feeds the CSV export command.
func (s *Store) ExportAll(ctx context.Context) ([]model.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT word, rating, analysis, model, evaluated_at
	FROM evaluations
	ORDER BY word ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to export evaluations: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows)
}

// scanEvaluations reads all evaluation rows from a result set.
func scanEvaluations(rows *sql.Rows) ([]model.Evaluation, error) {
	var results []model.Evaluation
	for rows.Next() {
		var ev model.Evaluation
		var timestamp string

		if err := rows.Scan(&ev.Word, &ev.Rating, &ev.Analysis, &ev.Model, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		ev.EvaluatedAt = parseTimestamp(timestamp)
		results = append(results, ev)
	}

	return results, rows.Err()
}

// SaveRun records the outcome of an evaluation run.
func (s *Store) SaveRun(ctx context.Context, report *model.RunReport) error {
	query := `
	INSERT INTO runs (started_at, model, total_words, evaluated, failed, skipped, cancelled)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	cancelled := 0
	if report.Cancelled {
		cancelled = 1
	}

	_, err := s.db.ExecContext(ctx, query,
		report.StartedAt.UTC().Format(timestampLayout),
		report.Model,
		report.TotalWords,
		report.EvaluatedCount(),
		report.FailedCount(),
		report.SkippedWords,
		cancelled,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// timestampLayout is the format used when writing timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,           // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Package report formats evaluation run results for output.
// It supports human-readable text, JSON, Markdown with a band distribution
// chart, and the semicolon-separated CSV format used by wordlist tooling.
package report

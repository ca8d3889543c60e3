package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-word detail in the output.
	verbose bool

	// highlightCount is how many top and bottom words to show.
	highlightCount int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-word analyses.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithHighlightCount sets how many best and worst words are listed.
func WithHighlightCount(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n > 0 {
			w.highlightCount = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:     newBaseWriter(output),
		verbose:        false,
		highlightCount: 5,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeBands(&sb, report)
	w.writeHighlights(&sb, report)
	w.writeFailures(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run summary section.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        WORDJUDGE RUN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Wordlists:  %s\n", strings.Join(report.Sources, ", ")))
	sb.WriteString(fmt.Sprintf("Model:      %s\n", report.Model))
	sb.WriteString(fmt.Sprintf("Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:    %s\n", report.Elapsed.Round(timeRounding)))

	if report.Cancelled {
		sb.WriteString("Status:     INTERRUPTED (partial results)\n")
	} else {
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Loaded:    %d words\n", report.TotalWords))
	sb.WriteString(fmt.Sprintf("  Skipped:   %d (already evaluated)\n", report.SkippedWords))
	sb.WriteString(fmt.Sprintf("  Evaluated: %d\n", report.EvaluatedCount()))
	sb.WriteString(fmt.Sprintf("  Failed:    %d\n", report.FailedCount()))
	if report.EvaluatedCount() > 0 {
		sb.WriteString(fmt.Sprintf("  Average:   %.1f\n", report.AverageRating()))
	}
	sb.WriteString("\n")
}

// writeBands writes the rating band distribution section.
func (w *SimpleWriter) writeBands(sb *strings.Builder, report *model.RunReport) {
	if report.EvaluatedCount() == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RATING DISTRIBUTION\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, band := range model.Bands() {
		count := report.BandCount(band)
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", band.String()+":", count))
	}
	sb.WriteString("\n")
}

// writeHighlights lists the best and worst rated words of the run.
func (w *SimpleWriter) writeHighlights(sb *strings.Builder, report *model.RunReport) {
	best, worst := rankEvaluations(report.Evaluations, w.highlightCount)
	if len(best) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("HIGHLIGHTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString("Best words:\n")
	for _, ev := range best {
		w.writeWordLine(sb, ev)
	}
	sb.WriteString("\nWorst words:\n")
	for _, ev := range worst {
		w.writeWordLine(sb, ev)
	}
	sb.WriteString("\n")
}

// writeWordLine writes one evaluated word with its rating.
func (w *SimpleWriter) writeWordLine(sb *strings.Builder, ev model.Evaluation) {
	sb.WriteString(fmt.Sprintf("  [%2d] %s\n", ev.Rating, ev.Word))
	if w.verbose && ev.Analysis != "" {
		sb.WriteString(fmt.Sprintf("       %s\n", ev.Analysis))
	}
}

// writeFailures lists words that could not be evaluated.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.RunReport) {
	if report.FailedCount() == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILED WORDS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, f := range report.Failures {
		sb.WriteString(fmt.Sprintf("  * %s\n", f.Word))
		if w.verbose && f.Reason != "" {
			sb.WriteString(fmt.Sprintf("    Reason: %s\n", f.Reason))
		}
	}
	sb.WriteString("\n  Failed words are not stored and will be retried on the next run.\n\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by wordjudge\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

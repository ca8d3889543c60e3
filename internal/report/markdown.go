package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// highlightCount is how many top and bottom words to show.
	highlightCount int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownHighlightCount sets how many best and worst words are listed.
func WithMarkdownHighlightCount(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if n > 0 {
			w.highlightCount = n
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:     newBaseWriter(output),
		highlightCount: 10,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeBands(md, report)
	w.writeHighlights(md, report)
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Wordjudge Run Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Wordlists", "`" + strings.Join(report.Sources, "`, `") + "`"},
			{"Model", report.Model},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(timeRounding).String()},
			{"Loaded", strconv.Itoa(report.TotalWords)},
			{"Skipped", strconv.Itoa(report.SkippedWords)},
			{"Evaluated", strconv.Itoa(report.EvaluatedCount())},
			{"Failed", strconv.Itoa(report.FailedCount())},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.RunReport) string {
	if report.Cancelled {
		return "⚠️ Interrupted (partial results)"
	}
	return "✅ Complete"
}

// writeBands writes the rating distribution section.
func (w *MarkdownWriter) writeBands(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Rating Distribution")
	md.PlainText("")

	if report.EvaluatedCount() == 0 {
		md.PlainText("No words were evaluated in this run.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(model.Bands()))
	for _, band := range model.Bands() {
		rows = append(rows, []string{band.String(), strconv.Itoa(report.BandCount(band))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.EvaluatedCount()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Band", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)
}

// writePieChart writes a mermaid pie chart for the band distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Rating Band Distribution"),
		piechart.WithShowData(true),
	)

	for _, band := range model.Bands() {
		if count := report.BandCount(band); count > 0 {
			chart.LabelAndIntValue(band.String(), uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeHighlights writes the best and worst word tables.
func (w *MarkdownWriter) writeHighlights(md *markdown.Markdown, report *model.RunReport) {
	best, worst := rankEvaluations(report.Evaluations, w.highlightCount)
	if len(best) == 0 {
		return
	}

	md.H2("Best Words")
	md.PlainText("")
	w.writeWordTable(md, best)

	md.H2("Worst Words")
	md.PlainText("")
	w.writeWordTable(md, worst)
}

// writeWordTable writes a table of evaluations with analyses.
func (w *MarkdownWriter) writeWordTable(md *markdown.Markdown, evals []model.Evaluation) {
	rows := make([][]string, len(evals))
	for i, ev := range evals {
		rows[i] = []string{
			"`" + ev.Word + "`",
			strconv.Itoa(ev.Rating),
			model.BandOf(ev.Rating).String(),
			truncateString(ev.Analysis, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Word", "Rating", "Band", "Analysis"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failed words section.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.RunReport) {
	if report.FailedCount() == 0 {
		return
	}

	md.H2("Failed Words")
	md.PlainText("")

	rows := make([][]string, len(report.Failures))
	for i, f := range report.Failures {
		rows[i] = []string{"`" + f.Word + "`", truncateString(f.Reason, 80)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Word", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")

	md.Note("Failed words are not stored and will be retried on the next run.")
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by wordjudge*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// CSVWriter outputs evaluations as semicolon-separated word;rating lines.
// This is the interchange format wordlist tools expect: one entry per
// line, no header, no quoting.
//
// Design decision: We write the lines by hand rather than using
// encoding/csv because the target format is fixed (two fields, semicolon
// separator, never quoted) and wordlist entries cannot contain semicolons
// after normalization. encoding/csv would add configuration for no gain.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs this run's evaluations as word;rating lines.
func (w *CSVWriter) Write(report *model.RunReport) (int, error) {
	return w.WriteEvaluations(report.Evaluations)
}

// WriteEvaluations outputs the given evaluations as word;rating lines.
// The export command uses this directly with evaluations from the store.
func (w *CSVWriter) WriteEvaluations(evals []model.Evaluation) (int, error) {
	var sb strings.Builder
	for _, ev := range evals {
		fmt.Fprintf(&sb, "%s;%d\n", ev.Word, ev.Rating)
	}
	return w.output.Write([]byte(sb.String()))
}

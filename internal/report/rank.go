package report

import (
	"sort"
	"time"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// timeRounding is the precision used when printing durations.
const timeRounding = time.Second

// rankEvaluations returns up to n best and n worst evaluations by rating.
// Ties break alphabetically so output is stable across runs.
// The input slice is not modified.
func rankEvaluations(evals []model.Evaluation, n int) (best, worst []model.Evaluation) {
	if len(evals) == 0 || n <= 0 {
		return nil, nil
	}

	sorted := make([]model.Evaluation, len(evals))
	copy(sorted, evals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Word < sorted[j].Word
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	best = sorted[:n]

	worst = make([]model.Evaluation, n)
	copy(worst, sorted[len(sorted)-n:])
	// Worst first.
	sort.Slice(worst, func(i, j int) bool {
		if worst[i].Rating != worst[j].Rating {
			return worst[i].Rating < worst[j].Rating
		}
		return worst[i].Word < worst[j].Word
	})

	return best, worst
}

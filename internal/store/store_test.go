package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// openTestStore creates a store in a temporary directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	return s
}

// TestOpen tests store creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database when missing", func(t *testing.T) {
		t.Parallel()

		s := openTestStore(t)
		count, err := s.Count(context.Background())
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty store, got %d evaluations", count)
		}
	})

	t.Run("fails without CreateIfNotExists on missing database", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

// TestSaveAndGetEvaluation tests the save and retrieve round trip.
func TestSaveAndGetEvaluation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	ev := &model.Evaluation{
		Word:        "apple",
		Analysis:    "A common, familiar word with friendly letters.",
		Rating:      48,
		Model:       "gemini-2.5-flash",
		EvaluatedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}

	if err := s.SaveEvaluation(ctx, ev); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetEvaluation(ctx, "apple")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected evaluation, got nil")
	}
	if got.Rating != 48 {
		t.Errorf("expected rating 48, got %d", got.Rating)
	}
	if got.Analysis != ev.Analysis {
		t.Errorf("analysis mismatch: %q", got.Analysis)
	}
	if got.Model != "gemini-2.5-flash" {
		t.Errorf("model mismatch: %q", got.Model)
	}
	if got.EvaluatedAt.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

// TestGetEvaluationMissing tests retrieval of an unknown word.
func TestGetEvaluationMissing(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	got, err := s.GetEvaluation(context.Background(), "nosuchword")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown word, got %+v", got)
	}
}

// TestSaveEvaluationUpsert tests that re-saving a word replaces the rating.
func TestSaveEvaluationUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	first := &model.Evaluation{Word: "crwth", Analysis: "Obscure Welsh instrument.", Rating: 18, Model: "m1"}
	second := &model.Evaluation{Word: "crwth", Analysis: "Known to constructors, brutal on solvers.", Rating: 22, Model: "m2"}

	if err := s.SaveEvaluation(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SaveEvaluation(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after upsert, got %d", count)
	}

	got, err := s.GetEvaluation(ctx, "crwth")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Rating != 22 {
		t.Errorf("expected latest rating 22, got %d", got.Rating)
	}
	if got.Model != "m2" {
		t.Errorf("expected latest model, got %q", got.Model)
	}
}

// TestProcessedWords tests the resume skip set.
func TestProcessedWords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	words := []string{"apple", "banjo", "crwth"}
	for i, w := range words {
		ev := &model.Evaluation{Word: w, Analysis: "ok", Rating: 20 + i, Model: "m"}
		if err := s.SaveEvaluation(ctx, ev); err != nil {
			t.Fatalf("save %s: %v", w, err)
		}
	}

	processed, err := s.ProcessedWords(ctx)
	if err != nil {
		t.Fatalf("processed words: %v", err)
	}
	if len(processed) != len(words) {
		t.Fatalf("expected %d processed words, got %d", len(words), len(processed))
	}
	for _, w := range words {
		if _, ok := processed[w]; !ok {
			t.Errorf("expected %q in processed set", w)
		}
	}
}

// TestCountByBand tests band aggregation over stored ratings.
func TestCountByBand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	saves := map[string]int{
		"aaaa": 10, // junk
		"bbbb": 12, // junk
		"cccc": 30, // fair
		"dddd": 50, // excellent
	}
	for w, r := range saves {
		ev := &model.Evaluation{Word: w, Analysis: "ok", Rating: r, Model: "m"}
		if err := s.SaveEvaluation(ctx, ev); err != nil {
			t.Fatalf("save %s: %v", w, err)
		}
	}

	counts, err := s.CountByBand(ctx)
	if err != nil {
		t.Fatalf("count by band: %v", err)
	}

	if counts[model.BandJunk] != 2 {
		t.Errorf("expected 2 junk, got %d", counts[model.BandJunk])
	}
	if counts[model.BandFair] != 1 {
		t.Errorf("expected 1 fair, got %d", counts[model.BandFair])
	}
	if counts[model.BandExcellent] != 1 {
		t.Errorf("expected 1 excellent, got %d", counts[model.BandExcellent])
	}
	if counts[model.BandPoor] != 0 {
		t.Errorf("expected 0 poor, got %d", counts[model.BandPoor])
	}
}

// TestTopAndBottomRated tests rating-ordered listing with stable ties.
func TestTopAndBottomRated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	saves := map[string]int{
		"zebra": 45,
		"apple": 45,
		"qwert": 10,
		"banjo": 30,
	}
	for w, r := range saves {
		ev := &model.Evaluation{Word: w, Analysis: "ok", Rating: r, Model: "m"}
		if err := s.SaveEvaluation(ctx, ev); err != nil {
			t.Fatalf("save %s: %v", w, err)
		}
	}

	top, err := s.TopRated(ctx, 2)
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 results, got %d", len(top))
	}
	// Ties break alphabetically: apple before zebra at 45.
	if top[0].Word != "apple" || top[1].Word != "zebra" {
		t.Errorf("unexpected top order: %q, %q", top[0].Word, top[1].Word)
	}

	bottom, err := s.BottomRated(ctx, 1)
	if err != nil {
		t.Fatalf("bottom rated: %v", err)
	}
	if len(bottom) != 1 || bottom[0].Word != "qwert" {
		t.Errorf("expected qwert at the bottom, got %+v", bottom)
	}
}

// TestExportAll tests word-ordered export of all evaluations.
func TestExportAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	for _, w := range []string{"crwth", "apple", "banjo"} {
		ev := &model.Evaluation{Word: w, Analysis: "ok", Rating: 25, Model: "m"}
		if err := s.SaveEvaluation(ctx, ev); err != nil {
			t.Fatalf("save %s: %v", w, err)
		}
	}

	all, err := s.ExportAll(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 evaluations, got %d", len(all))
	}

	want := []string{"apple", "banjo", "crwth"}
	for i, w := range want {
		if all[i].Word != w {
			t.Errorf("position %d: expected %q, got %q", i, w, all[i].Word)
		}
	}
}

// TestSaveRun tests run history persistence.
func TestSaveRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	report := model.NewRunReport("words.txt")
	report.Model = "gemini-2.5-flash"
	report.TotalWords = 10
	report.SkippedWords = 3
	report.AddEvaluation(model.Evaluation{Word: "apple", Analysis: "ok", Rating: 48})
	report.AddFailure("qqqq", errors.New("no JSON object in response"))
	report.Cancelled = true

	if err := s.SaveRun(ctx, report); err != nil {
		t.Fatalf("save run: %v", err)
	}

	var evaluated, failed, skipped, cancelled int
	row := s.db.QueryRowContext(ctx, `SELECT evaluated, failed, skipped, cancelled FROM runs LIMIT 1`)
	if err := row.Scan(&evaluated, &failed, &skipped, &cancelled); err != nil {
		t.Fatalf("scan run: %v", err)
	}
	if evaluated != 1 || failed != 1 || skipped != 3 || cancelled != 1 {
		t.Errorf("unexpected run row: evaluated=%d failed=%d skipped=%d cancelled=%d",
			evaluated, failed, skipped, cancelled)
	}
}

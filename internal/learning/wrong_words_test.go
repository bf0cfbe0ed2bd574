package learning

import (
	"testing"
	"time"
)

func TestPriorityProgression(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	rec := e.NewWrongWordRecord("u1", "cet4", "gregarious", 42)

	// error_count 1 -> 2 -> 3 -> 4 -> 5 should map to priority 1 -> 3 -> 4 -> 4 -> 5.
	expected := []int{1, 3, 4, 4, 5}
	for i, want := range expected {
		e.AddError(rec, "wrong", "gregarious", "spelling", "unit drill")
		if rec.ErrorCount != i+1 {
			t.Fatalf("expected error count %d, got %d", i+1, rec.ErrorCount)
		}
		if rec.ReviewPriority != want {
			t.Errorf("error count %d: expected priority %d, got %d", rec.ErrorCount, want, rec.ReviewPriority)
		}
	}
}

func TestPriorityNeverDecreases(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	rec := e.NewWrongWordRecord("u1", "cet4", "word", 0)
	rec.ReviewPriority = 5

	e.AddError(rec, "a", "b", "meaning", "")
	if rec.ReviewPriority != 5 {
		t.Errorf("expected priority to hold at 5, got %d", rec.ReviewPriority)
	}
}

func TestErrorDetailsAppendOnly(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	rec := e.NewWrongWordRecord("u1", "cet4", "word", 0)

	e.AddError(rec, "answr", "answer", "spelling", "quiz")
	e.AddError(rec, "anser", "answer", "spelling", "quiz")

	if len(rec.ErrorDetails) != 2 {
		t.Fatalf("expected 2 error details, got %d", len(rec.ErrorDetails))
	}
	if rec.ErrorDetails[0].UserAnswer != "answr" || rec.ErrorDetails[1].UserAnswer != "anser" {
		t.Error("error details should preserve submission order")
	}
	if rec.FirstWrongDate.IsZero() || rec.LastWrongDate.IsZero() {
		t.Error("expected wrong dates to be set")
	}
}

func TestAutoResolution(t *testing.T) {
	testCases := []struct {
		name     string
		reviews  []bool
		resolved bool
	}{
		{"no reviews", nil, false},
		{"two successes below minimum", []bool{true, true}, false},
		{"three straight successes", []bool{true, true, true}, true},
		{"three of four", []bool{false, true, true, true}, false}, // 75% < 80%
		{"four of five", []bool{false, true, true, true, true}, true},
		{"window ignores old failures", []bool{false, false, true, true, true, true, true}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
			rec := e.NewWrongWordRecord("u1", "cet4", "word", 0)
			e.AddError(rec, "x", "y", "meaning", "")
			e.AddError(rec, "x", "y", "meaning", "")

			for _, ok := range tc.reviews {
				e.AddReview(rec, ReviewInput{WasSuccessful: ok, Method: "flashcard", ResponseTimeMs: 1500, ConfidenceLevel: 4})
			}

			if rec.IsResolved != tc.resolved {
				t.Errorf("expected resolved=%v, got %v", tc.resolved, rec.IsResolved)
			}
			if tc.resolved && rec.ResolvedDate == nil {
				t.Error("resolved record must carry a resolved date")
			}
			if !tc.resolved && rec.ResolvedDate != nil {
				t.Error("unresolved record must not carry a resolved date")
			}
		})
	}
}

func TestNewErrorReopensResolvedRecord(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	rec := e.NewWrongWordRecord("u1", "cet4", "word", 0)
	e.AddError(rec, "x", "y", "meaning", "")

	for i := 0; i < 5; i++ {
		e.AddReview(rec, ReviewInput{WasSuccessful: true, Method: "flashcard"})
	}
	if !rec.IsResolved {
		t.Fatal("setup failed: record should be auto-resolved")
	}

	e.AddError(rec, "x", "y", "meaning", "")

	if rec.IsResolved {
		t.Error("a new mistake must reopen a resolved record")
	}
	if rec.ResolvedDate != nil {
		t.Error("reopening must clear the resolved date")
	}
}

func TestManualResolutionOverrides(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)
	rec := e.NewWrongWordRecord("u1", "cet4", "word", 0)
	e.AddError(rec, "x", "y", "meaning", "")

	e.MarkAsResolved(rec)
	if !rec.IsResolved || rec.ResolvedDate == nil {
		t.Error("manual resolve must set flag and date")
	}

	e.MarkAsUnresolved(rec)
	if rec.IsResolved || rec.ResolvedDate != nil {
		t.Error("manual unresolve must clear flag and date")
	}
}

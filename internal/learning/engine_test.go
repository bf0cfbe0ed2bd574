package learning

import (
	"math"
	"testing"
	"time"
)

func testEngine(now time.Time) *Engine {
	e := NewEngine(nil)
	e.now = func() time.Time { return now }
	return e
}

func intPtr(v int) *int { return &v }

func TestHistoryMatchesCounters(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "abandon", 0)

	sequence := []bool{true, false, true, true, false, false, true}
	for i, correct := range sequence {
		e.RecordAttempt(state, AttemptInput{IsCorrect: correct, ResponseTimeMs: 1500})

		if state.CorrectAttempts+state.WrongAttempts != len(state.History) {
			t.Fatalf("after attempt %d: counters %d+%d != history length %d",
				i+1, state.CorrectAttempts, state.WrongAttempts, len(state.History))
		}
	}
	if state.CorrectAttempts != 4 || state.WrongAttempts != 3 {
		t.Errorf("expected 4 correct / 3 wrong, got %d / %d", state.CorrectAttempts, state.WrongAttempts)
	}
}

func TestEaseFactorNeverBelowFloor(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "ephemeral", 3)

	// Hardest possible rating, many times over.
	for i := 0; i < 20; i++ {
		e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 3000, UserDifficulty: intPtr(5)})
		if state.Spaced.EaseFactor < 1.3 {
			t.Fatalf("attempt %d: ease factor %.3f dropped below 1.3", i+1, state.Spaced.EaseFactor)
		}
	}
	epsilon := 0.0001
	if math.Abs(state.Spaced.EaseFactor-1.3) > epsilon {
		t.Errorf("expected ease factor pinned at 1.3, got %.4f", state.Spaced.EaseFactor)
	}
}

func TestMasteryAccrualToLevelFive(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "diligent", 7)

	expectedIntervals := []int{1, 6, 15, 38, 95} // 6*2.5=15, 15*2.5=37.5 -> 38, 38*2.5=95
	for i := 0; i < 5; i++ {
		e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 1200})
		if state.Spaced.IntervalDays != expectedIntervals[i] {
			t.Errorf("attempt %d: expected interval %d, got %d", i+1, expectedIntervals[i], state.Spaced.IntervalDays)
		}
	}

	if state.Metrics.AccuracyRate != 100 {
		t.Errorf("expected accuracy 100, got %.1f", state.Metrics.AccuracyRate)
	}
	if state.Metrics.ConsecutiveCorrect != 5 {
		t.Errorf("expected consecutive correct 5, got %d", state.Metrics.ConsecutiveCorrect)
	}
	if state.MasteryLevel != 5 || !state.IsMastered {
		t.Errorf("expected mastered level 5, got level %d mastered=%v", state.MasteryLevel, state.IsMastered)
	}
}

func TestMasteryLadderThresholds(t *testing.T) {
	testCases := []struct {
		name          string
		sequence      []bool
		expectedLevel int
		mastered      bool
	}{
		{"single correct", []bool{true}, 1, false},
		{"two attempts half right", []bool{false, true}, 2, false},
		{"two correct", []bool{true, true}, 2, false},
		{"three correct", []bool{true, true, true}, 3, false},
		{"four correct", []bool{true, true, true, true}, 4, false},
		{"five correct", []bool{true, true, true, true, true}, 5, true},
		{"wrong then four correct", []bool{false, true, true, true, true}, 4, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
			state := e.NewWordLearningState("u1", "cet4", "word", 0)
			for _, correct := range tc.sequence {
				e.RecordAttempt(state, AttemptInput{IsCorrect: correct, ResponseTimeMs: 1000})
			}
			if state.MasteryLevel != tc.expectedLevel {
				t.Errorf("expected level %d, got %d", tc.expectedLevel, state.MasteryLevel)
			}
			if state.IsMastered != tc.mastered {
				t.Errorf("expected mastered=%v, got %v", tc.mastered, state.IsMastered)
			}
		})
	}
}

func TestMasteryDecayOnConsecutiveWrong(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "volatile", 12)

	// Reach full mastery first.
	for i := 0; i < 5; i++ {
		e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 1000})
	}
	if state.MasteryLevel != 5 || !state.IsMastered {
		t.Fatalf("setup failed: level %d mastered=%v", state.MasteryLevel, state.IsMastered)
	}

	e.RecordAttempt(state, AttemptInput{IsCorrect: false, ResponseTimeMs: 1000})
	e.RecordAttempt(state, AttemptInput{IsCorrect: false, ResponseTimeMs: 1000})
	levelBefore := state.MasteryLevel

	e.RecordAttempt(state, AttemptInput{IsCorrect: false, ResponseTimeMs: 1000})
	if state.MasteryLevel >= levelBefore {
		t.Errorf("expected strict decrease from %d, got %d", levelBefore, state.MasteryLevel)
	}
	if state.IsMastered {
		t.Error("expected is_mastered=false after 3 consecutive wrong answers")
	}

	// Decay keeps applying while the streak continues, flooring at 0.
	for i := 0; i < 10; i++ {
		e.RecordAttempt(state, AttemptInput{IsCorrect: false, ResponseTimeMs: 1000})
	}
	if state.MasteryLevel != 0 {
		t.Errorf("expected level floored at 0, got %d", state.MasteryLevel)
	}
}

func TestWrongAnswerResetsSchedule(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "arduous", 20)

	e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 900})
	e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 900})
	if state.Spaced.IntervalDays != 6 || state.Spaced.RepetitionCount != 2 {
		t.Fatalf("setup failed: interval %d rep %d", state.Spaced.IntervalDays, state.Spaced.RepetitionCount)
	}

	e.RecordAttempt(state, AttemptInput{IsCorrect: false, ResponseTimeMs: 2500})
	if state.Spaced.RepetitionCount != 0 {
		t.Errorf("expected repetition count reset to 0, got %d", state.Spaced.RepetitionCount)
	}
	if state.Spaced.IntervalDays != 1 {
		t.Errorf("expected interval reset to 1, got %d", state.Spaced.IntervalDays)
	}
}

func TestDifficultyAdjustsEaseFactor(t *testing.T) {
	testCases := []struct {
		name       string
		difficulty int
		expected   float64
	}{
		{"easy word raises ease", 1, 2.8},  // 2.5 + (3-1)*0.15
		{"neutral keeps ease", 3, 2.5},
		{"hard word lowers ease", 5, 2.2},  // 2.5 + (3-5)*0.15
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
			state := e.NewWordLearningState("u1", "cet4", "word", 0)
			e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 1000, UserDifficulty: intPtr(tc.difficulty)})

			epsilon := 0.0001
			if math.Abs(state.Spaced.EaseFactor-tc.expected) > epsilon {
				t.Errorf("expected ease factor %.2f, got %.4f", tc.expected, state.Spaced.EaseFactor)
			}
			if state.DifficultyRating != tc.difficulty {
				t.Errorf("expected difficulty rating %d, got %d", tc.difficulty, state.DifficultyRating)
			}
			if last := state.History[len(state.History)-1]; last.DifficultyAfter != tc.difficulty {
				t.Errorf("expected history difficulty %d, got %d", tc.difficulty, last.DifficultyAfter)
			}
		})
	}
}

func TestAverageResponseTime(t *testing.T) {
	e := testEngine(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	state := e.NewWordLearningState("u1", "cet4", "word", 0)

	times := []int{1000, 2000, 3000}
	for _, ms := range times {
		e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: ms})
	}
	if state.Metrics.AverageResponseTimeMs != 2000 {
		t.Errorf("expected average 2000ms, got %.1f", state.Metrics.AverageResponseTimeMs)
	}
}

func TestNextReviewSchedule(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)
	state := e.NewWordLearningState("u1", "cet4", "word", 0)

	e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 1000})
	expected := now.Add(24 * time.Hour)
	if !state.NextReview.Equal(expected) {
		t.Errorf("expected next review %v, got %v", expected, state.NextReview)
	}
	if !state.LastReviewed.Equal(now) {
		t.Errorf("expected last reviewed %v, got %v", now, state.LastReviewed)
	}
}

func TestResetProgress(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)
	state := e.NewWordLearningState("u1", "cet4", "word", 0)

	for i := 0; i < 5; i++ {
		e.RecordAttempt(state, AttemptInput{IsCorrect: true, ResponseTimeMs: 1000, UserDifficulty: intPtr(1)})
	}
	if !state.IsMastered {
		t.Fatal("setup failed: word should be mastered")
	}

	e.ResetProgress(state)

	if state.MasteryLevel != 0 || state.IsMastered {
		t.Errorf("expected level 0 unmastered, got level %d mastered=%v", state.MasteryLevel, state.IsMastered)
	}
	if state.CorrectAttempts != 0 || state.WrongAttempts != 0 || len(state.History) != 0 {
		t.Error("expected counters and history zeroed")
	}
	if state.Spaced.IntervalDays != 1 || state.Spaced.EaseFactor != 2.5 || state.Spaced.RepetitionCount != 0 {
		t.Errorf("expected fresh schedule, got %+v", state.Spaced)
	}
	if !state.NextReview.Equal(now) {
		t.Errorf("expected next review now, got %v", state.NextReview)
	}
}

func TestMarkAsMastered(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)
	state := e.NewWordLearningState("u1", "cet4", "word", 0)

	e.MarkAsMastered(state)

	if state.MasteryLevel != 5 || !state.IsMastered {
		t.Errorf("expected forced level 5 mastered, got level %d mastered=%v", state.MasteryLevel, state.IsMastered)
	}
	expected := now.Add(30 * 24 * time.Hour)
	if !state.NextReview.Equal(expected) {
		t.Errorf("expected next review 30 days out, got %v", state.NextReview)
	}
}

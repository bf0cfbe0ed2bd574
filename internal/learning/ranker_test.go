package learning

import (
	"testing"
	"time"

	"vocab-service/internal/models"
)

func TestUrgencyScoreNeverNegative(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Old mistake with a perfect review record: the rate subtraction would
	// push the raw score negative without the floor.
	rec := &models.WrongWordRecord{
		ErrorCount:     1,
		ReviewPriority: 1,
		LastWrongDate:  now.Add(-60 * 24 * time.Hour),
	}
	for i := 0; i < 10; i++ {
		rec.ReviewHistory = append(rec.ReviewHistory, models.ReviewAttempt{WasSuccessful: true})
	}

	// priority*20 + count*10 + 0 recency - 100 rate = -70 before flooring.
	if score := rec.UrgencyScore(now); score != 0 {
		t.Errorf("expected floored score 0, got %.1f", score)
	}
}

func TestUrgencyScoreFormula(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := &models.WrongWordRecord{
		ErrorCount:     3,
		ReviewPriority: 4,
		LastWrongDate:  now.Add(-2 * 24 * time.Hour),
		ReviewHistory: []models.ReviewAttempt{
			{WasSuccessful: true},
			{WasSuccessful: false},
		},
	}

	// 4*20 + 3*10 + (7-2)*5 - 50 = 85
	if score := rec.UrgencyScore(now); score != 85 {
		t.Errorf("expected urgency 85, got %.1f", score)
	}
}

func TestRankWrongWords(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)

	fresh := &models.WrongWordRecord{Word: "fresh", ErrorCount: 5, ReviewPriority: 5, LastWrongDate: now.Add(-1 * time.Hour)}
	stale := &models.WrongWordRecord{Word: "stale", ErrorCount: 2, ReviewPriority: 3, LastWrongDate: now.Add(-10 * 24 * time.Hour)}
	resolved := &models.WrongWordRecord{Word: "resolved", ErrorCount: 9, ReviewPriority: 5, IsResolved: true, LastWrongDate: now}

	ranked := e.RankWrongWords([]*models.WrongWordRecord{stale, resolved, fresh}, 0)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 unresolved records, got %d", len(ranked))
	}
	if ranked[0].Word != "fresh" || ranked[1].Word != "stale" {
		t.Errorf("expected order [fresh stale], got [%s %s]", ranked[0].Word, ranked[1].Word)
	}
}

func TestRankTieBreaksOnRecency(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)

	older := &models.WrongWordRecord{Word: "older", ErrorCount: 2, ReviewPriority: 3, LastWrongDate: now.Add(-30 * time.Hour)}
	newer := &models.WrongWordRecord{Word: "newer", ErrorCount: 2, ReviewPriority: 3, LastWrongDate: now.Add(-26 * time.Hour)}

	// Same whole-day recency bucket, same counters: scores tie.
	if older.UrgencyScore(now) != newer.UrgencyScore(now) {
		t.Fatal("setup failed: scores should tie")
	}

	ranked := e.RankWrongWords([]*models.WrongWordRecord{older, newer}, 0)
	if ranked[0].Word != "newer" {
		t.Errorf("tie should go to the most recent mistake, got %s first", ranked[0].Word)
	}
}

func TestRankLimit(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)

	var records []*models.WrongWordRecord
	for i := 0; i < 10; i++ {
		records = append(records, &models.WrongWordRecord{
			ErrorCount:     i + 1,
			ReviewPriority: 1,
			LastWrongDate:  now,
		})
	}

	ranked := e.RankWrongWords(records, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 records, got %d", len(ranked))
	}
	if ranked[0].ErrorCount != 10 {
		t.Errorf("expected most urgent first, got error count %d", ranked[0].ErrorCount)
	}
}

func TestReviewStatusLabels(t *testing.T) {
	testCases := []struct {
		name     string
		record   models.WrongWordRecord
		expected string
	}{
		{"resolved wins", models.WrongWordRecord{IsResolved: true}, models.StatusResolved},
		{"no reviews", models.WrongWordRecord{}, models.StatusNeedsReview},
		{
			"nearly resolved",
			models.WrongWordRecord{ReviewHistory: []models.ReviewAttempt{
				{WasSuccessful: true}, {WasSuccessful: true}, {WasSuccessful: true}, {WasSuccessful: true}, {WasSuccessful: false},
			}},
			models.StatusNearlyResolved,
		},
		{
			"improving",
			models.WrongWordRecord{ReviewHistory: []models.ReviewAttempt{
				{WasSuccessful: true}, {WasSuccessful: false},
			}},
			models.StatusImproving,
		},
		{
			"struggling",
			models.WrongWordRecord{ReviewHistory: []models.ReviewAttempt{
				{WasSuccessful: false}, {WasSuccessful: false}, {WasSuccessful: true},
			}},
			models.StatusStruggling,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.ReviewStatus(); got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestQueueProjection(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := testEngine(now)

	rec := &models.WrongWordRecord{
		Word:           "ubiquitous",
		WordIndex:      17,
		DictionaryID:   "cet6",
		ErrorCount:     3,
		ReviewPriority: 4,
		LastWrongDate:  now.Add(-24 * time.Hour),
	}

	items := e.QueueProjection([]*models.WrongWordRecord{rec})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Word != "ubiquitous" || item.DictionaryID != "cet6" {
		t.Errorf("identity not carried through: %+v", item)
	}
	// 4*20 + 3*10 + 6*5 - 0 = 140
	if item.UrgencyScore != 140 {
		t.Errorf("expected urgency 140, got %.1f", item.UrgencyScore)
	}
	if item.ReviewStatus != models.StatusNeedsReview {
		t.Errorf("expected needs_review, got %s", item.ReviewStatus)
	}
}

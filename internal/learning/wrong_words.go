package learning

import (
	"vocab-service/internal/models"
)

// NewWrongWordRecord builds the record created on a word's first wrong
// answer. Counters start at zero; the first AddError call fills them in.
func (e *Engine) NewWrongWordRecord(userID, dictionaryID, word string, wordIndex int) *models.WrongWordRecord {
	now := e.now()
	return &models.WrongWordRecord{
		UserID:         userID,
		DictionaryID:   dictionaryID,
		Word:           word,
		WordIndex:      wordIndex,
		ReviewPriority: 1,
		ErrorDetails:   []models.ErrorDetail{},
		ReviewHistory:  []models.ReviewAttempt{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddError folds one mistake into the record. Priority only ever rises on
// this path, and a previously resolved word is reopened.
func (e *Engine) AddError(rec *models.WrongWordRecord, userAnswer, correctAnswer, errorType, context string) {
	now := e.now()

	rec.ErrorCount++
	if rec.FirstWrongDate.IsZero() {
		rec.FirstWrongDate = now
	}
	rec.LastWrongDate = now

	for _, rule := range e.config.PriorityRules {
		if rec.ErrorCount >= rule.MinErrors {
			if rule.Priority > rec.ReviewPriority {
				rec.ReviewPriority = rule.Priority
			}
			break
		}
	}

	rec.ErrorDetails = append(rec.ErrorDetails, models.ErrorDetail{
		Date:          now,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		ErrorType:     errorType,
		Context:       context,
	})

	// A new mistake reopens a resolved word.
	if rec.IsResolved {
		rec.IsResolved = false
		rec.ResolvedDate = nil
	}
	rec.UpdatedAt = now
}

// AddReview appends one review session and evaluates auto-resolution over
// the recent window: with at least 3 of the last 5 reviews recorded, a
// success rate of 80% or better resolves the record.
func (e *Engine) AddReview(rec *models.WrongWordRecord, input ReviewInput) {
	now := e.now()

	rec.ReviewHistory = append(rec.ReviewHistory, models.ReviewAttempt{
		Date:            now,
		WasSuccessful:   input.WasSuccessful,
		Method:          input.Method,
		ResponseTimeMs:  input.ResponseTimeMs,
		ConfidenceLevel: input.ConfidenceLevel,
	})
	rec.UpdatedAt = now

	total := len(rec.ReviewHistory)
	if total < e.config.ResolutionMinCount {
		return
	}
	window := rec.ReviewHistory
	if total > e.config.ResolutionWindow {
		window = rec.ReviewHistory[total-e.config.ResolutionWindow:]
	}
	successful := 0
	for _, rev := range window {
		if rev.WasSuccessful {
			successful++
		}
	}
	rate := float64(successful) / float64(len(window))
	if rate >= e.config.ResolutionThreshold && !rec.IsResolved {
		rec.IsResolved = true
		resolved := now
		rec.ResolvedDate = &resolved
	}
}

// MarkAsResolved is the manual override, independent of the window heuristic.
func (e *Engine) MarkAsResolved(rec *models.WrongWordRecord) {
	now := e.now()
	rec.IsResolved = true
	rec.ResolvedDate = &now
	rec.UpdatedAt = now
}

// MarkAsUnresolved reopens a record manually.
func (e *Engine) MarkAsUnresolved(rec *models.WrongWordRecord) {
	rec.IsResolved = false
	rec.ResolvedDate = nil
	rec.UpdatedAt = e.now()
}

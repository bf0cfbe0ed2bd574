package learning

import (
	"math"
	"time"

	"vocab-service/internal/models"
)

// Engine applies the learning-progress policy to word states and wrong-word
// records. All methods are synchronous in-memory transitions; callers load
// and persist the documents around each call.
type Engine struct {
	config *LearningConfig
	now    func() time.Time
}

// NewEngine creates an engine, falling back to the default policy when
// config is nil.
func NewEngine(config *LearningConfig) *Engine {
	if config == nil {
		config = DefaultLearningConfig()
	}
	return &Engine{config: config, now: time.Now}
}

// NewWordLearningState builds the lazy zero-state for a word the user has
// never attempted.
func (e *Engine) NewWordLearningState(userID, dictionaryID, word string, wordIndex int) *models.WordLearningState {
	now := e.now()
	return &models.WordLearningState{
		UserID:           userID,
		DictionaryID:     dictionaryID,
		Word:             word,
		WordIndex:        wordIndex,
		DifficultyRating: e.config.DefaultDifficulty,
		Spaced: models.SpacedRepetition{
			IntervalDays: e.config.FirstIntervalDays,
			EaseFactor:   e.config.InitialEaseFactor,
		},
		History:    []models.LearningAttempt{},
		NextReview: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// RecordAttempt folds one graded answer into the state: counters, history,
// rolling metrics, SM-2 schedule and mastery level, in that order.
// Input ranges are the caller's responsibility.
func (e *Engine) RecordAttempt(state *models.WordLearningState, input AttemptInput) {
	now := e.now()

	// Counters and streaks.
	if input.IsCorrect {
		state.CorrectAttempts++
		state.Metrics.ConsecutiveCorrect++
		state.Metrics.ConsecutiveWrong = 0
	} else {
		state.WrongAttempts++
		state.Metrics.ConsecutiveWrong++
		state.Metrics.ConsecutiveCorrect = 0
	}

	if input.UserDifficulty != nil {
		state.DifficultyRating = *input.UserDifficulty
	}
	state.History = append(state.History, models.LearningAttempt{
		Timestamp:       now,
		WasCorrect:      input.IsCorrect,
		ResponseTimeMs:  input.ResponseTimeMs,
		DifficultyAfter: state.DifficultyRating,
	})

	e.recomputeMetrics(state)
	e.updateSchedule(state, input, now)
	e.updateMastery(state)

	state.LastReviewed = now
	state.UpdatedAt = now
}

func (e *Engine) recomputeMetrics(state *models.WordLearningState) {
	total := state.TotalAttempts()
	if total > 0 {
		state.Metrics.AccuracyRate = 100 * float64(state.CorrectAttempts) / float64(total)
	}
	if len(state.History) > 0 {
		sum := 0
		for _, a := range state.History {
			sum += a.ResponseTimeMs
		}
		state.Metrics.AverageResponseTimeMs = float64(sum) / float64(len(state.History))
	}
	streak := state.Metrics.ConsecutiveCorrect
	if state.Metrics.ConsecutiveWrong > streak {
		streak = state.Metrics.ConsecutiveWrong
	}
	state.Metrics.LastStreak = streak
}

// updateSchedule applies the SM-2 step: correct answers grow the interval
// (1, 6, then interval*EF), a wrong answer restarts the cycle, and the
// learner's difficulty rating nudges the ease factor with a hard 1.3 floor.
func (e *Engine) updateSchedule(state *models.WordLearningState, input AttemptInput, now time.Time) {
	srs := &state.Spaced

	if input.IsCorrect {
		switch srs.RepetitionCount {
		case 0:
			srs.IntervalDays = e.config.FirstIntervalDays
		case 1:
			srs.IntervalDays = e.config.SecondIntervalDay
		default:
			srs.IntervalDays = int(math.Round(float64(srs.IntervalDays) * srs.EaseFactor))
		}
		srs.RepetitionCount++
	} else {
		srs.RepetitionCount = 0
		srs.IntervalDays = e.config.FirstIntervalDays
	}

	if input.UserDifficulty != nil {
		srs.EaseFactor += float64(e.config.DifficultyPivot-*input.UserDifficulty) * e.config.EaseStep
		if srs.EaseFactor < e.config.MinEaseFactor {
			srs.EaseFactor = e.config.MinEaseFactor
		}
	}

	state.NextReview = now.Add(time.Duration(srs.IntervalDays) * 24 * time.Hour)
}

// updateMastery walks the mastery ladder (first match wins) and then applies
// the decay override. The ladder never lowers an earned level; only the
// decay path does.
func (e *Engine) updateMastery(state *models.WordLearningState) {
	total := state.TotalAttempts()
	accuracy := state.Metrics.AccuracyRate

	for _, rule := range e.config.MasteryRules {
		if total < rule.MinAttempts || accuracy < rule.MinAccuracy {
			continue
		}
		if state.Metrics.ConsecutiveCorrect < rule.MinConsecutiveCorrect {
			continue
		}
		if rule.Level > state.MasteryLevel {
			state.MasteryLevel = rule.Level
			if rule.Mastered {
				state.IsMastered = true
			}
		}
		break
	}

	if state.Metrics.ConsecutiveWrong >= e.config.DecayThreshold {
		if state.MasteryLevel > 0 {
			state.MasteryLevel--
		}
		state.IsMastered = false
	}
}

// ResetProgress wipes the state back to a fresh word for explicit
// re-learning. The word becomes due immediately.
func (e *Engine) ResetProgress(state *models.WordLearningState) {
	now := e.now()
	state.CorrectAttempts = 0
	state.WrongAttempts = 0
	state.MasteryLevel = 0
	state.IsMastered = false
	state.DifficultyRating = e.config.DefaultDifficulty
	state.Spaced = models.SpacedRepetition{
		IntervalDays: e.config.FirstIntervalDays,
		EaseFactor:   e.config.InitialEaseFactor,
	}
	state.Metrics = models.PerformanceMetrics{}
	state.History = []models.LearningAttempt{}
	state.NextReview = now
	state.UpdatedAt = now
}

// MarkAsMastered is the manual override that forces full mastery and pushes
// the next review far out, bypassing the accrual ladder.
func (e *Engine) MarkAsMastered(state *models.WordLearningState) {
	now := e.now()
	state.MasteryLevel = 5
	state.IsMastered = true
	state.NextReview = now.Add(time.Duration(e.config.MasteredReviewDays) * 24 * time.Hour)
	state.UpdatedAt = now
}

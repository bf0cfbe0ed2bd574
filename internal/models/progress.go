package models

import "time"

// SpacedRepetition holds the SM-2 scheduling state for one word.
type SpacedRepetition struct {
	IntervalDays    int     `bson:"interval_days" json:"interval_days"`
	EaseFactor      float64 `bson:"ease_factor" json:"ease_factor"`
	RepetitionCount int     `bson:"repetition_count" json:"repetition_count"`
}

// PerformanceMetrics are rolling statistics recomputed on every attempt.
type PerformanceMetrics struct {
	AverageResponseTimeMs float64 `bson:"average_response_time_ms" json:"average_response_time_ms"`
	AccuracyRate          float64 `bson:"accuracy_rate" json:"accuracy_rate"`
	ConsecutiveCorrect    int     `bson:"consecutive_correct" json:"consecutive_correct"`
	ConsecutiveWrong      int     `bson:"consecutive_wrong" json:"consecutive_wrong"`
	LastStreak            int     `bson:"last_streak" json:"last_streak"`
}

// LearningAttempt is one entry of the append-only attempt history.
type LearningAttempt struct {
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
	WasCorrect      bool      `bson:"was_correct" json:"was_correct"`
	ResponseTimeMs  int       `bson:"response_time_ms" json:"response_time_ms"`
	DifficultyAfter int       `bson:"difficulty_after" json:"difficulty_after"`
}

// WordLearningState tracks one user's progress on one word of one dictionary.
type WordLearningState struct {
	ID               string             `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	DictionaryID     string             `bson:"dictionary_id" json:"dictionary_id"`
	Word             string             `bson:"word" json:"word"`
	WordIndex        int                `bson:"word_index" json:"word_index"`
	CorrectAttempts  int                `bson:"correct_attempts" json:"correct_attempts"`
	WrongAttempts    int                `bson:"wrong_attempts" json:"wrong_attempts"`
	MasteryLevel     int                `bson:"mastery_level" json:"mastery_level"`
	IsMastered       bool               `bson:"is_mastered" json:"is_mastered"`
	DifficultyRating int                `bson:"difficulty_rating" json:"difficulty_rating"`
	Spaced           SpacedRepetition   `bson:"spaced_repetition" json:"spaced_repetition"`
	Metrics          PerformanceMetrics `bson:"performance_metrics" json:"performance_metrics"`
	History          []LearningAttempt  `bson:"learning_history" json:"learning_history"`
	NextReview       time.Time          `bson:"next_review" json:"next_review"`
	LastReviewed     time.Time          `bson:"last_reviewed" json:"last_reviewed"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// TotalAttempts returns correct plus wrong attempts.
func (s *WordLearningState) TotalAttempts() int {
	return s.CorrectAttempts + s.WrongAttempts
}

// IsDue reports whether the word is scheduled for review at the given time.
func (s *WordLearningState) IsDue(now time.Time) bool {
	return !s.NextReview.After(now)
}

// DaysOverdue returns how many whole days past the scheduled review the word
// is, 0 when it is not due yet.
func (s *WordLearningState) DaysOverdue(now time.Time) int {
	if s.NextReview.After(now) {
		return 0
	}
	return int(now.Sub(s.NextReview).Hours() / 24)
}

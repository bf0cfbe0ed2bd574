package models

import "time"

// Review status labels, evaluated in priority order by ReviewStatus.
const (
	StatusResolved       = "resolved"
	StatusNearlyResolved = "nearly_resolved"
	StatusNeedsReview    = "needs_review"
	StatusImproving      = "improving"
	StatusStruggling     = "struggling"
)

// ErrorDetail is one entry of the append-only mistake log.
type ErrorDetail struct {
	Date          time.Time `bson:"date" json:"date"`
	UserAnswer    string    `bson:"user_answer" json:"user_answer"`
	CorrectAnswer string    `bson:"correct_answer" json:"correct_answer"`
	ErrorType     string    `bson:"error_type" json:"error_type"`
	Context       string    `bson:"context" json:"context"`
}

// ReviewAttempt is one entry of the append-only review log.
type ReviewAttempt struct {
	Date            time.Time `bson:"date" json:"date"`
	WasSuccessful   bool      `bson:"was_successful" json:"was_successful"`
	Method          string    `bson:"method" json:"method"`
	ResponseTimeMs  int       `bson:"response_time_ms" json:"response_time_ms"`
	ConfidenceLevel int       `bson:"confidence_level" json:"confidence_level"`
}

// LearningNotes are free-text memory aids attached to a wrong word.
type LearningNotes struct {
	UserNotes        string `bson:"user_notes" json:"user_notes"`
	Mnemonic         string `bson:"mnemonic" json:"mnemonic"`
	DifficultyReason string `bson:"difficulty_reason" json:"difficulty_reason"`
	Example          string `bson:"example" json:"example"`
}

// WrongWordRecord tracks a word the user has answered incorrectly at least
// once. It exists alongside WordLearningState and is created lazily on the
// first wrong answer.
type WrongWordRecord struct {
	ID             string          `bson:"_id,omitempty" json:"id"`
	UserID         string          `bson:"user_id" json:"user_id"`
	DictionaryID   string          `bson:"dictionary_id" json:"dictionary_id"`
	Word           string          `bson:"word" json:"word"`
	WordIndex      int             `bson:"word_index" json:"word_index"`
	ErrorCount     int             `bson:"error_count" json:"error_count"`
	ReviewPriority int             `bson:"review_priority" json:"review_priority"`
	IsResolved     bool            `bson:"is_resolved" json:"is_resolved"`
	FirstWrongDate time.Time       `bson:"first_wrong_date" json:"first_wrong_date"`
	LastWrongDate  time.Time       `bson:"last_wrong_date" json:"last_wrong_date"`
	ResolvedDate   *time.Time      `bson:"resolved_date,omitempty" json:"resolved_date,omitempty"`
	ErrorDetails   []ErrorDetail   `bson:"error_details" json:"error_details"`
	ReviewHistory  []ReviewAttempt `bson:"review_history" json:"review_history"`
	Notes          LearningNotes   `bson:"learning_notes" json:"learning_notes"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}

// DaysSinceLastError returns whole days elapsed since the most recent mistake.
func (r *WrongWordRecord) DaysSinceLastError(now time.Time) int {
	if r.LastWrongDate.IsZero() || now.Before(r.LastWrongDate) {
		return 0
	}
	return int(now.Sub(r.LastWrongDate).Hours() / 24)
}

// SuccessfulReviewRate returns the percentage of successful reviews across
// the whole review history, 0 when there are none.
func (r *WrongWordRecord) SuccessfulReviewRate() float64 {
	total := len(r.ReviewHistory)
	if total == 0 {
		return 0
	}
	successful := 0
	for _, rev := range r.ReviewHistory {
		if rev.WasSuccessful {
			successful++
		}
	}
	return 100 * float64(successful) / float64(total)
}

// UrgencyScore ranks how badly this word needs review. Higher is more urgent.
// Recency contributes only within the first week after a mistake; a strong
// review record pulls the score down. Never negative.
func (r *WrongWordRecord) UrgencyScore(now time.Time) float64 {
	days := r.DaysSinceLastError(now)
	recency := 7 - days
	if recency < 0 {
		recency = 0
	}
	score := float64(r.ReviewPriority*20) +
		float64(r.ErrorCount*10) +
		float64(recency*5) -
		r.SuccessfulReviewRate()
	if score < 0 {
		return 0
	}
	return score
}

// ReviewStatus labels the record for presentation. Checks are ordered:
// resolution wins, then a near-resolution rate, then the no-reviews case,
// then improving vs struggling.
func (r *WrongWordRecord) ReviewStatus() string {
	if r.IsResolved {
		return StatusResolved
	}
	rate := r.SuccessfulReviewRate()
	if rate >= 80 {
		return StatusNearlyResolved
	}
	if len(r.ReviewHistory) == 0 {
		return StatusNeedsReview
	}
	if rate >= 50 {
		return StatusImproving
	}
	return StatusStruggling
}

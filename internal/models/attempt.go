package models

// SubmitAttemptRequest is the payload for recording one graded answer.
// UserDifficulty is the learner's own 1-5 rating and is optional.
type SubmitAttemptRequest struct {
	Word           string `json:"word" binding:"required"`
	WordIndex      int    `json:"word_index"`
	IsCorrect      bool   `json:"is_correct"`
	ResponseTimeMs int    `json:"response_time_ms" binding:"min=0"`
	UserDifficulty *int   `json:"user_difficulty,omitempty" binding:"omitempty,min=1,max=5"`
	UserAnswer     string `json:"user_answer,omitempty"`
	CorrectAnswer  string `json:"correct_answer,omitempty"`
	ErrorType      string `json:"error_type,omitempty"`
	Context        string `json:"context,omitempty"`
	AttemptID      string `json:"attempt_id,omitempty"`
}

// SubmitReviewRequest is the payload for recording one wrong-word review.
type SubmitReviewRequest struct {
	Word            string `json:"word" binding:"required"`
	WasSuccessful   bool   `json:"was_successful"`
	Method          string `json:"method,omitempty"`
	ResponseTimeMs  int    `json:"response_time_ms"`
	ConfidenceLevel int    `json:"confidence_level"`
}

// ReviewQueueItem is the read-only projection served by the review queue.
type ReviewQueueItem struct {
	Word                 string  `json:"word"`
	WordIndex            int     `json:"word_index"`
	DictionaryID         string  `json:"dictionary_id"`
	ErrorCount           int     `json:"error_count"`
	ReviewPriority       int     `json:"review_priority"`
	UrgencyScore         float64 `json:"urgency_score"`
	ReviewStatus         string  `json:"review_status"`
	SuccessfulReviewRate float64 `json:"successful_review_rate"`
	DaysSinceLastError   int     `json:"days_since_last_error"`
}

// ProgressStats summarises a user's standing in one dictionary.
type ProgressStats struct {
	DictionaryID     string  `json:"dictionary_id"`
	WordsStarted     int     `json:"words_started"`
	WordsMastered    int     `json:"words_mastered"`
	WordsDue         int     `json:"words_due"`
	TotalAttempts    int     `json:"total_attempts"`
	OverallAccuracy  float64 `json:"overall_accuracy"`
	UnresolvedErrors int     `json:"unresolved_errors"`
}

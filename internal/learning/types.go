package learning

// AttemptInput is one graded answer submission. UserDifficulty, when present,
// is the learner's own 1-5 rating of the word and feeds the ease factor.
type AttemptInput struct {
	IsCorrect      bool `json:"is_correct"`
	ResponseTimeMs int  `json:"response_time_ms"`
	UserDifficulty *int `json:"user_difficulty,omitempty"`
}

// ReviewInput is one wrong-word review session.
type ReviewInput struct {
	WasSuccessful   bool   `json:"was_successful"`
	Method          string `json:"method"`
	ResponseTimeMs  int    `json:"response_time_ms"`
	ConfidenceLevel int    `json:"confidence_level"`
}

// MasteryRule is one threshold of the mastery ladder. Rules are evaluated in
// order and the first match wins.
type MasteryRule struct {
	MinAttempts           int     `json:"min_attempts"`
	MinAccuracy           float64 `json:"min_accuracy"`
	MinConsecutiveCorrect int     `json:"min_consecutive_correct"`
	Level                 int     `json:"level"`
	Mastered              bool    `json:"mastered"`
}

// PriorityRule maps an error-count threshold to a review priority.
type PriorityRule struct {
	MinErrors int `json:"min_errors"`
	Priority  int `json:"priority"`
}

// LearningConfig holds the numeric policy of the progress engine.
type LearningConfig struct {
	// SM-2 schedule constants.
	InitialEaseFactor float64 `json:"initial_ease_factor"`
	MinEaseFactor     float64 `json:"min_ease_factor"`
	FirstIntervalDays int     `json:"first_interval_days"`
	SecondIntervalDay int     `json:"second_interval_days"`
	EaseStep          float64 `json:"ease_step"`
	DifficultyPivot   int     `json:"difficulty_pivot"`
	DefaultDifficulty int     `json:"default_difficulty"`

	// Mastery ladder, highest rule first.
	MasteryRules []MasteryRule `json:"mastery_rules"`
	// Consecutive wrong answers that trigger a mastery decay.
	DecayThreshold int `json:"decay_threshold"`
	// Review offset applied when a word is explicitly marked mastered.
	MasteredReviewDays int `json:"mastered_review_days"`

	// Wrong-word review priority ladder, highest rule first.
	PriorityRules []PriorityRule `json:"priority_rules"`
	// Auto-resolution window over the most recent reviews.
	ResolutionWindow    int     `json:"resolution_window"`
	ResolutionMinCount  int     `json:"resolution_min_count"`
	ResolutionThreshold float64 `json:"resolution_threshold"`
}

// DefaultLearningConfig returns the stock policy.
func DefaultLearningConfig() *LearningConfig {
	return &LearningConfig{
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		FirstIntervalDays: 1,
		SecondIntervalDay: 6,
		EaseStep:          0.15,
		DifficultyPivot:   3,
		DefaultDifficulty: 3,
		MasteryRules: []MasteryRule{
			{MinAttempts: 5, MinAccuracy: 90, MinConsecutiveCorrect: 3, Level: 5, Mastered: true},
			{MinAttempts: 4, MinAccuracy: 80, MinConsecutiveCorrect: 2, Level: 4},
			{MinAttempts: 3, MinAccuracy: 70, Level: 3},
			{MinAttempts: 2, MinAccuracy: 50, Level: 2},
			{MinAttempts: 1, Level: 1},
		},
		DecayThreshold:     3,
		MasteredReviewDays: 30,
		PriorityRules: []PriorityRule{
			{MinErrors: 5, Priority: 5},
			{MinErrors: 3, Priority: 4},
			{MinErrors: 2, Priority: 3},
		},
		ResolutionWindow:    5,
		ResolutionMinCount:  3,
		ResolutionThreshold: 0.8,
	}
}

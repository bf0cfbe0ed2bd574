package selection

import "vocab-service/internal/models"

// PracticeCandidate is a word paired with its learning state. State is nil
// for words the user has never attempted.
type PracticeCandidate struct {
	Word      models.Word               `json:"word"`
	WordIndex int                       `json:"word_index"`
	State     *models.WordLearningState `json:"state,omitempty"`
}

// WeightedCandidate carries the selection weight computed for a candidate.
type WeightedCandidate struct {
	Candidate PracticeCandidate `json:"candidate"`
	Weight    float64           `json:"weight"`
}

// Criteria tunes the practice batch composition.
type Criteria struct {
	Count          int     `json:"count"`
	NewWordWeight  float64 `json:"new_word_weight"`
	OverdueWeight  float64 `json:"overdue_weight"`
	MaxOverdueDays int     `json:"max_overdue_days"`
	MasteryPenalty float64 `json:"mastery_penalty"`
	ErrorBonus     float64 `json:"error_bonus"`
}

// DefaultCriteria favours overdue words, then fresh ones, and steers away
// from words already near mastery.
func DefaultCriteria() *Criteria {
	return &Criteria{
		Count:          10,
		NewWordWeight:  3.0,
		OverdueWeight:  1.5,
		MaxOverdueDays: 14,
		MasteryPenalty: 0.35,
		ErrorBonus:     0.5,
	}
}

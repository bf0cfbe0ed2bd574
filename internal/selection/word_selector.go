package selection

import (
	"math/rand"
	"time"
)

// Floor for words that stay in the pool; penalties reduce a candidate's
// odds but never remove it.
const minWeight = 0.1

// WordSelector picks practice words by weighted random draw so sessions mix
// overdue reviews with new material instead of replaying the same list.
type WordSelector struct {
	rand *rand.Rand
	now  func() time.Time
}

func NewWordSelector() *WordSelector {
	return &WordSelector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

// SelectPracticeWords draws up to criteria.Count candidates without
// replacement, weight-proportional. Mastered words that are not yet due are
// excluded outright.
func (s *WordSelector) SelectPracticeWords(candidates []PracticeCandidate, criteria *Criteria) []PracticeCandidate {
	if criteria == nil {
		criteria = DefaultCriteria()
	}
	now := s.now()

	weighted := make([]WeightedCandidate, 0, len(candidates))
	for _, c := range candidates {
		w := s.weight(c, criteria, now)
		if w <= 0 {
			continue
		}
		weighted = append(weighted, WeightedCandidate{Candidate: c, Weight: w})
	}

	count := criteria.Count
	if count <= 0 || count > len(weighted) {
		count = len(weighted)
	}

	selected := make([]PracticeCandidate, 0, count)
	for len(selected) < count {
		idx := s.draw(weighted)
		selected = append(selected, weighted[idx].Candidate)
		weighted = append(weighted[:idx], weighted[idx+1:]...)
	}
	return selected
}

// weight scores one candidate. New words get a flat boost; attempted words
// are scored by how overdue they are, dragged down by mastery and pushed up
// by past mistakes.
func (s *WordSelector) weight(c PracticeCandidate, criteria *Criteria, now time.Time) float64 {
	if c.State == nil {
		return criteria.NewWordWeight
	}
	state := c.State

	if state.IsMastered && !state.IsDue(now) {
		return 0
	}

	weight := 1.0

	overdue := state.DaysOverdue(now)
	if overdue > criteria.MaxOverdueDays {
		overdue = criteria.MaxOverdueDays
	}
	weight += float64(overdue) * criteria.OverdueWeight

	weight -= float64(state.MasteryLevel) * criteria.MasteryPenalty
	weight += float64(state.WrongAttempts) * criteria.ErrorBonus

	if weight < minWeight {
		return minWeight
	}
	return weight
}

// draw returns the index of one weight-proportional pick.
func (s *WordSelector) draw(pool []WeightedCandidate) int {
	total := 0.0
	for _, wc := range pool {
		total += wc.Weight
	}
	if total <= 0 {
		return s.rand.Intn(len(pool))
	}
	target := s.rand.Float64() * total
	acc := 0.0
	for i, wc := range pool {
		acc += wc.Weight
		if target < acc {
			return i
		}
	}
	return len(pool) - 1
}

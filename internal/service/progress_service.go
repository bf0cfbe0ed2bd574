package service

import (
	"context"
	"fmt"
	"time"

	"vocab-service/internal/dictstore"
	"vocab-service/internal/event"
	"vocab-service/internal/learning"
	"vocab-service/internal/models"
	"vocab-service/internal/repository"
	"vocab-service/internal/selection"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 10 * time.Minute

// ProgressService runs the attempt-submission flow: load persisted state,
// run the learning engine, persist the results, emit events. Each call
// touches one WordLearningState and at most one WrongWordRecord.
type ProgressService struct {
	Repo      *repository.ProgressRepository
	WrongRepo *repository.WrongWordRepository
	Dict      *dictstore.Store
	engine    *learning.Engine
	selector  *selection.WordSelector
	redis     *redis.Client
	publisher *event.Publisher
}

func NewProgressService(
	repo *repository.ProgressRepository,
	wrongRepo *repository.WrongWordRepository,
	dict *dictstore.Store,
	redisClient *redis.Client,
	publisher *event.Publisher,
) *ProgressService {
	return &ProgressService{
		Repo:      repo,
		WrongRepo: wrongRepo,
		Dict:      dict,
		engine:    learning.NewEngine(nil),
		selector:  selection.NewWordSelector(),
		redis:     redisClient,
		publisher: publisher,
	}
}

// SubmitAttempt records one graded answer. The learning state is created
// lazily on the first attempt; a wrong answer also updates (or creates) the
// word's wrong-word record, and a correct answer on an open record counts as
// a successful practice review.
func (s *ProgressService) SubmitAttempt(ctx context.Context, userID, dictionaryID string, req *models.SubmitAttemptRequest) (*models.WordLearningState, *models.WrongWordRecord, error) {
	if dup, err := s.isDuplicate(ctx, userID, dictionaryID, req); err != nil {
		return nil, nil, err
	} else if dup {
		return nil, nil, ErrDuplicateAttempt
	}

	state, err := s.Repo.FindOne(ctx, userID, dictionaryID, req.Word)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		index := req.WordIndex
		if _, found, err := s.Dict.FindWord(dictionaryID, req.Word); err == nil {
			index = found
		}
		state = s.engine.NewWordLearningState(userID, dictionaryID, req.Word, index)
	}

	wasMastered := state.IsMastered
	s.engine.RecordAttempt(state, learning.AttemptInput{
		IsCorrect:      req.IsCorrect,
		ResponseTimeMs: req.ResponseTimeMs,
		UserDifficulty: req.UserDifficulty,
	})
	if err := s.Repo.Upsert(ctx, state); err != nil {
		return nil, nil, err
	}

	record, err := s.updateWrongWord(ctx, userID, dictionaryID, state, req)
	if err != nil {
		return nil, nil, err
	}

	s.publisher.Publish(event.AttemptRecorded, map[string]interface{}{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          req.Word,
		"is_correct":    req.IsCorrect,
		"mastery_level": state.MasteryLevel,
	})
	if !wasMastered && state.IsMastered {
		s.publisher.Publish(event.WordMastered, map[string]interface{}{
			"user_id":       userID,
			"dictionary_id": dictionaryID,
			"word":          req.Word,
		})
	}
	return state, record, nil
}

// updateWrongWord keeps the wrong-word record in step with one attempt.
func (s *ProgressService) updateWrongWord(ctx context.Context, userID, dictionaryID string, state *models.WordLearningState, req *models.SubmitAttemptRequest) (*models.WrongWordRecord, error) {
	record, err := s.WrongRepo.FindOne(ctx, userID, dictionaryID, req.Word)
	if err != nil {
		return nil, err
	}

	if !req.IsCorrect {
		if record == nil {
			record = s.engine.NewWrongWordRecord(userID, dictionaryID, req.Word, state.WordIndex)
		}
		s.engine.AddError(record, req.UserAnswer, req.CorrectAnswer, req.ErrorType, req.Context)
		return record, s.WrongRepo.Upsert(ctx, record)
	}

	// A correct attempt on an open record counts as a successful review.
	if record != nil && !record.IsResolved {
		s.engine.AddReview(record, learning.ReviewInput{
			WasSuccessful:  true,
			Method:         "practice",
			ResponseTimeMs: req.ResponseTimeMs,
		})
		if err := s.WrongRepo.Upsert(ctx, record); err != nil {
			return nil, err
		}
		if record.IsResolved {
			s.publisher.Publish(event.WrongWordResolved, map[string]interface{}{
				"user_id":       userID,
				"dictionary_id": dictionaryID,
				"word":          req.Word,
			})
		}
	}
	return record, nil
}

// isDuplicate drops retransmitted submissions carrying the same attempt id.
// Without Redis or an attempt id the check is skipped and retries double
// count, matching the original behaviour.
func (s *ProgressService) isDuplicate(ctx context.Context, userID, dictionaryID string, req *models.SubmitAttemptRequest) (bool, error) {
	if s.redis == nil || req.AttemptID == "" {
		return false, nil
	}
	key := fmt.Sprintf("vocab:idem:%s:%s:%s:%s", userID, dictionaryID, req.Word, req.AttemptID)
	set, err := s.redis.SetNX(ctx, key, 1, idempotencyTTL).Result()
	if err != nil {
		// Cache trouble must not block submissions.
		return false, nil
	}
	return !set, nil
}

// GetProgress returns the state for one word.
func (s *ProgressService) GetProgress(ctx context.Context, userID, dictionaryID, word string) (*models.WordLearningState, error) {
	state, err := s.Repo.FindOne(ctx, userID, dictionaryID, word)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrProgressNotFound
	}
	return state, nil
}

// ListProgress pages through a user's states in word order.
func (s *ProgressService) ListProgress(ctx context.Context, userID, dictionaryID string, limit, offset int64) ([]models.WordLearningState, error) {
	return s.Repo.ListByUser(ctx, userID, dictionaryID, limit, offset)
}

// ListDue returns words scheduled for review.
func (s *ProgressService) ListDue(ctx context.Context, userID, dictionaryID string, limit int64) ([]models.WordLearningState, error) {
	return s.Repo.ListDue(ctx, userID, dictionaryID, time.Now(), limit)
}

// Reset wipes a word back to the zero state for re-learning.
func (s *ProgressService) Reset(ctx context.Context, userID, dictionaryID, word string) (*models.WordLearningState, error) {
	state, err := s.Repo.FindOne(ctx, userID, dictionaryID, word)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrProgressNotFound
	}
	s.engine.ResetProgress(state)
	if err := s.Repo.Upsert(ctx, state); err != nil {
		return nil, err
	}
	s.publisher.Publish(event.ProgressReset, map[string]interface{}{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          word,
	})
	return state, nil
}

// MarkMastered applies the manual mastery override. The state is created
// first when the word was never attempted.
func (s *ProgressService) MarkMastered(ctx context.Context, userID, dictionaryID, word string) (*models.WordLearningState, error) {
	state, err := s.Repo.FindOne(ctx, userID, dictionaryID, word)
	if err != nil {
		return nil, err
	}
	if state == nil {
		index := 0
		if _, found, err := s.Dict.FindWord(dictionaryID, word); err == nil {
			index = found
		}
		state = s.engine.NewWordLearningState(userID, dictionaryID, word, index)
	}
	wasMastered := state.IsMastered
	s.engine.MarkAsMastered(state)
	if err := s.Repo.Upsert(ctx, state); err != nil {
		return nil, err
	}
	if !wasMastered {
		s.publisher.Publish(event.WordMastered, map[string]interface{}{
			"user_id":       userID,
			"dictionary_id": dictionaryID,
			"word":          word,
		})
	}
	return state, nil
}

// Stats summarises a user's standing in one dictionary.
func (s *ProgressService) Stats(ctx context.Context, userID, dictionaryID string) (*models.ProgressStats, error) {
	now := time.Now()
	started, err := s.Repo.CountStarted(ctx, userID, dictionaryID)
	if err != nil {
		return nil, err
	}
	mastered, err := s.Repo.CountMastered(ctx, userID, dictionaryID)
	if err != nil {
		return nil, err
	}
	due, err := s.Repo.CountDue(ctx, userID, dictionaryID, now)
	if err != nil {
		return nil, err
	}
	unresolved, err := s.WrongRepo.CountUnresolved(ctx, userID, dictionaryID)
	if err != nil {
		return nil, err
	}

	states, err := s.Repo.ListByUser(ctx, userID, dictionaryID, 0, 0)
	if err != nil {
		return nil, err
	}
	totalAttempts, totalCorrect := 0, 0
	for _, st := range states {
		totalAttempts += st.TotalAttempts()
		totalCorrect += st.CorrectAttempts
	}
	accuracy := 0.0
	if totalAttempts > 0 {
		accuracy = 100 * float64(totalCorrect) / float64(totalAttempts)
	}

	return &models.ProgressStats{
		DictionaryID:     dictionaryID,
		WordsStarted:     int(started),
		WordsMastered:    int(mastered),
		WordsDue:         int(due),
		TotalAttempts:    totalAttempts,
		OverallAccuracy:  accuracy,
		UnresolvedErrors: int(unresolved),
	}, nil
}

// PracticeBatch picks the next words to drill: overdue reviews, error-prone
// words and unseen material, weighted-random so batches vary.
func (s *ProgressService) PracticeBatch(ctx context.Context, userID, dictionaryID string, count int) ([]selection.PracticeCandidate, error) {
	words, err := s.Dict.Words(dictionaryID)
	if err != nil {
		return nil, err
	}
	states, err := s.Repo.ListByUser(ctx, userID, dictionaryID, 0, 0)
	if err != nil {
		return nil, err
	}

	byWord := make(map[string]*models.WordLearningState, len(states))
	for i := range states {
		byWord[states[i].Word] = &states[i]
	}

	candidates := make([]selection.PracticeCandidate, 0, len(words))
	for i, w := range words {
		candidates = append(candidates, selection.PracticeCandidate{
			Word:      w,
			WordIndex: i,
			State:     byWord[w.Word],
		})
	}

	criteria := selection.DefaultCriteria()
	if count > 0 {
		criteria.Count = count
	}
	return s.selector.SelectPracticeWords(candidates, criteria), nil
}

package service

import (
	"context"
	"errors"
	"time"

	"vocab-service/internal/event"
	"vocab-service/internal/learning"
	"vocab-service/internal/models"
	"vocab-service/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewService serves the wrong-word review queue and records review
// sessions against it.
type ReviewService struct {
	WrongRepo    *repository.WrongWordRepository
	ProgressRepo *repository.ProgressRepository
	engine       *learning.Engine
	publisher    *event.Publisher
}

func NewReviewService(wrongRepo *repository.WrongWordRepository, progressRepo *repository.ProgressRepository, publisher *event.Publisher) *ReviewService {
	return &ReviewService{
		WrongRepo:    wrongRepo,
		ProgressRepo: progressRepo,
		engine:       learning.NewEngine(nil),
		publisher:    publisher,
	}
}

// Queue returns the urgency-ranked review projection. Ranking is recomputed
// on every call because the score decays with time since the last mistake.
func (s *ReviewService) Queue(ctx context.Context, userID, dictionaryID string, limit int) ([]models.ReviewQueueItem, error) {
	records, err := s.WrongRepo.ListUnresolved(ctx, userID, dictionaryID)
	if err != nil {
		return nil, err
	}
	ranked := s.engine.RankWrongWords(records, limit)
	return s.engine.QueueProjection(ranked), nil
}

// SubmitReview records one review session. A successful review also feeds
// back into the word's learning state as a correct attempt.
func (s *ReviewService) SubmitReview(ctx context.Context, userID, dictionaryID string, req *models.SubmitReviewRequest) (*models.WrongWordRecord, error) {
	record, err := s.WrongRepo.FindOne(ctx, userID, dictionaryID, req.Word)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrWrongWordNotFound
	}

	wasResolved := record.IsResolved
	s.engine.AddReview(record, learning.ReviewInput{
		WasSuccessful:   req.WasSuccessful,
		Method:          req.Method,
		ResponseTimeMs:  req.ResponseTimeMs,
		ConfidenceLevel: req.ConfidenceLevel,
	})
	if err := s.WrongRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	state, err := s.ProgressRepo.FindOne(ctx, userID, dictionaryID, req.Word)
	if err != nil {
		return nil, err
	}
	if s.applyReviewFeedback(state, req) {
		if err := s.ProgressRepo.Upsert(ctx, state); err != nil {
			return nil, err
		}
	}

	if !wasResolved && record.IsResolved {
		s.publisher.Publish(event.WrongWordResolved, map[string]interface{}{
			"user_id":       userID,
			"dictionary_id": dictionaryID,
			"word":          req.Word,
		})
	}
	return record, nil
}

// applyReviewFeedback folds a passed review into the word's learning state
// as a correct attempt and reports whether the state changed. Failed reviews
// only touch the wrong-word record, never the schedule or mastery level.
func (s *ReviewService) applyReviewFeedback(state *models.WordLearningState, req *models.SubmitReviewRequest) bool {
	if state == nil || !req.WasSuccessful {
		return false
	}
	s.engine.RecordAttempt(state, learning.AttemptInput{
		IsCorrect:      true,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	return true
}

// Resolve applies the manual resolution override.
func (s *ReviewService) Resolve(ctx context.Context, userID, dictionaryID, word string) (*models.WrongWordRecord, error) {
	record, err := s.WrongRepo.FindOne(ctx, userID, dictionaryID, word)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrWrongWordNotFound
	}
	s.engine.MarkAsResolved(record)
	if err := s.WrongRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	s.publisher.Publish(event.WrongWordResolved, map[string]interface{}{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          word,
		"manual":        true,
	})
	return record, nil
}

// Unresolve reopens a record manually.
func (s *ReviewService) Unresolve(ctx context.Context, userID, dictionaryID, word string) (*models.WrongWordRecord, error) {
	record, err := s.WrongRepo.FindOne(ctx, userID, dictionaryID, word)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrWrongWordNotFound
	}
	s.engine.MarkAsUnresolved(record)
	if err := s.WrongRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateNotes replaces the learning aids on a record.
func (s *ReviewService) UpdateNotes(ctx context.Context, userID, dictionaryID, word string, notes models.LearningNotes) error {
	err := s.WrongRepo.UpdateNotes(ctx, userID, dictionaryID, word, notes, time.Now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrWrongWordNotFound
	}
	return err
}

// ResolvedHistory lists recently resolved records.
func (s *ReviewService) ResolvedHistory(ctx context.Context, userID, dictionaryID string, limit int64) ([]*models.WrongWordRecord, error) {
	return s.WrongRepo.ListResolved(ctx, userID, dictionaryID, limit)
}

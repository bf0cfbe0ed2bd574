package repository

import (
	"context"
	"errors"
	"time"

	"vocab-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("word_progress")}
}

// FindOne returns the state for one (user, dictionary, word) triple, or
// (nil, nil) when the word has never been attempted.
func (r *ProgressRepository) FindOne(ctx context.Context, userID, dictionaryID, word string) (*models.WordLearningState, error) {
	var state models.WordLearningState
	err := r.Col.FindOne(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          word,
	}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Upsert writes the full state document back, creating it on first attempt.
func (r *ProgressRepository) Upsert(ctx context.Context, state *models.WordLearningState) error {
	if state.ID == "" {
		state.ID = primitive.NewObjectID().Hex()
	}
	filter := bson.M{
		"user_id":       state.UserID,
		"dictionary_id": state.DictionaryID,
		"word":          state.Word,
	}
	_, err := r.Col.ReplaceOne(ctx, filter, state, options.Replace().SetUpsert(true))
	return err
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID, dictionaryID string, limit, offset int64) ([]models.WordLearningState, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "word_index", Value: 1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID, "dictionary_id": dictionaryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var states []models.WordLearningState
	for cur.Next(ctx) {
		var s models.WordLearningState
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, cur.Err()
}

// ListDue returns states scheduled for review at or before now, soonest
// first.
func (r *ProgressRepository) ListDue(ctx context.Context, userID, dictionaryID string, now time.Time, limit int64) ([]models.WordLearningState, error) {
	opts := options.Find().SetSort(bson.D{{Key: "next_review", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.Col.Find(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"next_review":   bson.M{"$lte": now},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var states []models.WordLearningState
	for cur.Next(ctx) {
		var s models.WordLearningState
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, cur.Err()
}

func (r *ProgressRepository) CountStarted(ctx context.Context, userID, dictionaryID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"user_id": userID, "dictionary_id": dictionaryID})
}

func (r *ProgressRepository) CountMastered(ctx context.Context, userID, dictionaryID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"is_mastered":   true,
	})
}

func (r *ProgressRepository) CountDue(ctx context.Context, userID, dictionaryID string, now time.Time) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"next_review":   bson.M{"$lte": now},
	})
}

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

type WrongWordRepository struct {
	Col *mongo.Collection
}

func NewWrongWordRepository(db *mongo.Database) *WrongWordRepository {
	return &WrongWordRepository{Col: db.Collection("wrong_words")}
}

// FindOne returns the record for one (user, dictionary, word) triple, or
// (nil, nil) when the word was never answered incorrectly.
func (r *WrongWordRepository) FindOne(ctx context.Context, userID, dictionaryID, word string) (*models.WrongWordRecord, error) {
	var rec models.WrongWordRecord
	err := r.Col.FindOne(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          word,
	}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *WrongWordRepository) Upsert(ctx context.Context, rec *models.WrongWordRecord) error {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	filter := bson.M{
		"user_id":       rec.UserID,
		"dictionary_id": rec.DictionaryID,
		"word":          rec.Word,
	}
	_, err := r.Col.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	return err
}

// ListUnresolved returns every open record for ranking; the urgency order is
// computed in-process, not in the query.
func (r *WrongWordRepository) ListUnresolved(ctx context.Context, userID, dictionaryID string) ([]*models.WrongWordRecord, error) {
	return r.list(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"is_resolved":   false,
	}, options.Find())
}

func (r *WrongWordRepository) ListResolved(ctx context.Context, userID, dictionaryID string, limit int64) ([]*models.WrongWordRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "resolved_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.list(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"is_resolved":   true,
	}, opts)
}

func (r *WrongWordRepository) CountUnresolved(ctx context.Context, userID, dictionaryID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"is_resolved":   false,
	})
}

// UpdateNotes replaces the free-text learning aids on a record.
func (r *WrongWordRepository) UpdateNotes(ctx context.Context, userID, dictionaryID, word string, notes models.LearningNotes, now time.Time) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{
		"user_id":       userID,
		"dictionary_id": dictionaryID,
		"word":          word,
	}, bson.M{"$set": bson.M{
		"learning_notes": notes,
		"updated_at":     now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *WrongWordRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.WrongWordRecord, error) {
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []*models.WrongWordRecord
	for cur.Next(ctx) {
		var rec models.WrongWordRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, cur.Err()
}

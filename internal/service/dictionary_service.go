package service

import (
	"context"

	"vocab-service/internal/dictstore"
	"vocab-service/internal/event"
	"vocab-service/internal/models"
)

// DictionaryService exposes the read-only catalog plus the admin import.
type DictionaryService struct {
	Store     *dictstore.Store
	publisher *event.Publisher
}

func NewDictionaryService(store *dictstore.Store, publisher *event.Publisher) *DictionaryService {
	return &DictionaryService{Store: store, publisher: publisher}
}

func (s *DictionaryService) List() []models.Dictionary {
	return s.Store.List()
}

func (s *DictionaryService) Get(id string) (models.Dictionary, error) {
	return s.Store.Get(id)
}

func (s *DictionaryService) WordPage(ctx context.Context, id string, page, pageSize int) (*models.WordPage, error) {
	return s.Store.Page(ctx, id, page, pageSize)
}

// Import validates and installs a new dictionary file, making it available
// without a restart.
func (s *DictionaryService) Import(ctx context.Context, data []byte) (models.Dictionary, error) {
	dict, err := s.Store.Import(ctx, data)
	if err != nil {
		return models.Dictionary{}, err
	}
	s.publisher.Publish(event.DictImported, map[string]interface{}{
		"dictionary_id": dict.ID,
		"name":          dict.Name,
		"word_count":    dict.WordCount,
	})
	return dict, nil
}

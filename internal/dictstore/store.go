package dictstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"vocab-service/internal/config"
	"vocab-service/internal/models"
	"vocab-service/internal/utils"

	"github.com/redis/go-redis/v9"
)

var (
	ErrDictNotFound  = errors.New("dictionary not found")
	ErrWordNotFound  = errors.New("word not found")
	ErrInvalidFormat = errors.New("invalid dictionary format")
)

// Store serves the dictionary catalog from JSON files in a directory. Files
// are loaded into memory once and paginated on read; rendered pages are
// cached in Redis when a client is configured.
type Store struct {
	cfg   config.DictConfig
	redis *redis.Client

	mu    sync.RWMutex
	dicts map[string]*models.DictionaryFile
}

func NewStore(cfg config.DictConfig, redisClient *redis.Client) *Store {
	return &Store{
		cfg:   cfg,
		redis: redisClient,
		dicts: make(map[string]*models.DictionaryFile),
	}
}

// LoadAll reads every *.json file in the configured directory. Files that
// fail validation are skipped with a log line, not fatal.
func (s *Store) LoadAll() error {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return fmt.Errorf("read dictionary dir %s: %w", s.cfg.Dir, err)
	}
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.cfg.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping dictionary %s: %v", entry.Name(), err)
			continue
		}
		dict, err := parse(data)
		if err != nil {
			log.Printf("Skipping dictionary %s: %v", entry.Name(), err)
			continue
		}
		s.mu.Lock()
		s.dicts[dict.ID] = dict
		s.mu.Unlock()
		loaded++
	}
	log.Printf("Loaded %d dictionaries from %s", loaded, s.cfg.Dir)
	return nil
}

// Dictionary ids double as file names, so only a safe charset is accepted.
var dictIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func parse(data []byte) (*models.DictionaryFile, error) {
	var dict models.DictionaryFile
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if dict.ID == "" || dict.Name == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrInvalidFormat)
	}
	if !dictIDPattern.MatchString(dict.ID) {
		return nil, fmt.Errorf("%w: id must match %s", ErrInvalidFormat, dictIDPattern)
	}
	if len(dict.Words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrInvalidFormat)
	}
	for i, w := range dict.Words {
		if w.Word == "" {
			return nil, fmt.Errorf("%w: word %d has no text", ErrInvalidFormat, i)
		}
	}
	dict.WordCount = len(dict.Words)
	return &dict, nil
}

// List returns catalog metadata sorted by id.
func (s *Store) List() []models.Dictionary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Dictionary, 0, len(s.dicts))
	for _, d := range s.dicts {
		out = append(out, d.Dictionary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns one dictionary's metadata.
func (s *Store) Get(id string) (models.Dictionary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dict, ok := s.dicts[id]
	if !ok {
		return models.Dictionary{}, ErrDictNotFound
	}
	return dict.Dictionary, nil
}

// WordAt returns the word at a position in the source dictionary.
func (s *Store) WordAt(id string, index int) (models.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dict, ok := s.dicts[id]
	if !ok {
		return models.Word{}, ErrDictNotFound
	}
	if index < 0 || index >= len(dict.Words) {
		return models.Word{}, ErrWordNotFound
	}
	word := dict.Words[index]
	word.AudioURL = utils.AudioURL(s.cfg.AudioBaseURL, word.Word)
	return word, nil
}

// Words returns a copy of the full word list of a dictionary.
func (s *Store) Words(id string) ([]models.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dict, ok := s.dicts[id]
	if !ok {
		return nil, ErrDictNotFound
	}
	words := make([]models.Word, len(dict.Words))
	copy(words, dict.Words)
	return words, nil
}

// FindWord locates a word by text and returns it with its index.
func (s *Store) FindWord(id, text string) (models.Word, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dict, ok := s.dicts[id]
	if !ok {
		return models.Word{}, 0, ErrDictNotFound
	}
	for i, w := range dict.Words {
		if w.Word == text {
			w.AudioURL = utils.AudioURL(s.cfg.AudioBaseURL, w.Word)
			return w, i, nil
		}
	}
	return models.Word{}, 0, ErrWordNotFound
}

// Page returns one page of a dictionary, 1-based. Pages are cached in Redis
// under a per-dictionary key with the configured TTL.
func (s *Store) Page(ctx context.Context, id string, page, pageSize int) (*models.WordPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.PageSize
	}

	cacheKey := fmt.Sprintf("vocab:dict:%s:page:%d:%d", id, page, pageSize)
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached models.WordPage
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	s.mu.RLock()
	dict, ok := s.dicts[id]
	if !ok {
		s.mu.RUnlock()
		return nil, ErrDictNotFound
	}
	total := len(dict.Words)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	words := make([]models.Word, end-start)
	copy(words, dict.Words[start:end])
	s.mu.RUnlock()

	for i := range words {
		words[i].AudioURL = utils.AudioURL(s.cfg.AudioBaseURL, words[i].Word)
	}

	result := &models.WordPage{
		DictionaryID: id,
		Page:         page,
		PageSize:     pageSize,
		TotalWords:   total,
		TotalPages:   (total + pageSize - 1) / pageSize,
		Words:        words,
	}

	if s.redis != nil {
		if raw, err := json.Marshal(result); err == nil {
			s.redis.Set(ctx, cacheKey, raw, s.cfg.CacheTTL)
		}
	}
	return result, nil
}

// Import validates raw dictionary JSON, persists it to the dictionary
// directory and hot-loads it into the catalog. Cached pages for the id are
// dropped.
func (s *Store) Import(ctx context.Context, data []byte) (models.Dictionary, error) {
	dict, err := parse(data)
	if err != nil {
		return models.Dictionary{}, err
	}

	path := filepath.Join(s.cfg.Dir, dict.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.Dictionary{}, fmt.Errorf("write dictionary file: %w", err)
	}

	s.mu.Lock()
	s.dicts[dict.ID] = dict
	s.mu.Unlock()

	if s.redis != nil {
		pattern := fmt.Sprintf("vocab:dict:%s:page:*", dict.ID)
		if keys, err := s.redis.Keys(ctx, pattern).Result(); err == nil && len(keys) > 0 {
			s.redis.Del(ctx, keys...)
		}
	}

	log.Printf("Imported dictionary %s (%d words)", dict.ID, dict.WordCount)
	return dict.Dictionary, nil
}

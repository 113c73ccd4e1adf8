package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/storage"
)

// Service provides dictionary/word validation functionality.
// Until a load completes every word is reported invalid.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
	failed error
	ready  chan struct{}
	once   sync.Once
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "dictionary")),
		words:   make(map[string]struct{}),
		ready:   make(chan struct{}),
	}
}

// Load parses raw dictionary text and swaps in the resulting word set
func (s *Service) Load(raw string) error {
	words := ParseEntries(raw)
	if len(words) == 0 {
		return model.ErrDictionaryEmpty
	}
	s.swap(words)
	return nil
}

// LoadAsync parses raw text in the background and caches the words in storage.
// Queries keep returning false until the parsed set is swapped in. A source
// with no usable entries leaves the service failed, which Err reports.
func (s *Service) LoadAsync(ctx context.Context, raw string) {
	go func() {
		words := ParseEntries(raw)
		if len(words) == 0 {
			s.fail(model.ErrDictionaryEmpty)
			return
		}
		if err := s.storage.SaveDictionaryWords(ctx, dedupe(words)); err != nil {
			s.logger.Warn("failed to cache dictionary words", slog.String("error", err.Error()))
		}
		s.swap(words)
	}()
}

// WaitLoaded blocks until a load has completed or failed, or ctx is done
func (s *Service) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the terminal failure of a background load, or nil
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}

func (s *Service) fail(cause error) {
	err := fmt.Errorf("%w: %w", model.ErrDictionaryFailed, cause)

	s.mu.Lock()
	s.failed = err
	s.mu.Unlock()

	s.once.Do(func() { close(s.ready) })
	s.logger.Error("dictionary load failed", slog.String("error", err.Error()))
}

// ReadSource reads a dictionary file without parsing it
func ReadSource(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", model.ErrDictionarySourceMissing, path)
		}
		return "", err
	}
	return string(raw), nil
}

// LoadFromFile reads and parses a dictionary file, then caches the normalized
// words in storage for future startups
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	raw, err := ReadSource(path)
	if err != nil {
		return err
	}

	words := ParseEntries(raw)
	if len(words) == 0 {
		return fmt.Errorf("%w: %s", model.ErrDictionaryEmpty, path)
	}

	if err := s.storage.SaveDictionaryWords(ctx, dedupe(words)); err != nil {
		return err
	}

	s.swap(words)
	return nil
}

// LoadFromStorage loads previously cached dictionary words
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.LoadWords(words)
}

// LoadWords directly loads a slice of words, normalizing each
func (s *Service) LoadWords(words []string) error {
	n := newNormalizer()
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if word, ok := parseLine(n, w); ok {
			normalized = append(normalized, word)
		}
	}
	if len(normalized) == 0 {
		return model.ErrDictionaryEmpty
	}
	s.swap(normalized)
	return nil
}

// swap replaces the live word set in one step
func (s *Service) swap(words []string) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	s.mu.Lock()
	s.words = set
	s.loaded = true
	s.failed = nil
	s.mu.Unlock()

	s.once.Do(func() { close(s.ready) })
	s.logger.Info("dictionary loaded", slog.Int("word_count", len(set)))
}

// IsValidWord checks if a word exists in the dictionary.
// The query is normalized exactly like stored entries.
func (s *Service) IsValidWord(word string) bool {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		return false
	}

	key := Normalize(word)
	if key == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[key]
	return ok
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of distinct words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Interface check
type ServiceInterface interface {
	IsValidWord(word string) bool
	IsLoaded() bool
	WordCount() int
	Load(raw string) error
	LoadAsync(ctx context.Context, raw string)
	WaitLoaded(ctx context.Context) error
	Err() error
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

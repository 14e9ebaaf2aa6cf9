package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hodgins-insurance/quoteserver/models"
)

// Store is the global quote store, initialised at startup.
var Store *QuoteStore

// QuoteStore persists submissions as a single append-only JSON array on
// disk. The whole file is rewritten on every append. There is no
// cross-process locking; the expected write volume is a handful of leads per
// day. The mutex serialises writers within this process only.
type QuoteStore struct {
	path string
	mu   sync.Mutex
}

// InitStore initialises the global quote store from configuration.
func InitStore() {
	cfg := App
	if cfg == nil {
		c, err := LoadConfig()
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
		cfg = c
	}
	Store = NewQuoteStore(cfg.QuotesFile)
}

// NewQuoteStore creates a store backed by the given file path.
func NewQuoteStore(path string) *QuoteStore {
	return &QuoteStore{path: path}
}

// NewQuoteID generates a unique submission id of the form
// quote-<epoch millis>-<random suffix>. Ids are never reused.
func NewQuoteID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("quote-%d-%s", time.Now().UnixMilli(), suffix)
}

// Load parses the quotes file. A missing file is an empty collection, not an
// error.
func (s *QuoteStore) Load() ([]models.QuoteSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *QuoteStore) load() ([]models.QuoteSubmission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.QuoteSubmission{}, nil
		}
		return nil, fmt.Errorf("failed to read quotes file: %w", err)
	}
	var quotes []models.QuoteSubmission
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse quotes file: %w", err)
	}
	return quotes, nil
}

// Append assigns a fresh id and server timestamp to the submission, appends
// it to the stored collection and rewrites the file. Returns the stored
// record.
func (s *QuoteStore) Append(q models.QuoteSubmission) (models.QuoteSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load()
	if err != nil {
		return models.QuoteSubmission{}, err
	}

	q.ID = NewQuoteID()
	q.Timestamp = time.Now().UTC().Format(time.RFC3339)
	quotes = append(quotes, q)

	if err := s.save(quotes); err != nil {
		return models.QuoteSubmission{}, err
	}
	return q, nil
}

func (s *QuoteStore) save(quotes []models.QuoteSubmission) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write quotes file: %w", err)
	}
	return nil
}

// GetByID returns the stored submission with the given id, or false when no
// such record exists.
func (s *QuoteStore) GetByID(id string) (models.QuoteSubmission, bool, error) {
	quotes, err := s.Load()
	if err != nil {
		return models.QuoteSubmission{}, false, err
	}
	for _, q := range quotes {
		if q.ID == id {
			return q, true, nil
		}
	}
	return models.QuoteSubmission{}, false, nil
}

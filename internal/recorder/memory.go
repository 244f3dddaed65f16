package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

// MemoryStore keeps records in process memory. It backs local development
// runs without a DATABASE_URL and hermetic tests, with the same
// insert-if-absent race semantics as the Postgres store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*models.PostRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*models.PostRecord),
	}
}

func (s *MemoryStore) InsertIfAbsent(ctx context.Context, record *models.PostRecord) (*models.PostRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[record.SessionID]; ok {
		return copyRecord(existing), false, nil
	}

	stored := copyRecord(record)
	stored.CreatedAt = time.Now().UTC()
	s.records[record.SessionID] = stored
	return copyRecord(stored), true, nil
}

func (s *MemoryStore) GetBySession(ctx context.Context, sessionID string) (*models.PostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(existing), nil
}

func (s *MemoryStore) IncrementDisplayed(ctx context.Context, sessionID string, by int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[sessionID]
	if !ok {
		return 0, ErrNotFound
	}
	existing.DisplayedCount += by
	return existing.DisplayedCount, nil
}

func copyRecord(r *models.PostRecord) *models.PostRecord {
	clone := *r
	clone.AssetURLs = append([]string(nil), r.AssetURLs...)
	return &clone
}

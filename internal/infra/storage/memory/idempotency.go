package memory

import (
	"context"
	"sync"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/middleware"
)

// IdempotencyStore remembers command outcomes by key for the lifetime of
// the process. Records are never evicted; a restart forgetting them only
// costs a retried command a fresh execution.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]middleware.IdempotencyRecord
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[string]middleware.IdempotencyRecord{}}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	s.records[rec.Key] = rec
	s.mu.Unlock()
	return nil
}

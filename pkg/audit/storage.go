package audit

import (
	"context"
	"sort"
	"sync"
)

// Storage persists audit entries. Select returns entries newest-first,
// bounded by the filter's limit.
type Storage interface {
	Insert(ctx context.Context, entry Entry) error
	Select(ctx context.Context, filter Filter) ([]Entry, error)
}

// MemoryStorage keeps entries in process memory, for tests and
// single-binary setups.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStorage creates an empty in-memory audit storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Insert(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Select(ctx context.Context, filter Filter) ([]Entry, error) {
	s.mu.RLock()
	matched := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.ActorID != nil && (e.ActorID == nil || *e.ActorID != *filter.ActorID) {
			continue
		}
		if filter.Resource != "" && e.Resource != filter.Resource {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

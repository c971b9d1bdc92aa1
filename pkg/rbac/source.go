package rbac

import (
	"context"
	"sync"
)

// GrantSource provides the explicit role-to-permission grants from durable
// storage. An empty result means "no explicit grants"; the resolver then
// falls back to the role's default set.
type GrantSource interface {
	Grants(ctx context.Context, role string) ([]string, error)
}

// GrantWriter is implemented by sources that can persist grants, used by
// Seed and by administrative permission edits.
type GrantWriter interface {
	SaveGrants(ctx context.Context, role string, permissions []string) error
}

// MemorySource is a GrantSource backed by an in-process map, for tests and
// single-binary setups.
type MemorySource struct {
	mu     sync.RWMutex
	grants map[string][]string
}

// NewMemorySource creates a memory grant source, optionally pre-populated.
func NewMemorySource(grants map[string][]string) *MemorySource {
	copied := make(map[string][]string, len(grants))
	for role, perms := range grants {
		permsCopy := make([]string, len(perms))
		copy(permsCopy, perms)
		copied[role] = permsCopy
	}
	return &MemorySource{grants: copied}
}

func (s *MemorySource) Grants(ctx context.Context, role string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, ok := s.grants[role]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out, nil
}

func (s *MemorySource) SaveGrants(ctx context.Context, role string, permissions []string) error {
	copied := make([]string, len(permissions))
	copy(copied, permissions)

	s.mu.Lock()
	s.grants[role] = copied
	s.mu.Unlock()
	return nil
}

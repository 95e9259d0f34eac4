package preview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cardexhq/cardex/internal/common"
)

type memoryEntry struct {
	preview   *Preview
	expiresAt time.Time
}

// MemoryStore is the default single-process preview store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, p *Preview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[p.Token] = memoryEntry{preview: p, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, token)
		return nil, fmt.Errorf("preview %q: %w", token, common.ErrNotFound)
	}
	return e.preview, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// sweepLocked drops expired entries so abandoned uploads do not pile up.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
}

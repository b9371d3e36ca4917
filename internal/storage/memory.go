package storage

import (
	"sync"

	"github.com/qepting91/jamcomments/internal/domain"
)

// MemoryStore is an in-process Store, mostly for tests
type MemoryStore struct {
	mu       sync.RWMutex
	comments domain.Collection
	present  bool
	puts     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store that already holds a snapshot
func NewMemoryStoreWith(c domain.Collection) *MemoryStore {
	s := &MemoryStore{}
	s.comments = clone(c)
	s.present = true
	return s
}

func (s *MemoryStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present
}

func (s *MemoryStore) Get() (domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, &domain.CacheMissingError{Path: "memory"}
	}
	return clone(s.comments), nil
}

func (s *MemoryStore) Put(c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = clone(c)
	s.present = true
	s.puts++
	return nil
}

// Puts reports how many snapshots have been written
func (s *MemoryStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

func clone(c domain.Collection) domain.Collection {
	out := make(domain.Collection, len(c))
	copy(out, c)
	return out
}

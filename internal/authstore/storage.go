package authstore

import (
	"context"
	"sync"
)

// Storage persists a single blob under a fixed key. Implementations must not
// touch any key other than the one they were bound to.
type Storage interface {
	// Get returns the blob and whether one exists.
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, blob []byte) error
	Delete(ctx context.Context) error
}

// MemorySpace is an in-memory key space shared by several Storage handles,
// mirroring how browser storage is shared by key within one origin.
type MemorySpace struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemorySpace() *MemorySpace {
	return &MemorySpace{values: make(map[string][]byte)}
}

// Storage binds a handle to one key of the space.
func (m *MemorySpace) Storage(key string) Storage {
	return &memoryStorage{space: m, key: key}
}

type memoryStorage struct {
	space *MemorySpace
	key   string
}

func (s *memoryStorage) Get(_ context.Context) ([]byte, bool, error) {
	s.space.mu.Lock()
	defer s.space.mu.Unlock()
	blob, ok := s.space.values[s.key]
	return blob, ok, nil
}

func (s *memoryStorage) Set(_ context.Context, blob []byte) error {
	s.space.mu.Lock()
	defer s.space.mu.Unlock()
	s.space.values[s.key] = blob
	return nil
}

func (s *memoryStorage) Delete(_ context.Context) error {
	s.space.mu.Lock()
	defer s.space.mu.Unlock()
	delete(s.space.values, s.key)
	return nil
}

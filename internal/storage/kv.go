package storage

import "sync"

// KVStore is the process-wide persistent key-value backend. Every component
// reads and writes whole values under distinct string keys; values are
// serialized text. SetIfAbsent is the only atomic conditional primitive and
// exists for single-assignment pointers (e.g. the admin account id).
type KVStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	SetIfAbsent(key, value string) bool
	Remove(key string)
	Keys() []string
	Len() int

	// Snapshot and Replace are the persistence hooks: the whole store is
	// serialized as one blob and restored in one piece.
	Snapshot() map[string]string
	Replace(data map[string]string)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() KVStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *MemoryStore) SetIfAbsent(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false
	}
	s.data[key] = value
	return true
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]string, len(s.data))
	for k, v := range s.data {
		cp[k] = v
	}
	return cp
}

func (s *MemoryStore) Replace(data map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		data = make(map[string]string)
	}
	s.data = data
}

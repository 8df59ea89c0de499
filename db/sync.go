package db

import "sync"

// SyncTable guards a HashTable with a single read-write lock so it can be
// shared between goroutines. Every method holds the lock for its whole
// duration; Keys, Values and Items return snapshots.
type SyncTable[K comparable, V any] struct {
	mu    sync.RWMutex
	table *HashTable[K, V]
}

// NewSyncTable wraps a new table of the given capacity.
func NewSyncTable[K comparable, V any](capacity int, opts ...Option[K, V]) (*SyncTable[K, V], error) {
	table, err := NewHashTable[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncTable[K, V]{table: table}, nil
}

func (s *SyncTable[K, V]) Get(key K) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Get(key)
}

func (s *SyncTable[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Contains(key)
}

func (s *SyncTable[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Set(key, value)
}

// SetIfAbsent stores value only when key is missing and reports whether it did.
func (s *SyncTable[K, V]) SetIfAbsent(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table.Contains(key) {
		return false
	}
	s.table.Set(key, value)
	return true
}

func (s *SyncTable[K, V]) Delete(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Delete(key)
}

func (s *SyncTable[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}

func (s *SyncTable[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Keys()
}

func (s *SyncTable[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Values()
}

func (s *SyncTable[K, V]) Items() []Pair[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Items()
}

func (s *SyncTable[K, V]) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.String()
}

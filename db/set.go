package db

import "fmt"

type sentinel struct{}

// Set is a collection of unique members backed by a HashTable.
type Set[T comparable] struct {
	data *HashTable[T, sentinel]
}

// NewSet creates a new Set with capacity buckets
func NewSet[T comparable](capacity int) (*Set[T], error) {
	data, err := NewHashTable[T, sentinel](capacity)
	if err != nil {
		return nil, err
	}
	return &Set[T]{data: data}, nil
}

// Add inserts a member into the set
func (s *Set[T]) Add(member T) {
	s.data.Set(member, sentinel{})
}

// Contains checks if a member is in the set
func (s *Set[T]) Contains(member T) bool {
	return s.data.Contains(member)
}

// Remove deletes a member from the set. Absent members yield ErrKeyNotFound.
func (s *Set[T]) Remove(member T) error {
	if err := s.data.Delete(member); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Len returns the number of members
func (s *Set[T]) Len() int {
	return s.data.Len()
}

// Members returns the members in table order
func (s *Set[T]) Members() []T {
	return s.data.Keys()
}

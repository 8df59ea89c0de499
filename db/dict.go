package db

import (
	"fmt"
	"strings"
)

// DefaultCapacity is the bucket count used by New.
const DefaultCapacity = 8

// Option configures a HashTable at construction.
type Option[K comparable, V any] func(*HashTable[K, V])

// WithHasher replaces the default key hasher.
func WithHasher[K comparable, V any](hasher Hasher[K]) Option[K, V] {
	return func(h *HashTable[K, V]) {
		if hasher != nil {
			h.hasher = hasher
		}
	}
}

// WithValueEqual sets the value comparison used by whole-pair bucket operations.
func WithValueEqual[K comparable, V any](equal func(a, b V) bool) Option[K, V] {
	return func(h *HashTable[K, V]) {
		h.equal = equal
	}
}

// HashTable is a fixed-capacity hash table resolving collisions by chaining.
// The bucket count never changes after construction, so a key stays in the
// bucket it was first placed in. A HashTable is not safe for concurrent use;
// see SyncTable.
type HashTable[K comparable, V any] struct {
	buckets []*Bucket[K, V]
	hasher  Hasher[K]
	equal   func(a, b V) bool
	count   int
}

// New returns a table with DefaultCapacity buckets.
func New[K comparable, V any](opts ...Option[K, V]) *HashTable[K, V] {
	h, _ := NewHashTable[K, V](DefaultCapacity, opts...)
	return h
}

// NewHashTable allocates capacity empty buckets.
func NewHashTable[K comparable, V any](capacity int, opts ...Option[K, V]) (*HashTable[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity %d must be positive: %w", capacity, ErrInvalidArgument)
	}

	h := &HashTable[K, V]{hasher: DefaultHasher[K]()}
	for _, opt := range opts {
		opt(h)
	}

	h.buckets = make([]*Bucket[K, V], capacity)
	for i := range h.buckets {
		h.buckets[i] = NewBucket[K, V](h.equal)
	}
	return h, nil
}

// BucketIndex returns hash(key) mod capacity.
func (h *HashTable[K, V]) BucketIndex(key K) int {
	return int(h.hasher(key) % uint64(len(h.buckets)))
}

func (h *HashTable[K, V]) bucket(key K) *Bucket[K, V] {
	return h.buckets[h.BucketIndex(key)]
}

// Contains reports whether key is stored. Only the key's bucket is scanned.
func (h *HashTable[K, V]) Contains(key K) bool {
	return h.bucket(key).find(key) != nil
}

// Get returns the value stored under key.
func (h *HashTable[K, V]) Get(key K) (V, error) {
	value, ok := h.bucket(key).Lookup(key)
	if !ok {
		return value, fmt.Errorf("get %s: %w", formatElem(key), ErrKeyNotFound)
	}
	return value, nil
}

// Set stores value under key. An existing entry is updated in place and
// keeps its position; a new key is appended to its bucket.
//
// Updating is check-then-act: Contains scans the bucket, then a second scan
// finds the entry to replace. Both are O(chain length).
func (h *HashTable[K, V]) Set(key K, value V) {
	b := h.bucket(key)
	if h.Contains(key) {
		b.replaceValue(key, value)
		return
	}
	b.Append(Pair[K, V]{Key: key, Value: value})
	h.count++
}

// Delete removes key from the table.
func (h *HashTable[K, V]) Delete(key K) error {
	if !h.Contains(key) {
		return fmt.Errorf("delete %s: %w", formatElem(key), ErrKeyNotFound)
	}
	h.bucket(key).removeKey(key)
	h.count--
	return nil
}

// Keys returns every key, bucket by bucket, in insertion order within a bucket.
func (h *HashTable[K, V]) Keys() []K {
	keys := make([]K, 0, h.count)
	for _, b := range h.buckets {
		keys = append(keys, b.Keys()...)
	}
	return keys
}

// Values returns every value in the same order as Keys.
func (h *HashTable[K, V]) Values() []V {
	values := make([]V, 0, h.count)
	for _, b := range h.buckets {
		values = append(values, b.Values()...)
	}
	return values
}

// Items returns every pair in the same order as Keys.
func (h *HashTable[K, V]) Items() []Pair[K, V] {
	items := make([]Pair[K, V], 0, h.count)
	for _, b := range h.buckets {
		items = append(items, b.Items()...)
	}
	return items
}

// Len returns the number of entries in the table.
func (h *HashTable[K, V]) Len() int {
	return h.count
}

// Empty returns true if the table holds no entries
func (h *HashTable[K, V]) Empty() bool {
	return h.count == 0
}

// Capacity returns the fixed bucket count.
func (h *HashTable[K, V]) Capacity() int {
	return len(h.buckets)
}

// LoadFactor is entries per bucket. The table never resizes on it.
func (h *HashTable[K, V]) LoadFactor() float64 {
	return float64(h.count) / float64(len(h.buckets))
}

// BucketLens returns the chain length of every bucket.
func (h *HashTable[K, V]) BucketLens() []int {
	lens := make([]int, len(h.buckets))
	for i, b := range h.buckets {
		lens[i] = b.Len()
	}
	return lens
}

// String renders the table as {key: value, ...} in Items order.
func (h *HashTable[K, V]) String() string {
	items := h.Items()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (h *HashTable[K, V]) GoString() string {
	items := h.Items()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = "(" + formatElem(item.Key) + ", " + formatElem(item.Value) + ")"
	}
	return "HashTable([" + strings.Join(parts, ", ") + "])"
}

func formatElem(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

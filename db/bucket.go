package db

import (
	"fmt"
	"reflect"
)

// Pair is a single key-value entry held by a Bucket.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

func (p Pair[K, V]) String() string {
	return fmt.Sprintf("%s: %s", formatElem(p.Key), formatElem(p.Value))
}

type bucketNode[K comparable, V any] struct {
	pair Pair[K, V]
	next *bucketNode[K, V]
}

// Bucket is a singly linked, insertion-ordered sequence of pairs.
// It does not enforce key uniqueness; that is left to the owning table.
type Bucket[K comparable, V any] struct {
	head   *bucketNode[K, V]
	tail   *bucketNode[K, V]
	length int
	equal  func(a, b V) bool
}

// NewBucket returns an empty bucket. Values are compared with equal when
// matching whole pairs; a nil equal falls back to reflect.DeepEqual.
func NewBucket[K comparable, V any](equal func(a, b V) bool) *Bucket[K, V] {
	if equal == nil {
		equal = deepEqual[V]
	}
	return &Bucket[K, V]{equal: equal}
}

func deepEqual[V any](a, b V) bool {
	return reflect.DeepEqual(a, b)
}

// Append adds pair at the tail.
func (b *Bucket[K, V]) Append(pair Pair[K, V]) {
	node := &bucketNode[K, V]{pair: pair}
	if b.tail == nil {
		b.head, b.tail = node, node
	} else {
		b.tail.next, b.tail = node, node
	}
	b.length++
}

// Items returns a copy of the stored pairs in insertion order.
func (b *Bucket[K, V]) Items() []Pair[K, V] {
	items := make([]Pair[K, V], 0, b.length)
	for curr := b.head; curr != nil; curr = curr.next {
		items = append(items, curr.pair)
	}
	return items
}

// Replace overwrites the first pair equal to old with repl, keeping its position.
func (b *Bucket[K, V]) Replace(old, repl Pair[K, V]) error {
	for curr := b.head; curr != nil; curr = curr.next {
		if b.pairEqual(curr.pair, old) {
			curr.pair = repl
			return nil
		}
	}
	return fmt.Errorf("replace %s: %w", old, ErrNotFound)
}

// Delete removes the first pair equal to pair.
func (b *Bucket[K, V]) Delete(pair Pair[K, V]) error {
	if b.unlink(func(p Pair[K, V]) bool { return b.pairEqual(p, pair) }) {
		return nil
	}
	return fmt.Errorf("delete %s: %w", pair, ErrNotFound)
}

// Len returns the number of pairs in the bucket.
func (b *Bucket[K, V]) Len() int {
	return b.length
}

// Lookup returns the value stored under key.
func (b *Bucket[K, V]) Lookup(key K) (V, bool) {
	if node := b.find(key); node != nil {
		return node.pair.Value, true
	}
	var zero V
	return zero, false
}

// Keys returns the keys of the bucket in insertion order.
func (b *Bucket[K, V]) Keys() []K {
	keys := make([]K, 0, b.length)
	for curr := b.head; curr != nil; curr = curr.next {
		keys = append(keys, curr.pair.Key)
	}
	return keys
}

// Values returns the values of the bucket in insertion order.
func (b *Bucket[K, V]) Values() []V {
	values := make([]V, 0, b.length)
	for curr := b.head; curr != nil; curr = curr.next {
		values = append(values, curr.pair.Value)
	}
	return values
}

func (b *Bucket[K, V]) find(key K) *bucketNode[K, V] {
	for curr := b.head; curr != nil; curr = curr.next {
		if curr.pair.Key == key {
			return curr
		}
	}
	return nil
}

// replaceValue swaps the value of the entry holding key in place.
func (b *Bucket[K, V]) replaceValue(key K, value V) bool {
	node := b.find(key)
	if node == nil {
		return false
	}
	node.pair.Value = value
	return true
}

func (b *Bucket[K, V]) removeKey(key K) bool {
	return b.unlink(func(p Pair[K, V]) bool { return p.Key == key })
}

func (b *Bucket[K, V]) unlink(match func(Pair[K, V]) bool) bool {
	var prev *bucketNode[K, V]
	for curr := b.head; curr != nil; prev, curr = curr, curr.next {
		if !match(curr.pair) {
			continue
		}
		if prev == nil {
			b.head = curr.next
		} else {
			prev.next = curr.next
		}
		if curr == b.tail {
			b.tail = prev
		}
		curr.next = nil
		b.length--
		return true
	}
	return false
}

func (b *Bucket[K, V]) pairEqual(x, y Pair[K, V]) bool {
	return x.Key == y.Key && b.equal(x.Value, y.Value)
}

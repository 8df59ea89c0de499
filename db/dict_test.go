package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collide(string) uint64 { return 0 }

func TestNewHashTableCapacity(t *testing.T) {
	ht, err := NewHashTable[string, int](8)
	require.NoError(t, err)
	assert.Equal(t, 8, ht.Capacity())
	assert.Equal(t, 0, ht.Len())
	assert.True(t, ht.Empty())

	for _, capacity := range []int{0, -1} {
		ht, err := NewHashTable[string, int](capacity)
		assert.Nil(t, ht)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "capacity %d", capacity)
	}

	assert.Equal(t, DefaultCapacity, New[string, int]().Capacity())
}

func TestHashTableSetAndGet(t *testing.T) {
	ht := New[string, int]()
	ht.Set("one", 1)
	ht.Set("two", 2)

	value, err := ht.Get("one")
	assert.NoError(t, err)
	assert.Equal(t, 1, value, "Value for key 'one' should be 1")

	value, err = ht.Get("two")
	assert.NoError(t, err)
	assert.Equal(t, 2, value, "Value for key 'two' should be 2")

	_, err = ht.Get("three")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "Key 'three' should not exist")
}

func TestHashTableUpdate(t *testing.T) {
	ht := New[string, int]()
	ht.Set("A", 1)
	ht.Set("A", 2)

	assert.Equal(t, 1, ht.Len())
	value, err := ht.Get("A")
	assert.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestHashTableUpdateKeepsPosition(t *testing.T) {
	ht, err := NewHashTable[string, int](4, WithHasher[string, int](collide))
	require.NoError(t, err)
	ht.Set("a", 1)
	ht.Set("b", 2)
	ht.Set("c", 3)
	ht.Set("b", 20)

	assert.Equal(t, []string{"a", "b", "c"}, ht.Keys())
	assert.Equal(t, []int{1, 20, 3}, ht.Values())
	assert.Equal(t, []int{3, 0, 0, 0}, ht.BucketLens())
}

func TestHashTableDelete(t *testing.T) {
	ht := New[string, int]()
	ht.Set("one", 1)
	require.NoError(t, ht.Delete("one"))

	assert.False(t, ht.Contains("one"))
	_, err := ht.Get("one")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "Expected key 'one' to be deleted")

	err = ht.Delete("one")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.Equal(t, 0, ht.Len())
}

func TestHashTableDeleteInChain(t *testing.T) {
	ht, err := NewHashTable[string, int](2, WithHasher[string, int](collide))
	require.NoError(t, err)
	for i, k := range []string{"a", "b", "c", "d"} {
		ht.Set(k, i)
	}

	require.NoError(t, ht.Delete("b"))
	require.NoError(t, ht.Delete("d"))
	ht.Set("e", 4)

	assert.Equal(t, []string{"a", "c", "e"}, ht.Keys())
	assert.Equal(t, 3, ht.Len())
	assert.False(t, ht.Contains("b"))
	assert.True(t, ht.Contains("c"))
}

func TestHashTableRomanNumerals(t *testing.T) {
	ht, err := NewHashTable[string, int](8)
	require.NoError(t, err)
	ht.Set("I", 1)
	ht.Set("V", 5)
	ht.Set("X", 10)

	assert.Equal(t, 3, ht.Len())
	v, err := ht.Get("V")
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.True(t, ht.Contains("X"))

	require.NoError(t, ht.Delete("I"))
	assert.Equal(t, 2, ht.Len())
	assert.False(t, ht.Contains("I"))
	_, err = ht.Get("I")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestHashTableBucketIndex(t *testing.T) {
	ht, err := NewHashTable[string, int](7)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		idx := ht.BucketIndex(key)
		assert.True(t, idx >= 0 && idx < 7)
		assert.Equal(t, idx, ht.BucketIndex(key))

		ht.Set(key, i)
		assert.Equal(t, idx, ht.BucketIndex(key))
	}

	other, err := NewHashTable[string, int](7)
	require.NoError(t, err)
	assert.Equal(t, ht.BucketIndex("key42"), other.BucketIndex("key42"))
}

func TestHashTableManyKeys(t *testing.T) {
	ht := New[string, int]()

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		ht.Set(key, i)
	}

	value, err := ht.Get("key50")
	assert.NoError(t, err)
	assert.Equal(t, 50, value, "Value for key 'key50' should be 50")

	value, err = ht.Get("key99")
	assert.NoError(t, err)
	assert.Equal(t, 99, value, "Value for key 'key99' should be 99")

	assert.Equal(t, 8, ht.Capacity(), "capacity never changes")
	assert.InDelta(t, 12.5, ht.LoadFactor(), 1e-9)

	sum := 0
	for _, n := range ht.BucketLens() {
		sum += n
	}
	assert.Equal(t, 100, sum)
}

func TestHashTableEnumerationConsistency(t *testing.T) {
	ht := New[int, string]()
	check := func() {
		items := ht.Items()
		keys := ht.Keys()
		values := ht.Values()
		assert.Equal(t, ht.Len(), len(items))
		assert.Equal(t, ht.Len(), len(keys))
		assert.Equal(t, ht.Len(), len(values))
		for i, item := range items {
			assert.Equal(t, keys[i], item.Key)
			assert.Equal(t, values[i], item.Value)
		}
	}

	for i := 0; i < 50; i++ {
		ht.Set(i, fmt.Sprint(i))
		check()
	}
	for i := 0; i < 50; i += 3 {
		require.NoError(t, ht.Delete(i))
		check()
	}
	for i := 0; i < 50; i += 2 {
		ht.Set(i, "again")
		check()
	}
}

func TestHashTableEnumerationOrder(t *testing.T) {
	// even keys land in bucket 0, odd keys in bucket 1
	parity := func(k int) uint64 { return uint64(k % 2) }
	ht, err := NewHashTable[int, string](2, WithHasher[int, string](parity))
	require.NoError(t, err)
	for _, k := range []int{5, 2, 3, 4} {
		ht.Set(k, fmt.Sprint(k))
	}

	want := []Pair[int, string]{{2, "2"}, {4, "4"}, {5, "5"}, {3, "3"}}
	if diff := cmp.Diff(want, ht.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 4, 5, 3}, ht.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ht.Items(), ht.Items()); diff != "" {
		t.Errorf("Items() not deterministic:\n%s", diff)
	}
}

func TestHashTableString(t *testing.T) {
	ht, err := NewHashTable[string, int](1)
	require.NoError(t, err)
	assert.Equal(t, "{}", ht.String())

	ht.Set("I", 1)
	ht.Set("V", 5)
	assert.Equal(t, `{"I": 1, "V": 5}`, ht.String())
	assert.Equal(t, `HashTable([("I", 1), ("V", 5)])`, fmt.Sprintf("%#v", ht))
}

func TestHashTableMixedValues(t *testing.T) {
	ht := New[string, any]()
	ht.Set("int", 1)
	ht.Set("slice", []string{"a"})
	ht.Set("int", "one")

	v, err := ht.Get("int")
	assert.NoError(t, err)
	assert.Equal(t, "one", v)
	assert.Equal(t, 2, ht.Len())
}

func TestHashTableFailedOpsLeaveStateAlone(t *testing.T) {
	ht := New[string, int]()
	ht.Set("a", 1)
	before := ht.Items()

	_ = ht.Delete("b")
	_, _ = ht.Get("b")

	assert.Equal(t, before, ht.Items())
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableWithValueEqual(t *testing.T) {
	caseless := func(a, b string) bool { return strings.EqualFold(a, b) }
	ht, err := NewHashTable[int, string](2, WithValueEqual[int, string](caseless))
	require.NoError(t, err)
	ht.Set(1, "One")

	b := ht.buckets[ht.BucketIndex(1)]
	assert.NoError(t, b.Delete(Pair[int, string]{1, "ONE"}))
}

package db

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a 64 bit hash. It must return the same value for
// equal keys for the whole lifetime of a table.
type Hasher[K comparable] func(key K) uint64

// DefaultHasher returns a hasher that is stable across runs and processes
// for strings, numbers, bools and structs or arrays built from them.
// Pointer and channel keys hash by address, which is only stable within
// one process.
func DefaultHasher[K comparable]() Hasher[K] {
	return func(key K) uint64 {
		return hashAny(key)
	}
}

func hashAny(key any) uint64 {
	if s, ok := key.(string); ok {
		return xxhash.Sum64String(s)
	}
	d := xxhash.New()
	writeValue(d, reflect.ValueOf(key))
	return d.Sum64()
}

// writeValue feeds v into d so that values equal under == produce the same
// bytes. Strings are length-prefixed to keep adjacent fields apart.
func writeValue(d *xxhash.Digest, v reflect.Value) {
	var buf [8]byte
	put := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		d.Write(buf[:])
	}

	switch v.Kind() {
	case reflect.Invalid:
		put(0)
	case reflect.Bool:
		if v.Bool() {
			put(1)
		} else {
			put(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		put(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		put(v.Uint())
	case reflect.Float32, reflect.Float64:
		put(math.Float64bits(normFloat(v.Float())))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		put(math.Float64bits(normFloat(real(c))))
		put(math.Float64bits(normFloat(imag(c))))
	case reflect.String:
		put(uint64(v.Len()))
		d.WriteString(v.String())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			writeValue(d, v.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			writeValue(d, v.Field(i))
		}
	case reflect.Interface:
		if v.IsNil() {
			put(0)
			return
		}
		writeValue(d, v.Elem())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		put(uint64(v.Pointer()))
	default:
		// not comparable; == on such a key panics before the hash matters
		fmt.Fprintf(d, "%v", v)
	}
}

// normFloat folds -0 into +0 so that keys comparing equal hash equally.
func normFloat(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitset

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/pkg/errors"
)

const (
	// WordBits is the width of a storage word.
	WordBits = 64

	// MaxBits is the largest logical length an [Extended] can grow to.
	MaxBits = 1 << 32

	// NotFound is returned by FirstSet when no bit is set.
	NotFound = -1

	log2WordBits = 6
	wordMask     = WordBits - 1
)

var (
	// ErrRadix is returned when a radix outside 2..36 is requested.
	ErrRadix = errors.New("bitset: unsupported radix")

	// ErrSyntax is returned when the input is empty or has a digit that is not valid
	// for the radix.
	ErrSyntax = errors.New("bitset: invalid syntax")

	// ErrOverflow is returned when a value does not fit into 64 bits.
	ErrOverflow = errors.New("bitset: value overflows 64 bits")

	// ErrTooLarge is returned when growth beyond MaxBits is requested.
	ErrTooLarge = errors.New("bitset: length exceeds MaxBits")
)

// BitSet is the capability set shared by [Fixed] and [Extended].
type BitSet interface {
	// Bit reports whether bit i is set.
	Bit(i uint) bool
	// SetBit sets bit i to v.
	SetBit(i uint, v bool)
	// Weight returns the number of set bits.
	Weight() int
	// FirstSet returns the index of the least significant set bit or NotFound.
	FirstSet() int
	// LastSet returns the index of the most significant set bit or NotFound.
	LastSet() int
	// Ones yields indices of set bits in ascending order.
	Ones() iter.Seq[uint]
	// Len returns the logical length in bits.
	Len() uint
	All() bool
	Any() bool
	None() bool
	Reset()
	Flip()
	// Format returns the value in radix, most significant digit first. A radix outside
	// 2..36 panics with ErrRadix.
	Format(radix int) string
	String() string
	Hash() uint64
}

// Set is [BitSet] plus the value producing operations over T.
type Set[T any] interface {
	BitSet
	And(T) T
	Or(T) T
	Xor(T) T
	AndNot(T) T
	Not() T
	Shl(n uint) T
	Shr(n uint) T
	Rotl(n uint) T
	Rotr(n uint) T
	Reverse() T
	Subset(start, n uint) T
}

var (
	_ Set[Fixed]     = (*Fixed)(nil)
	_ Set[*Extended] = (*Extended)(nil)
)

// IndexError is the panic value for bit access outside a fixed width.
type IndexError struct {
	Index uint
	Width uint
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bitset: index %d out of range [0,%d)", e.Index, e.Width)
}

// RangeError is the panic value for a bit range that does not fit a width.
type RangeError struct {
	Start, N uint
	Width    uint
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bitset: range [%d,%d) exceeds width %d", e.Start, e.Start+e.N, e.Width)
}

func checkRange(start, n, width uint) {
	if start > width || n > width-start {
		panic(&RangeError{Start: start, N: n, Width: width})
	}
}

// lowMask returns a word with the n low bits set, n in [0,64].
func lowMask(n uint) uint64 {
	if n >= WordBits {
		return ^uint64(0)
	}
	return 1<<n - 1
}

func wordsFor(nbits uint) int {
	return int((nbits + wordMask) >> log2WordBits)
}

// onesIn yields the set bits of w, offset by base.
func onesIn(w, base uint64, yield func(uint) bool) bool {
	for w != 0 {
		if !yield(uint(base) + uint(bits.TrailingZeros64(w))) {
			return false
		}
		w &= w - 1
	}
	return true
}

// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitset

import (
	"fmt"
	"iter"
	"math/bits"
	"strconv"

	"github.com/gernest/dense/internal/checksum"
	"github.com/pkg/errors"
)

// Fixed is a 64 bit bitset stored in a single word. The zero value has no bits set.
//
// Bit indices must be in [0,64). Out of range access panics with *IndexError, it never
// wraps around.
type Fixed uint64

// FixedFrom returns v as a Fixed.
func FixedFrom(v uint64) Fixed { return Fixed(v) }

// Uint64 returns the underlying word.
func (f Fixed) Uint64() uint64 { return uint64(f) }

func (f Fixed) Bit(i uint) bool {
	checkIndex(i)
	return f>>i&1 == 1
}

func (f *Fixed) SetBit(i uint, v bool) {
	checkIndex(i)
	if v {
		*f |= 1 << i
	} else {
		*f &^= 1 << i
	}
}

func checkIndex(i uint) {
	if i >= WordBits {
		panic(&IndexError{Index: i, Width: WordBits})
	}
}

// Weight returns the Hamming weight.
func (f Fixed) Weight() int { return bits.OnesCount64(uint64(f)) }

func (f Fixed) FirstSet() int {
	if f == 0 {
		return NotFound
	}
	return bits.TrailingZeros64(uint64(f))
}

func (f Fixed) LastSet() int {
	return bits.Len64(uint64(f)) - 1
}

func (f Fixed) Ones() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		onesIn(uint64(f), 0, yield)
	}
}

// Len is always 64.
func (f Fixed) Len() uint { return WordBits }

func (f Fixed) All() bool  { return f == ^Fixed(0) }
func (f Fixed) Any() bool  { return f != 0 }
func (f Fixed) None() bool { return f == 0 }

func (f *Fixed) Reset() { *f = 0 }
func (f *Fixed) Flip()  { *f = ^*f }

// Reverse returns f with bit 0 swapped with bit 63, bit 1 with bit 62 and so on.
func (f Fixed) Reverse() Fixed { return Fixed(bits.Reverse64(uint64(f))) }

func (f Fixed) And(o Fixed) Fixed    { return f & o }
func (f Fixed) Or(o Fixed) Fixed     { return f | o }
func (f Fixed) Xor(o Fixed) Fixed    { return f ^ o }
func (f Fixed) AndNot(o Fixed) Fixed { return f &^ o }
func (f Fixed) Not() Fixed           { return ^f }

// Shl shifts towards the most significant bit. Go defines shifts of 64 or more to
// produce zero, which is what we want here.
func (f Fixed) Shl(n uint) Fixed { return f << n }

// Shr shifts towards bit 0, zero filling the top.
func (f Fixed) Shr(n uint) Fixed { return f >> n }

// Rotl rotates left by n modulo 64.
func (f Fixed) Rotl(n uint) Fixed {
	return Fixed(bits.RotateLeft64(uint64(f), int(n&wordMask)))
}

// Rotr rotates right by n modulo 64.
func (f Fixed) Rotr(n uint) Fixed {
	return Fixed(bits.RotateLeft64(uint64(f), -int(n&wordMask)))
}

// Extract returns bits [start, start+n) right aligned.
func (f Fixed) Extract(start, n uint) uint64 {
	checkRange(start, n, WordBits)
	if n == 0 {
		return 0
	}
	return uint64(f) >> start & lowMask(n)
}

// Subset is Extract returning a Fixed.
func (f Fixed) Subset(start, n uint) Fixed { return Fixed(f.Extract(start, n)) }

// InsertUint64 overwrites bits [start, start+n) with the n low bits of v.
func (f *Fixed) InsertUint64(v uint64, start, n uint) {
	checkRange(start, n, WordBits)
	if n == 0 {
		return
	}
	m := lowMask(n) << start
	*f = Fixed(uint64(*f)&^m | v<<start&m)
}

// Insert overwrites bits [start, start+n) with the n low bits of o.
func (f *Fixed) Insert(o Fixed, start, n uint) { f.InsertUint64(uint64(o), start, n) }

// Format returns f in radix without leading zeros. A radix outside 2..36 panics with
// ErrRadix.
func (f Fixed) Format(radix int) string {
	checkRadix(radix)
	return strconv.FormatUint(uint64(f), radix)
}

// String returns all 64 bits in binary, most significant first.
func (f Fixed) String() string {
	return fmt.Sprintf("%064b", uint64(f))
}

func (f Fixed) GoString() string {
	return fmt.Sprintf("0b%064b (%d)", uint64(f), uint64(f))
}

// Hash returns the same value as the Hash of an [Extended] holding the same bits.
func (f Fixed) Hash() uint64 {
	w := [1]uint64{uint64(f)}
	return checksum.Words(trimWords(w[:]))
}

// ParseFixed parses s in radix. The value must fit 64 bits.
func ParseFixed(s string, radix int) (Fixed, error) {
	if !validRadix(radix) {
		return 0, errors.Wrapf(ErrRadix, "radix %d", radix)
	}
	if s == "" {
		return 0, errors.Wrap(ErrSyntax, "empty input")
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i], radix)
		if !ok {
			return 0, syntaxError(s, i)
		}
		hi, lo := bits.Mul64(v, uint64(radix))
		lo, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			return 0, errors.Wrapf(ErrOverflow, "parsing %q", s)
		}
		v = lo
	}
	return Fixed(v), nil
}

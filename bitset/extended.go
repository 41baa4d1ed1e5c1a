// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitset

import (
	"iter"
	"math/bits"

	"github.com/gernest/dense/internal/checksum"
	"github.com/pkg/errors"
)

// Extended is a growable bitset backed by 64 bit words, least significant word first.
//
// The logical length (Len) is one past the highest bit ever written, or the value given to
// Resize. Capacity only grows. Bits at or past the logical length are always zero.
//
// Growth past MaxBits is rejected before the receiver is modified: Reserve and Resize
// return ErrTooLarge, writers panic with it.
type Extended struct {
	words []uint64
	size  uint
}

// NewExtended returns an empty set with room for capacity bits.
func NewExtended(capacity uint) *Extended {
	if capacity > MaxBits {
		panic(errors.Wrapf(ErrTooLarge, "capacity %d", capacity))
	}
	return &Extended{words: make([]uint64, wordsFor(capacity))}
}

// FromFixed returns a 64 bit long Extended holding f.
func FromFixed(f Fixed) *Extended {
	return &Extended{words: []uint64{uint64(f)}, size: WordBits}
}

// Len returns the logical length.
func (b *Extended) Len() uint { return b.size }

// Cap returns the number of bits that can be written without growing.
func (b *Extended) Cap() uint { return uint(len(b.words)) * WordBits }

// Reserve grows capacity to at least nbits. The logical length is unchanged.
func (b *Extended) Reserve(nbits uint) error {
	return b.grow(nbits)
}

// Resize sets the logical length to nbits, clearing any bit at or past it.
func (b *Extended) Resize(nbits uint) error {
	if err := b.grow(nbits); err != nil {
		return err
	}
	b.size = nbits
	b.clearTail()
	return nil
}

func (b *Extended) grow(nbits uint) error {
	if nbits > MaxBits {
		return errors.Wrapf(ErrTooLarge, "growing to %d bits", nbits)
	}
	need := wordsFor(nbits)
	if need <= len(b.words) {
		return nil
	}
	n := min(max(need, 2*len(b.words)), wordsFor(MaxBits))
	w := make([]uint64, n)
	copy(w, b.words)
	b.words = w
	return nil
}

func (b *Extended) mustGrow(nbits uint) {
	if err := b.grow(nbits); err != nil {
		panic(err)
	}
}

// clearTail zeroes every bit at or past the logical length.
func (b *Extended) clearTail() {
	n := wordsFor(b.size)
	if r := b.size & wordMask; r != 0 {
		b.words[n-1] &= lowMask(r)
	}
	clear(b.words[n:])
}

// Bit reports whether bit i is set. It never grows the set.
func (b *Extended) Bit(i uint) bool {
	idx := i >> log2WordBits
	if idx >= uint(len(b.words)) {
		return false
	}
	return b.words[idx]>>(i&wordMask)&1 == 1
}

// SetBit sets bit i to v, growing the set when i is past its capacity.
func (b *Extended) SetBit(i uint, v bool) {
	if i >= MaxBits {
		panic(errors.Wrapf(ErrTooLarge, "bit %d", i))
	}
	b.mustGrow(i + 1)
	if v {
		b.words[i>>log2WordBits] |= 1 << (i & wordMask)
	} else {
		b.words[i>>log2WordBits] &^= 1 << (i & wordMask)
	}
	b.size = max(b.size, i+1)
}

func (b *Extended) Weight() (n int) {
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return
}

func (b *Extended) FirstSet() int {
	for i, w := range b.words {
		if w != 0 {
			return i*WordBits + bits.TrailingZeros64(w)
		}
	}
	return NotFound
}

func (b *Extended) LastSet() int {
	for i := len(b.words) - 1; i >= 0; i-- {
		if w := b.words[i]; w != 0 {
			return i*WordBits + bits.Len64(w) - 1
		}
	}
	return NotFound
}

// Ones yields indices of set bits in ascending order. The set must not be modified
// during iteration.
func (b *Extended) Ones() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for i, w := range b.words {
			if !onesIn(w, uint64(i)*WordBits, yield) {
				return
			}
		}
	}
}

// All reports whether every bit in [0, Len) is set. It is false for an empty set.
func (b *Extended) All() bool {
	if b.size == 0 {
		return false
	}
	full := b.size >> log2WordBits
	for _, w := range b.words[:full] {
		if w != ^uint64(0) {
			return false
		}
	}
	if r := b.size & wordMask; r != 0 {
		return b.words[full] == lowMask(r)
	}
	return true
}

func (b *Extended) Any() bool {
	for _, w := range b.words {
		if w != 0 {
			return true
		}
	}
	return false
}

func (b *Extended) None() bool { return !b.Any() }

// Reset clears all bits. Length and capacity are kept.
func (b *Extended) Reset() { clear(b.words) }

// Flip inverts bits in [0, Len).
func (b *Extended) Flip() {
	for i := range b.words[:wordsFor(b.size)] {
		b.words[i] = ^b.words[i]
	}
	b.clearTail()
}

func (b *Extended) Clone() *Extended {
	w := make([]uint64, len(b.words))
	copy(w, b.words)
	return &Extended{words: w, size: b.size}
}

// Equal reports whether b and o have the same bits set. Lengths are not compared.
func (b *Extended) Equal(o *Extended) bool {
	for i := range max(len(b.words), len(o.words)) {
		if word(b.words, i) != word(o.words, i) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (b *Extended) Hash() uint64 {
	return checksum.Words(trimWords(b.words))
}

// HashKeyed is Hash with a secret key, for sets built from untrusted input.
func (b *Extended) HashKeyed(key [32]byte) uint64 {
	return checksum.KeyedWords(key, trimWords(b.words))
}

// Hash128 is a 128 bit variant of Hash, returned as high and low halves.
func (b *Extended) Hash128() (hi, lo uint64) {
	h := checksum.Words128(trimWords(b.words))
	return h.Hi, h.Lo
}

func word(w []uint64, i int) uint64 {
	if i < len(w) {
		return w[i]
	}
	return 0
}

// Uint64 returns the set as an integer. Content wider than 64 bits is not truncated,
// ErrOverflow is returned instead.
func (b *Extended) Uint64() (uint64, error) {
	if len(trimWords(b.words)) > 1 {
		return 0, errors.Wrapf(ErrOverflow, "highest set bit is past 64 (length %d)", b.size)
	}
	return word(b.words, 0), nil
}

func (b *Extended) inPlace(o *Extended, op func(x, y uint64) uint64) {
	b.mustGrow(uint(len(o.words)) * WordBits)
	for i := range b.words {
		b.words[i] = op(b.words[i], word(o.words, i))
	}
	b.size = max(b.size, o.size)
}

func and(x, y uint64) uint64    { return x & y }
func or(x, y uint64) uint64     { return x | y }
func xor(x, y uint64) uint64    { return x ^ y }
func andNot(x, y uint64) uint64 { return x &^ y }

// InPlaceAnd sets b to b & o. The shorter operand is zero extended.
func (b *Extended) InPlaceAnd(o *Extended) { b.inPlace(o, and) }

func (b *Extended) InPlaceOr(o *Extended) { b.inPlace(o, or) }

func (b *Extended) InPlaceXor(o *Extended) { b.inPlace(o, xor) }

func (b *Extended) InPlaceAndNot(o *Extended) { b.inPlace(o, andNot) }

// And returns b & o with length max(b.Len(), o.Len()).
func (b *Extended) And(o *Extended) *Extended {
	r := b.Clone()
	r.InPlaceAnd(o)
	return r
}

func (b *Extended) Or(o *Extended) *Extended {
	r := b.Clone()
	r.InPlaceOr(o)
	return r
}

func (b *Extended) Xor(o *Extended) *Extended {
	r := b.Clone()
	r.InPlaceXor(o)
	return r
}

func (b *Extended) AndNot(o *Extended) *Extended {
	r := b.Clone()
	r.InPlaceAndNot(o)
	return r
}

// Not returns the complement of b within [0, Len).
func (b *Extended) Not() *Extended {
	r := b.Clone()
	r.Flip()
	return r
}

// Shl returns b shifted towards the most significant bit. The length grows by n so no
// set bit is lost. It panics with ErrTooLarge when Len()+n exceeds MaxBits, even if b
// has no bits set.
func (b *Extended) Shl(n uint) *Extended {
	size := b.size + n
	if size > MaxBits || size < b.size {
		panic(errors.Wrapf(ErrTooLarge, "shifting %d bits by %d", b.size, n))
	}
	r := &Extended{words: make([]uint64, max(wordsFor(size), len(b.words))), size: size}
	shiftUp(r.words, b.words, n)
	return r
}

func (b *Extended) InPlaceShl(n uint) {
	r := b.Shl(n)
	b.words, b.size = r.words, r.size
}

// Shr returns b shifted towards bit 0. The length is kept and the top is zero filled,
// shifting by Len or more clears the set.
func (b *Extended) Shr(n uint) *Extended {
	r := &Extended{words: make([]uint64, len(b.words)), size: b.size}
	shiftDown(r.words, b.words, n)
	return r
}

func (b *Extended) InPlaceShr(n uint) {
	shiftDown(b.words, b.words, n)
}

// Rotl rotates left within [0, Len) by n modulo Len.
func (b *Extended) Rotl(n uint) *Extended {
	r := &Extended{words: make([]uint64, len(b.words)), size: b.size}
	if b.size == 0 {
		return r
	}
	n %= b.size
	shiftUp(r.words, b.words, n)
	r.clearTail()
	hi := make([]uint64, len(b.words))
	shiftDown(hi, b.words, b.size-n)
	for i := range r.words {
		r.words[i] |= hi[i]
	}
	return r
}

// Rotr rotates right within [0, Len) by n modulo Len.
func (b *Extended) Rotr(n uint) *Extended {
	if b.size == 0 {
		return b.Clone()
	}
	return b.Rotl(b.size - n%b.size)
}

// Reverse returns b with bit i moved to Len-1-i.
func (b *Extended) Reverse() *Extended {
	n := wordsFor(b.size)
	r := &Extended{words: make([]uint64, len(b.words)), size: b.size}
	for i, w := range b.words[:n] {
		r.words[n-1-i] = bits.Reverse64(w)
	}
	shiftDown(r.words, r.words, uint(n)*WordBits-b.size)
	return r
}

// Subset returns bits [start, start+n) as a new set of length n. Bits past Len read
// as zero.
func (b *Extended) Subset(start, n uint) *Extended {
	if n > MaxBits {
		panic(errors.Wrapf(ErrTooLarge, "subset of %d bits", n))
	}
	r := &Extended{words: make([]uint64, wordsFor(n)), size: n}
	for k := range r.words {
		off := uint(k) * WordBits
		r.words[k] = extractWord(b.words, start+off, min(WordBits, n-off))
	}
	return r
}

// ExtractUint64 returns n <= 64 bits starting at start, right aligned.
func (b *Extended) ExtractUint64(start, n uint) uint64 {
	if n > WordBits {
		panic(&RangeError{Start: start, N: n, Width: WordBits})
	}
	return extractWord(b.words, start, n)
}

// InsertUint64 overwrites bits [start, start+n) with the n <= 64 low bits of v, growing
// the set when needed.
func (b *Extended) InsertUint64(v uint64, start, n uint) {
	if n > WordBits {
		panic(&RangeError{Start: start, N: n, Width: WordBits})
	}
	if n == 0 {
		return
	}
	b.mustGrow(start + n)
	b.putBits(v, start, n)
	b.size = max(b.size, start+n)
}

// Insert overwrites bits [start, start+n) with the n low bits of o, growing the set
// when needed.
func (b *Extended) Insert(o *Extended, start, n uint) {
	if n == 0 {
		return
	}
	if o == b {
		o = o.Clone()
	}
	b.mustGrow(start + n)
	for off := uint(0); off < n; off += WordBits {
		k := min(WordBits, n-off)
		b.putBits(extractWord(o.words, off, k), start+off, k)
	}
	b.size = max(b.size, start+n)
}

// putBits writes the n <= 64 low bits of v at pos. Capacity must already cover them.
func (b *Extended) putBits(v uint64, pos, n uint) {
	idx := pos >> log2WordBits
	off := pos & wordMask
	m := lowMask(n)
	v &= m
	b.words[idx] = b.words[idx]&^(m<<off) | v<<off
	if off+n > WordBits {
		sh := WordBits - off
		b.words[idx+1] = b.words[idx+1]&^(m>>sh) | v>>sh
	}
}

// Format returns the first Len bits in radix, panicking with ErrRadix outside 2..36.
// Power of two radixes are zero padded to ceil(Len/log2(radix)) digits.
func (b *Extended) Format(radix int) string {
	return formatWords(b.words, b.size, radix)
}

// String returns the set in binary, zero padded to a multiple of 64 digits.
func (b *Extended) String() string {
	return formatWords(b.words, uint(max(wordsFor(b.size), 1))*WordBits, 2)
}

func (b *Extended) GoString() string {
	return "0b" + b.String()
}

// shiftUp writes src shifted towards the most significant bit by n into dst. Bits
// shifted past len(dst) words are dropped. dst and src may be the same slice.
func shiftUp(dst, src []uint64, n uint) {
	ws := int(min(n>>log2WordBits, uint(len(dst))))
	bs := n & wordMask
	for i := len(dst) - 1; i >= 0; i-- {
		j := i - ws
		var v uint64
		if j >= 0 {
			v = word(src, j) << bs
			if bs != 0 && j > 0 {
				v |= word(src, j-1) >> (WordBits - bs)
			}
		}
		dst[i] = v
	}
}

// shiftDown writes src shifted towards bit 0 by n into dst. dst and src may be the same
// slice.
func shiftDown(dst, src []uint64, n uint) {
	ws := int(min(n>>log2WordBits, uint(len(src))))
	bs := n & wordMask
	for i := range dst {
		j := i + ws
		v := word(src, j) >> bs
		if bs != 0 {
			v |= word(src, j+1) << (WordBits - bs)
		}
		dst[i] = v
	}
}

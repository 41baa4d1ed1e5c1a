// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitset

import (
	"math/bits"
	"slices"

	"github.com/gernest/dense/internal/pools"
	"github.com/pkg/errors"
)

const (
	minRadix = 2
	maxRadix = 36
	digits   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var scratch = pools.Words(4)

func validRadix(radix int) bool {
	return radix >= minRadix && radix <= maxRadix
}

func checkRadix(radix int) {
	if !validRadix(radix) {
		panic(errors.Wrapf(ErrRadix, "radix %d", radix))
	}
}

// digitValue decodes c case-insensitively.
func digitValue(c byte, radix int) (int, bool) {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'a' <= c && c <= 'z':
		d = int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return 0, false
	}
	return d, d < radix
}

func syntaxError(s string, pos int) error {
	return errors.Wrapf(ErrSyntax, "invalid digit %q at position %d in %q", s[pos], pos, s)
}

// log2Radix returns k when radix is 2^k, 0 otherwise.
func log2Radix(radix int) uint {
	if radix&(radix-1) != 0 {
		return 0
	}
	return uint(bits.TrailingZeros(uint(radix)))
}

// ParseExtended parses s in radix into an [Extended] sized to fit it exactly.
//
// For power of two radixes every digit accounts for log2(radix) bits, leading zero digits
// included, so "00ff" in radix 16 has length 16. Other radixes size the result to the bit
// length of the value.
func ParseExtended(s string, radix int) (*Extended, error) {
	if !validRadix(radix) {
		return nil, errors.Wrapf(ErrRadix, "radix %d", radix)
	}
	if s == "" {
		return nil, errors.Wrap(ErrSyntax, "empty input")
	}
	if k := log2Radix(radix); k != 0 {
		return parsePow2(s, radix, k)
	}
	return parseGeneric(s, radix)
}

func parsePow2(s string, radix int, k uint) (*Extended, error) {
	size := uint(len(s)) * k
	if size > MaxBits {
		return nil, errors.Wrapf(ErrTooLarge, "%d digits in radix %d", len(s), radix)
	}
	e := &Extended{words: make([]uint64, wordsFor(size)), size: size}
	pos := uint(0)
	for i := len(s) - 1; i >= 0; i-- {
		d, ok := digitValue(s[i], radix)
		if !ok {
			return nil, syntaxError(s, i)
		}
		e.putBits(uint64(d), pos, k)
		pos += k
	}
	return e, nil
}

// parseGeneric accumulates digits with multiply-add across words.
func parseGeneric(s string, radix int) (*Extended, error) {
	// log2(36) < 6 bits per digit bounds the words needed.
	if uint(len(s))*6 > MaxBits {
		return nil, errors.Wrapf(ErrTooLarge, "%d digits in radix %d", len(s), radix)
	}
	w := make([]uint64, 0, wordsFor(uint(len(s))*6))
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i], radix)
		if !ok {
			return nil, syntaxError(s, i)
		}
		carry := uint64(d)
		for j := range w {
			hi, lo := bits.Mul64(w[j], uint64(radix))
			lo, c := bits.Add64(lo, carry, 0)
			w[j] = lo
			carry = hi + c
		}
		if carry != 0 {
			w = append(w, carry)
		}
	}
	size := uint(1)
	if n := len(w); n > 0 {
		size = uint(n-1)*WordBits + uint(bits.Len64(w[n-1]))
	}
	if len(w) == 0 {
		w = append(w, 0)
	}
	return &Extended{words: w, size: size}, nil
}

// formatWords renders the first size bits of w in radix, most significant digit first.
func formatWords(w []uint64, size uint, radix int) string {
	checkRadix(radix)
	if k := log2Radix(radix); k != 0 {
		n := max((size+k-1)/k, 1)
		out := make([]byte, n)
		pos := uint(0)
		for i := len(out) - 1; i >= 0; i-- {
			out[i] = digits[extractWord(w, pos, k)]
			pos += k
		}
		return string(out)
	}
	return formatGeneric(w, radix)
}

// formatGeneric repeatedly divides a scratch copy of w by radix.
func formatGeneric(w []uint64, radix int) string {
	buf := scratch.Get()
	defer scratch.Put(buf)
	q := append((*buf)[:0], trimWords(w)...)
	*buf = q

	var out []byte
	for len(q) > 0 {
		var rem uint64
		for i := len(q) - 1; i >= 0; i-- {
			q[i], rem = bits.Div64(rem, q[i], uint64(radix))
		}
		out = append(out, digits[rem])
		q = trimWords(q)
	}
	if len(out) == 0 {
		return "0"
	}
	slices.Reverse(out)
	return string(out)
}

// trimWords drops trailing zero words.
func trimWords(w []uint64) []uint64 {
	n := len(w)
	for n > 0 && w[n-1] == 0 {
		n--
	}
	return w[:n]
}

// extractWord reads n <= 64 bits of w starting at bit start. Bits past w read as zero.
func extractWord(w []uint64, start, n uint) uint64 {
	if n == 0 {
		return 0
	}
	idx := int(start >> log2WordBits)
	off := start & wordMask
	if idx >= len(w) {
		return 0
	}
	v := w[idx] >> off
	if off != 0 && idx+1 < len(w) {
		v |= w[idx+1] << (WordBits - off)
	}
	return v & lowMask(n)
}

package bitset

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// ones returns indices of all set bits below b.Len().
func ones(b BitSet) (o []uint) {
	for i := uint(0); i < b.Len(); i++ {
		if b.Bit(i) {
			o = append(o, i)
		}
	}
	return
}

func extendedOf(idx ...uint) *Extended {
	b := NewExtended(10)
	for _, i := range idx {
		b.SetBit(i, true)
	}
	return b
}

func TestExtended_FromFixed(t *testing.T) {
	b := FromFixed(2048)
	b.SetBit(70, true)
	require.Equal(t, 2, b.Weight())
	require.Equal(t, uint(71), b.Len())
	require.True(t, b.Bit(11))
}

func TestExtended_growth(t *testing.T) {
	t.Run("set past capacity", func(t *testing.T) {
		b := NewExtended(0)
		require.Equal(t, uint(0), b.Cap())
		b.SetBit(130, true)
		require.True(t, b.Bit(130))
		require.False(t, b.Bit(129))
		require.GreaterOrEqual(t, b.Cap(), uint(131))
		require.Equal(t, uint(131), b.Len())
	})

	t.Run("keeps previous bits", func(t *testing.T) {
		b := extendedOf(0, 3, 63, 64)
		b.SetBit(5000, true)
		require.Equal(t, []uint{0, 3, 63, 64, 5000}, ones(b))
	})

	t.Run("reads never grow", func(t *testing.T) {
		b := NewExtended(64)
		require.False(t, b.Bit(1_000_000))
		require.Equal(t, uint(64), b.Cap())
		require.Equal(t, uint(0), b.Len())
	})

	t.Run("clearing still extends", func(t *testing.T) {
		b, err := ParseExtended("deadbeef", 16)
		require.NoError(t, err)
		require.Equal(t, uint(32), b.Len())
		b.SetBit(8975, false)
		require.Equal(t, uint(8976), b.Len())
		require.GreaterOrEqual(t, b.Cap(), uint(8976))
		require.Equal(t, 24, b.Weight())
	})

	t.Run("capacity never shrinks", func(t *testing.T) {
		b := NewExtended(1024)
		b.SetBit(3, true)
		b.Reset()
		require.NoError(t, b.Resize(1))
		require.Equal(t, uint(1024), b.Cap())
	})

	t.Run("too large", func(t *testing.T) {
		b := extendedOf(7)
		require.True(t, errors.Is(b.Reserve(MaxBits+1), ErrTooLarge))
		require.True(t, errors.Is(b.Resize(MaxBits+1), ErrTooLarge))
		require.Panics(t, func() { b.SetBit(MaxBits, true) })
		require.Panics(t, func() { b.InsertUint64(1, MaxBits, 1) })
		require.Equal(t, []uint{7}, ones(b))
		require.Equal(t, uint(8), b.Len())
	})

	t.Run("many bits", func(t *testing.T) {
		b := NewExtended(10)
		for i := uint(0); i < 1024; i++ {
			b.SetBit(i, true)
		}
		require.Equal(t, 1024, b.Weight())
		require.True(t, b.All())
	})
}

func TestExtended_Reserve(t *testing.T) {
	b := NewExtended(0)
	require.NoError(t, b.Reserve(1000))
	require.GreaterOrEqual(t, b.Cap(), uint(1000))
	require.Equal(t, uint(0), b.Len())
	c := b.Cap()
	b.SetBit(999, true)
	require.Equal(t, c, b.Cap())
}

func TestExtended_Resize(t *testing.T) {
	b := extendedOf(1, 70, 130)
	require.NoError(t, b.Resize(100))
	require.Equal(t, uint(100), b.Len())
	require.Equal(t, []uint{1, 70}, ones(b))
	require.False(t, b.Bit(130))

	require.NoError(t, b.Resize(300))
	require.Equal(t, uint(300), b.Len())
	require.Equal(t, 2, b.Weight())
	require.Equal(t, 298, b.Not().Weight())
}

func TestExtended_predicates(t *testing.T) {
	b, err := ParseExtended("fffffffffffffffffffffffffffff", 16)
	require.NoError(t, err)
	require.True(t, b.All())
	b.SetBit(28, false)
	require.False(t, b.All())
	require.False(t, NewExtended(64).All())

	b = NewExtended(10)
	b.SetBit(1234, true)
	require.True(t, b.Any())
	b.Reset()
	require.False(t, b.Any())
	require.Equal(t, uint(1235), b.Len())

	b = NewExtended(10)
	b.SetBit(1234, true)
	b.SetBit(1234, false)
	require.True(t, b.None())
	b.SetBit(1235, true)
	require.False(t, b.None())
}

func TestExtended_weight(t *testing.T) {
	b := FromFixed(1234567890)
	b.SetBit(78, true)
	b.SetBit(289, true)
	require.Equal(t, 14, b.Weight())
}

func TestExtended_FirstSet(t *testing.T) {
	require.Equal(t, 231, FromFixed(256).Shl(223).FirstSet())
	require.Equal(t, NotFound, NewExtended(512).FirstSet())
	require.Equal(t, 64, extendedOf(64, 65).FirstSet())
}

func TestExtended_Ones(t *testing.T) {
	b := extendedOf(0, 63, 64, 127, 128, 700)
	require.Equal(t, ones(b), slices.Collect(b.Ones()))
	require.Equal(t, 700, b.LastSet())
	require.NoError(t, b.Resize(200))
	require.Equal(t, 128, b.LastSet())
	b.Reset()
	require.Equal(t, NotFound, b.LastSet())
	require.Empty(t, slices.Collect(b.Ones()))
}

func TestExtended_Reverse(t *testing.T) {
	b := FromFixed(666123).Shl(63)
	require.Equal(t, uint(127), b.Len())
	s := []byte(b.Format(2))
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	r := b.Reverse()
	require.Equal(t, string(s), r.Format(2))
	require.Equal(t, b.Len(), r.Len())

	// Across word order, not within each word.
	x := extendedOf(0, 64)
	x.SetBit(99, false)
	require.Equal(t, []uint{35, 99}, ones(x.Reverse()))
}

func TestExtended_algebra(t *testing.T) {
	a := extendedOf(1, 70, 72, 74)
	b := extendedOf(1, 2, 72, 73, 74)

	require.Equal(t, []uint{1, 72, 74}, ones(a.And(b)))
	require.Equal(t, []uint{1, 2, 70, 72, 73, 74}, ones(b.Or(a)))
	require.Equal(t, []uint{2, 70, 73}, ones(b.Xor(a)))
	require.Equal(t, []uint{70}, ones(a.AndNot(b)))
	require.Equal(t,
		"00000000000000000000000000000000000000000000000000000101000000000000000000000000000000000000000000000000000000000000000000000010",
		a.And(b).String(),
	)

	t.Run("in place", func(t *testing.T) {
		x := b.Clone()
		x.InPlaceAnd(a)
		require.Equal(t, []uint{1, 72, 74}, ones(x))
		x = b.Clone()
		x.InPlaceOr(a)
		require.Equal(t, []uint{1, 2, 70, 72, 73, 74}, ones(x))
		x = b.Clone()
		x.InPlaceXor(a)
		require.Equal(t, []uint{2, 70, 73}, ones(x))
		x = a.Clone()
		x.InPlaceAndNot(b)
		require.Equal(t, []uint{70}, ones(x))
		// operands are untouched
		require.Equal(t, []uint{1, 70, 72, 74}, ones(a))
	})

	t.Run("different lengths", func(t *testing.T) {
		short := extendedOf(1, 3)
		long := extendedOf(3, 500)
		r := short.Or(long)
		require.Equal(t, uint(501), r.Len())
		require.Equal(t, []uint{1, 3, 500}, ones(r))
		r = long.And(short)
		require.Equal(t, uint(501), r.Len())
		require.Equal(t, []uint{3}, ones(r))
		short.InPlaceXor(long)
		require.Equal(t, []uint{1, 500}, ones(short))
		require.Equal(t, uint(501), short.Len())
	})

	t.Run("not within length", func(t *testing.T) {
		x, err := ParseExtended("ff00ff00ff00ff00", 16)
		require.NoError(t, err)
		require.Equal(t, "00ff00ff00ff00ff", x.Not().Format(16))

		y := NewExtended(256)
		y.SetBit(9, false)
		n := y.Not()
		require.Equal(t, 10, n.Weight())
		require.True(t, n.All())
		require.False(t, n.Bit(10))
	})
}

func TestExtended_shift(t *testing.T) {
	b := NewExtended(2)
	b.SetBit(60, true)
	l := b.Shl(46)
	require.True(t, l.Bit(106))
	require.Equal(t, []uint{106}, ones(l))
	require.Equal(t, uint(107), l.Len())
	b.InPlaceShl(46)
	require.True(t, b.Equal(l))

	c := NewExtended(2)
	c.SetBit(100, true)
	r := c.Shr(46)
	require.Equal(t, []uint{54}, ones(r))
	require.Equal(t, uint(101), r.Len())
	c.InPlaceShr(46)
	require.True(t, c.Equal(r))

	t.Run("carries across words", func(t *testing.T) {
		x := extendedOf(0, 63, 64, 127)
		require.Equal(t, []uint{130, 193, 194, 257}, ones(x.Shl(130)))
		require.Equal(t, []uint{0, 63}, ones(x.Shr(64)))
		require.Equal(t, []uint{62, 63, 126}, ones(x.Shr(1)))
		require.Equal(t, []uint{0}, ones(x.Shr(127)))
	})

	t.Run("past length", func(t *testing.T) {
		x := extendedOf(0, 63, 64, 127)
		require.True(t, x.Shr(128).None())
		require.True(t, x.Shr(10_000).None())
		require.Equal(t, uint(128), x.Shr(10_000).Len())
	})
	t.Run("shl length limit", func(t *testing.T) {
		empty := NewExtended(0)
		require.True(t, errors.Is(recoverError(func() { empty.Shl(1 << 33) }), ErrTooLarge))
		require.Equal(t, uint(0), empty.Len())
		require.Equal(t, uint(100), empty.Shl(100).Len())
	})
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestExtended_rotate(t *testing.T) {
	b := FromFixed(0b11110001)
	require.True(t, b.Rotr(40).Rotr(24).Equal(b))
	require.True(t, b.Rotl(40).Rotl(24).Equal(b))

	// rotation wraps at the logical length, not the capacity
	x := extendedOf(0, 99)
	require.Equal(t, uint(100), x.Len())
	require.Equal(t, []uint{0, 1}, ones(x.Rotl(1)))
	require.Equal(t, []uint{98, 99}, ones(x.Rotr(1)))
	require.Equal(t, []uint{49, 50}, ones(x.Rotl(150)))
	require.True(t, x.Rotl(100).Equal(x))

	empty := NewExtended(0)
	require.Equal(t, uint(0), empty.Rotl(5).Len())
	require.Equal(t, uint(0), empty.Rotr(5).Len())
}

func TestExtended_Subset(t *testing.T) {
	b := FromFixed(1234567890)
	require.Equal(t,
		"0000000000000000000000000000000000000000000000000000001011010010",
		b.Subset(0, 12).String(),
	)
	require.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000001101",
		b.Subset(4, 128).Subset(0, 4).String(),
	)
	require.Equal(t, uint(12), b.Subset(0, 12).Len())

	x := FromFixed(0b11110101)
	require.Equal(t, "1110", x.Subset(3, 4).Format(2))

	y := extendedOf(60, 61, 62, 63, 64, 65, 200)
	require.Equal(t, []uint{0, 1, 2, 3, 4, 5}, ones(y.Subset(60, 70)))
	require.Equal(t, []uint{134}, ones(y.Subset(62, 150).Subset(4, 146).Subset(0, 140)))
	require.Equal(t, uint(0), y.Subset(10, 0).Len())
}

func TestExtended_ExtractUint64(t *testing.T) {
	const offset = 140
	b := FromFixed(1234567890).Shl(offset)
	require.Equal(t, uint64(617283945), b.ExtractUint64(1+offset, 63))
	require.Equal(t, uint64(210), b.ExtractUint64(offset, 8))
	require.Equal(t, uint64(12310), b.ExtractUint64(5+offset, 14))
	require.Equal(t, uint64(1234567890), b.ExtractUint64(offset, 64))
	require.Equal(t, uint64(0), b.ExtractUint64(offset, 0))
	require.Equal(t, uint64(0), b.ExtractUint64(1<<20, 64))

	require.Panics(t, func() { FromFixed(1234567890).ExtractUint64(12, 75) })
}

func TestExtended_Insert(t *testing.T) {
	b := NewExtended(0)
	b.InsertUint64(0b1011011101111, 50, 64)
	require.Equal(t,
		"00000000000000000000000000000000000000000000000000000000000000000101101110111100000000000000000000000000000000000000000000000000",
		b.String(),
	)
	require.Equal(t, uint(114), b.Len())

	c := NewExtended(0)
	c.Insert(FromFixed(0b1011011101111), 60, 13)
	require.Equal(t,
		"00000000000000000000000000000000000000000000000000000001011011101111000000000000000000000000000000000000000000000000000000000000",
		c.String(),
	)

	t.Run("overwrites", func(t *testing.T) {
		x := NewExtended(0)
		require.NoError(t, x.Resize(256))
		x.Flip()
		x.InsertUint64(0, 60, 10)
		require.Equal(t, 246, x.Weight())
		for i := uint(60); i < 70; i++ {
			require.False(t, x.Bit(i), i)
		}
		require.Equal(t, uint(256), x.Len())
	})

	t.Run("multi word source", func(t *testing.T) {
		src := extendedOf(0, 64, 129, 130)
		dst := extendedOf(5)
		dst.Insert(src, 7, 130)
		require.Equal(t, []uint{5, 7, 71, 136}, ones(dst))
		require.Equal(t, uint(137), dst.Len())
	})

	t.Run("self", func(t *testing.T) {
		x := extendedOf(0, 1, 64)
		x.Insert(x, 3, 65)
		require.Equal(t, []uint{0, 1, 3, 4, 67}, ones(x))
	})
}

func TestExtended_Uint64(t *testing.T) {
	v, err := FromFixed(5).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)

	b := FromFixed(5)
	b.SetBit(200, true)
	b.SetBit(200, false)
	v, err = b.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)

	b.SetBit(64, true)
	_, err = b.Uint64()
	require.True(t, errors.Is(err, ErrOverflow))

	v, err = NewExtended(0).Uint64()
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestExtended_Equal(t *testing.T) {
	a := NewExtended(2000)
	b := NewExtended(2000)
	a.SetBit(1290, true)
	b.SetBit(1290, true)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	// length does not matter, content does
	c := extendedOf(1290)
	require.NoError(t, c.Resize(5000))
	require.True(t, a.Equal(c))
	require.Equal(t, a.Hash(), c.Hash())

	c.SetBit(1, true)
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())

	var key [32]byte
	copy(key[:], "0123456789abcdef0123456789abcdef")
	require.Equal(t, a.HashKeyed(key), b.HashKeyed(key))
	require.NotEqual(t, a.HashKeyed(key), c.HashKeyed(key))

	ahi, alo := a.Hash128()
	bhi, blo := b.Hash128()
	chi, clo := c.Hash128()
	require.Equal(t, [2]uint64{ahi, alo}, [2]uint64{bhi, blo})
	require.NotEqual(t, [2]uint64{ahi, alo}, [2]uint64{chi, clo})
}

func TestExtended_String(t *testing.T) {
	b := NewExtended(100)
	b.SetBit(99, true)
	require.Equal(t,
		"00000000000000000000000000001000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000",
		b.String(),
	)

	r, err := ParseExtended("0101", 2)
	require.NoError(t, err)
	r.Reset()
	require.Equal(t, strings.Repeat("0", 64), r.String())
	require.Equal(t, strings.Repeat("0", 64), NewExtended(0).String())
	require.Equal(t, "0b"+strings.Repeat("0", 64), fmt.Sprintf("%#v", NewExtended(0)))
}

package main

import (
	"math/rand/v2"
	"testing"

	"github.com/gernest/dense/bitset"
)

type op struct {
	name string
	fn   func(b *testing.B)
}

var sink any

func fixedOps() []op {
	r := rand.New(rand.NewPCG(1, 2))
	x, y := bitset.FixedFrom(r.Uint64()), bitset.FixedFrom(r.Uint64())
	return []op{
		{"weight", func(b *testing.B) {
			for b.Loop() {
				sink = x.Weight()
			}
		}},
		{"and", func(b *testing.B) {
			for b.Loop() {
				sink = x.And(y)
			}
		}},
		{"rotl", func(b *testing.B) {
			for b.Loop() {
				sink = x.Rotl(13)
			}
		}},
		{"reverse", func(b *testing.B) {
			for b.Loop() {
				sink = x.Reverse()
			}
		}},
		{"subset", func(b *testing.B) {
			for b.Loop() {
				sink = x.Subset(7, 33)
			}
		}},
		{"format16", func(b *testing.B) {
			for b.Loop() {
				sink = x.Format(16)
			}
		}},
		{"parse16", func(b *testing.B) {
			s := x.Format(16)
			for b.Loop() {
				sink, _ = bitset.ParseFixed(s, 16)
			}
		}},
	}
}

func extendedOps(size uint) []op {
	r := rand.New(rand.NewPCG(3, 4))
	random := func() *bitset.Extended {
		e := bitset.NewExtended(size)
		for i := range size {
			if r.IntN(2) == 0 {
				e.SetBit(i, true)
			}
		}
		return e
	}
	x, y := random(), random()
	return []op{
		{"weight", func(b *testing.B) {
			for b.Loop() {
				sink = x.Weight()
			}
		}},
		{"and", func(b *testing.B) {
			for b.Loop() {
				sink = x.And(y)
			}
		}},
		{"in-place and", func(b *testing.B) {
			z := x.Clone()
			for b.Loop() {
				z.InPlaceAnd(y)
			}
		}},
		{"shl", func(b *testing.B) {
			for b.Loop() {
				sink = x.Shl(77)
			}
		}},
		{"rotl", func(b *testing.B) {
			for b.Loop() {
				sink = x.Rotl(77)
			}
		}},
		{"reverse", func(b *testing.B) {
			for b.Loop() {
				sink = x.Reverse()
			}
		}},
		{"ones", func(b *testing.B) {
			for b.Loop() {
				n := 0
				for range x.Ones() {
					n++
				}
				sink = n
			}
		}},
		{"hash", func(b *testing.B) {
			for b.Loop() {
				sink = x.Hash()
			}
		}},
		{"format16", func(b *testing.B) {
			for b.Loop() {
				sink = x.Format(16)
			}
		}},
		{"format10", func(b *testing.B) {
			for b.Loop() {
				sink = x.Format(10)
			}
		}},
	}
}

// measure runs every op and returns its cost in ns/op.
func measure(name string, ops []op) chart {
	c := chart{Name: name, Unit: "ns"}
	for _, o := range ops {
		res := testing.Benchmark(o.fn)
		var ns float64
		if res.N > 0 {
			ns = float64(res.T.Nanoseconds()) / float64(res.N)
		}
		c.Entries = append(c.Entries, entry{Name: o.name, Value: ns})
	}
	return c
}

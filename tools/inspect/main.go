// Command inspect parses a bit string and prints what the bitset package knows about
// it.
//
//	inspect -radix 16 f8d5215a52b57ea0
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/docker/go-units"
	"github.com/gernest/dense/bitmaps"
	"github.com/gernest/dense/bitset"
	"github.com/pkg/errors"
	"github.com/prometheus/common/promslog"
)

type config struct {
	radix int
	out   int
	fixed bool
	key   string
}

func main() {
	var c config
	flag.IntVar(&c.radix, "radix", 2, "radix of the input, 2..36")
	flag.IntVar(&c.out, "out", 0, "radix to print the value in, defaults to -radix")
	flag.BoolVar(&c.fixed, "fixed", false, "parse into a 64 bit set")
	flag.StringVar(&c.key, "key", "", "hex encoded 32 byte key for a keyed hash")
	quiet := flag.Bool("q", false, "do not log")
	flag.Parse()

	lo := promslog.NewNopLogger()
	if !*quiet {
		lo = promslog.New(&promslog.Config{})
	}
	if flag.NArg() != 1 {
		lo.Error("expected exactly one bit string", "args", flag.NArg())
		os.Exit(2)
	}
	if err := run(os.Stdout, lo, c, flag.Arg(0)); err != nil {
		lo.Error("inspecting", "input", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

func run(w io.Writer, lo *slog.Logger, c config, s string) error {
	if c.out == 0 {
		c.out = c.radix
	}
	if c.out < 2 || c.out > 36 {
		return errors.Wrapf(bitset.ErrRadix, "output radix %d", c.out)
	}
	var key *[32]byte
	if c.key != "" {
		k, err := hex.DecodeString(c.key)
		if err != nil {
			return errors.Wrap(err, "decoding key")
		}
		if len(k) != 32 {
			return errors.Errorf("key must be 32 bytes, got %d", len(k))
		}
		key = (*[32]byte)(k)
	}

	var (
		b   bitset.BitSet
		ext *bitset.Extended
	)
	if c.fixed {
		f, err := bitset.ParseFixed(s, c.radix)
		if err != nil {
			return err
		}
		b = &f
		ext = bitset.FromFixed(f)
	} else {
		e, err := bitset.ParseExtended(s, c.radix)
		if err != nil {
			return err
		}
		b, ext = e, e
	}
	lo.Debug("parsed", "len", b.Len(), "fixed", c.fixed)

	value := b.Format(c.out)
	ra := bitmaps.ToRoaring(b)
	compressed, err := ra.WriteTo(io.Discard)
	if err != nil {
		return errors.Wrap(err, "sizing roaring encoding")
	}

	fmt.Fprintf(w, "value    %s\n", value)
	fmt.Fprintf(w, "len      %d\n", b.Len())
	fmt.Fprintf(w, "cap      %d\n", ext.Cap())
	fmt.Fprintf(w, "weight   %d\n", b.Weight())
	fmt.Fprintf(w, "first    %d\n", b.FirstSet())
	fmt.Fprintf(w, "last     %d\n", b.LastSet())
	fmt.Fprintf(w, "hash     %016x\n", b.Hash())
	h, l := ext.Hash128()
	fmt.Fprintf(w, "hash128  %016x%016x\n", h, l)
	if key != nil {
		fmt.Fprintf(w, "keyed    %016x\n", ext.HashKeyed(*key))
	}
	fmt.Fprintf(w, "dense    %s\n", units.BytesSize(float64(ext.Cap()/8)))
	fmt.Fprintf(w, "roaring  %s\n", units.BytesSize(float64(compressed)))
	return nil
}

// Command bench measures the bitset operations and renders the results as light and
// dark SVG bar charts.
//
// With -in the measurement step is skipped and charts are read as JSON from the
// named file, or stdin when the name is "-".
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixge/fgprof"
	"github.com/gernest/dense/bitset"
	"github.com/pkg/errors"
	"github.com/prometheus/common/promslog"
	"golang.org/x/sync/errgroup"
)

func main() {
	out := flag.String("out", ".", "directory to write charts to")
	in := flag.String("in", "", "read charts as JSON from this file instead of measuring")
	size := flag.Uint("size", 4096, "length in bits of the extended sets")
	profile := flag.String("profile", "", "write a wall clock profile to this file")
	level := flag.String("log.level", "info", "one of debug, info, warn, error")
	flag.Parse()

	lvl := promslog.NewLevel()
	if err := lvl.Set(*level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	lo := promslog.New(&promslog.Config{Level: lvl})

	if err := run(context.Background(), lo, *in, *out, *profile, *size); err != nil {
		lo.Error("bench failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, lo *slog.Logger, in, out, profile string, size uint) error {
	if profile != "" {
		f, err := os.Create(profile)
		if err != nil {
			return errors.Wrap(err, "creating profile")
		}
		defer f.Close()
		stop := fgprof.Start(f, fgprof.FormatPprof)
		defer func() {
			if err := stop(); err != nil {
				lo.Error("stopping profile", "err", err)
			}
		}()
	}

	var charts []chart
	if in != "" {
		var err error
		charts, err = load(in)
		if err != nil {
			return err
		}
	} else {
		if size == 0 || size > bitset.MaxBits {
			return errors.Wrapf(bitset.ErrTooLarge, "size %d", size)
		}
		lo.Info("measuring", "set", "fixed")
		charts = append(charts, measure("fixed", fixedOps()))
		lo.Info("measuring", "set", "extended", "bits", size)
		charts = append(charts, measure(fmt.Sprintf("extended-%d", size), extendedOps(size)))
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	return write(ctx, lo, out, charts)
}

func load(path string) ([]chart, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening charts")
		}
		defer f.Close()
		r = f
	}
	var charts []chart
	if err := json.NewDecoder(r).Decode(&charts); err != nil {
		return nil, errors.Wrap(err, "decoding charts")
	}
	return charts, nil
}

func write(ctx context.Context, lo *slog.Logger, out string, charts []chart) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range charts {
		c := &charts[i]
		for _, dark := range []bool{false, true} {
			theme := "light"
			if dark {
				theme = "dark"
			}
			name := filepath.Join(out, fmt.Sprintf("%s-%s.svg", c.Name, theme))
			body := c.svg(dark)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := os.WriteFile(name, []byte(body), 0o600); err != nil {
					return errors.Wrapf(err, "writing %s", name)
				}
				lo.Debug("wrote chart", "path", name)
				return nil
			})
		}
	}
	return g.Wait()
}

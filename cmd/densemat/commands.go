// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/densemat/matrix"
	"github.com/katalvlaran/densemat/matrixio"
)

// newFlagSet returns a flag set that reports to stderr instead of exiting.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("densemat "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	return fs
}

// requireFlags fails with errUsage when any of the named string flags is empty.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if fs.Lookup(name).Value.String() == "" {
			fmt.Fprintf(fs.Output(), "flag -%s is required\n", name)
			fs.Usage()
			return errUsage
		}
	}

	return nil
}

func sepOptions(sep string) []matrixio.Option {
	if sep == "" {
		return nil
	}

	return []matrixio.Option{matrixio.WithSeparator(sep)}
}

// load reads path in the format implied by its extension.
func load(e *env, path, sep string) (*matrix.Dense, error) {
	f, err := matrixio.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	m, err := matrixio.ReadFile(path, f, sepOptions(sep)...)
	if err != nil {
		return nil, err
	}
	e.log.Debug("read", slog.String("path", path), slog.String("format", f.String()),
		slog.Int("rows", m.Rows()), slog.Int("cols", m.Cols()), slog.Duration("took", time.Since(start)))

	return m, nil
}

// store writes m to path, or as text to stdout when path is empty.
func store(e *env, path, sep string, m matrix.Matrix) error {
	if path == "" {
		return matrixio.WriteText(e.stdout, m, sepOptions(sep)...)
	}
	f, err := matrixio.FormatFromPath(path)
	if err != nil {
		return err
	}
	if err = matrixio.WriteFile(path, m, f, sepOptions(sep)...); err != nil {
		return err
	}
	e.log.Debug("wrote", slog.String("path", path), slog.String("format", f.String()))

	return nil
}

// randomDense fills a rows×cols matrix with uniform values in [-10, 10).
func randomDense(rng *rand.Rand, rows, cols int) (*matrix.Dense, error) {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()*20 - 10
	}

	return matrix.NewDense(rows, cols, data)
}

func runGen(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "gen")
	rows := fs.Int("rows", 3, "row count")
	cols := fs.Int("cols", 3, "column count")
	seed := fs.Int64("seed", 1, "random seed")
	out := fs.String("out", "", "output file (.csv, .txt, .tsv, .bin, .json); stdout when empty")
	sep := fs.String("sep", "", "text separator (default: \";\" for .csv, tab otherwise)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := randomDense(rand.New(rand.NewSource(*seed)), *rows, *cols)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	return store(e, *out, *sep, m)
}

func runConvert(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "convert")
	in := fs.String("in", "", "input file")
	out := fs.String("out", "", "output file; stdout (text) when empty")
	inSep := fs.String("in-sep", "", "separator of a text input")
	outSep := fs.String("out-sep", "", "separator of a text output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "in"); err != nil {
		return err
	}

	m, err := load(e, *in, *inSep)
	if err != nil {
		return err
	}

	return store(e, *out, *outSep, m)
}

func runMul(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "mul")
	a := fs.String("a", "", "left operand file")
	b := fs.String("b", "", "right operand file")
	out := fs.String("out", "", "output file; stdout (text) when empty")
	workers := fs.Int("workers", 0, "goroutines for the row fan-out (0 = NumCPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "a", "b"); err != nil {
		return err
	}

	ma, err := load(e, *a, "")
	if err != nil {
		return err
	}
	mb, err := load(e, *b, "")
	if err != nil {
		return err
	}

	var opts []matrix.Option
	if *workers > 0 {
		opts = append(opts, matrix.WithWorkers(*workers))
	}
	start := time.Now()
	c, err := matrix.Mul(ma, mb, opts...)
	if err != nil {
		return err
	}
	e.log.Debug("mul", slog.Int("rows", c.Rows()), slog.Int("cols", c.Cols()), slog.Duration("took", time.Since(start)))

	return store(e, *out, "", c)
}

func runInv(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "inv")
	in := fs.String("in", "", "square matrix file")
	out := fs.String("out", "", "output file for the inverse; stdout (text) when empty")
	pivotName := fs.String("pivot", matrix.DefaultPivot.String(), "pivot strategy: first|largest")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "in"); err != nil {
		return err
	}
	pivot, ok := matrix.ParsePivotStrategy(*pivotName)
	if !ok {
		fmt.Fprintf(fs.Output(), "unknown pivot strategy %q\n", *pivotName)
		fs.Usage()
		return errUsage
	}

	m, err := load(e, *in, "")
	if err != nil {
		return err
	}
	inv, det, err := matrix.Inverse(m, matrix.WithPivoting(pivot))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "det %v\n", det)
	e.log.Debug("inverse", slog.Int("n", m.Rows()), slog.String("pivot", pivot.String()), slog.Float64("det", det))

	return store(e, *out, "", inv)
}

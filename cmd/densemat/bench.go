// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gosuri/uilive"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/densemat/matrix"
	"github.com/katalvlaran/densemat/matrixio"
)

// benchRefresh is how often the live progress block is redrawn.
const benchRefresh = 100 * time.Millisecond

// tracker holds the per-task status lines rendered by the progress writer.
type tracker struct {
	mu    sync.Mutex
	order []string
	state map[string]string
}

func newTracker(names ...string) *tracker {
	t := &tracker{order: names, state: make(map[string]string, len(names))}
	for _, n := range names {
		t.state[n] = "pending"
	}

	return t
}

func (t *tracker) set(name, state string) {
	t.mu.Lock()
	t.state[name] = state
	t.mu.Unlock()
}

func (t *tracker) render(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.order {
		fmt.Fprintf(w, "%-14s %s\n", n, t.state[n])
	}
}

// randomBatch draws count rows×cols matrices from rng.
func randomBatch(rng *rand.Rand, count, rows, cols int) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, count)
	var err error
	for i := range out {
		if out[i], err = randomDense(rng, rows, cols); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// runBench reproduces the classic workload: two arrays of random matrices
// (count × rows×cols and count × cols×rows), pairwise products in both
// orders, accumulated products, and a write/read round trip of the arrays
// through every format.
//
// The text, json and binary subdirectories of -dir are recreated on each run.
func runBench(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "bench")
	count := fs.Int("count", 50, "matrices per array")
	rows := fs.Int("rows", 500, "rows of the a matrices (columns of b)")
	cols := fs.Int("cols", 100, "columns of the a matrices (rows of b)")
	dir := fs.String("dir", "results", "output directory")
	seed := fs.Int64("seed", 1, "random seed")
	workers := fs.Int("workers", 0, "goroutines per product (0 = NumCPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 {
		fmt.Fprintln(fs.Output(), "flag -count must be >= 1")
		fs.Usage()
		return errUsage
	}
	var mulOpts []matrix.Option
	if *workers > 0 {
		mulOpts = append(mulOpts, matrix.WithWorkers(*workers))
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(*seed))
	a, err := randomBatch(rng, *count, *rows, *cols)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	b, err := randomBatch(rng, *count, *cols, *rows)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	e.log.Debug("generated", slog.Int("count", *count), slog.Int("rows", *rows), slog.Int("cols", *cols),
		slog.Duration("took", time.Since(start)))

	dirs := map[matrixio.Format]string{}
	for _, f := range []matrixio.Format{matrixio.FormatText, matrixio.FormatJSON, matrixio.FormatBinary} {
		dirs[f] = filepath.Join(*dir, f.String())
		if err = os.RemoveAll(dirs[f]); err != nil {
			return fmt.Errorf("bench: %w", err)
		}
	}

	// each round trip: which array, under which prefix, in which format
	type trip struct {
		name   string
		ms     []*matrix.Dense
		prefix string
		format matrixio.Format
	}
	trips := []trip{
		{"text a", a, "a_", matrixio.FormatText},
		{"json b", b, "b_", matrixio.FormatJSON},
		{"binary a", a, "a_", matrixio.FormatBinary},
	}

	st := newTracker("mul a*b", "mul b*a", "sum a*b", "sum b*a", "text a", "json b", "binary a")
	progress := uilive.New()
	progress.Out = e.stdout
	progress.Start()
	stopRender := make(chan struct{})
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		ticker := time.NewTicker(benchRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-stopRender:
				return
			case <-ticker.C:
				st.render(progress)
			}
		}
	}()

	timed := func(name string, f func() error) func() error {
		return func() error {
			st.set(name, "running")
			t0 := time.Now()
			if err := f(); err != nil {
				st.set(name, "failed: "+err.Error())
				return fmt.Errorf("%s: %w", name, err)
			}
			st.set(name, "done "+time.Since(t0).Round(time.Millisecond).String())
			return nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(timed("mul a*b", func() error { _, err := matrix.MulEachContext(gctx, a, b, mulOpts...); return err }))
	g.Go(timed("mul b*a", func() error { _, err := matrix.MulEachContext(gctx, b, a, mulOpts...); return err }))
	g.Go(timed("sum a*b", func() error { _, err := matrix.SumProductsContext(gctx, a, b, mulOpts...); return err }))
	g.Go(timed("sum b*a", func() error { _, err := matrix.SumProductsContext(gctx, b, a, mulOpts...); return err }))

	equal := make([]bool, len(trips))
	for i, tr := range trips {
		i, tr := i, tr
		g.Go(timed(tr.name, func() error {
			d := dirs[tr.format]
			if err := matrixio.WriteBatch(gctx, d, tr.prefix, tr.format, tr.ms); err != nil {
				return err
			}
			back, err := matrixio.ReadBatch(gctx, d, tr.prefix, tr.format)
			if err != nil {
				return err
			}
			equal[i] = matrix.EqualAll(tr.ms, back)
			return nil
		}))
	}
	err = g.Wait()

	close(stopRender)
	<-rendered
	st.render(progress)
	progress.Stop()
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	mismatch := false
	for i, tr := range trips {
		fmt.Fprintf(e.stdout, "%s equals: %t\n", tr.name, equal[i])
		mismatch = mismatch || !equal[i]
	}
	fmt.Fprintf(e.stdout, "total %s\n", time.Since(start).Round(time.Millisecond))
	if mismatch {
		return errors.New("bench: round trip changed a matrix")
	}

	return nil
}

// SPDX-License-Identifier: MIT

// Package parallel fans independent index ranges out over goroutines.
//
// The only contract is shared-nothing: f(i) for distinct i must not write to
// the same memory. For returns after every index has been processed, so a
// caller that fills a buffer through f never observes a partial result.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultMinChunk is the smallest number of indices handed to one goroutine.
const DefaultMinChunk = 16

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on concurrently running goroutines.
	MinChunk   int  // Minimum indices per goroutine to amortize scheduling.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinChunk:   DefaultMinChunk,
	}
}

// Sequential returns a Config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunk: DefaultMinChunk}
}

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Chunks splits [0, n) into at most cfg.NumWorkers contiguous ranges of at
// least cfg.MinChunk indices (the last one may be shorter). A disabled or
// degenerate config yields a single range.
func Chunks(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	minChunk := max(cfg.MinChunk, 1)
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*minChunk {
		return []Range{{Start: 0, End: n}}
	}

	size := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)
	out := make([]Range, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, Range{Start: start, End: min(start+size, n)})
	}

	return out
}

// For executes f(i) for i in [0, n), one goroutine per chunk.
// Falls back to a plain loop when only one chunk is produced.
func For(n int, f func(i int), cfg Config) {
	chunks := Chunks(n, cfg)
	if len(chunks) <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, r := range chunks {
		go func(r Range) {
			defer wg.Done()
			for i := r.Start; i < r.End; i++ {
				f(i)
			}
		}(r)
	}
	wg.Wait()
}

// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic results: options change scheduling and pivot choice only;
//     Mul yields bit-identical output for any worker count.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Mul consumes the scheduling options (workers, min rows, sequential).
//   - Inverse consumes the pivot option and ignores the scheduling ones; the
//     elimination is strictly sequential.
package matrix

import (
	"runtime"

	"github.com/katalvlaran/densemat/internal/parallel"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMinRowsPerWorker is the smallest block of result rows given to one
	// goroutine in Mul. Smaller products run on the calling goroutine.
	DefaultMinRowsPerWorker = parallel.DefaultMinChunk

	// DefaultPivot keeps the diagonal entry as the pivot unless it is exactly zero.
	DefaultPivot = PivotFirstNonZero
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid = "matrix: WithWorkers: n must be >= 1"
	panicMinRowsInvalid = "matrix: WithMinRowsPerWorker: n must be >= 1"
	panicPivotInvalid   = "matrix: WithPivoting: unknown pivot strategy"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	// scheduling policy (Mul)
	parallel bool // fan rows out over goroutines
	workers  int  // >= 1; default runtime.NumCPU()
	minRows  int  // >= 1; DefaultMinRowsPerWorker

	// elimination policy (Inverse)
	pivot PivotStrategy // DefaultPivot
}

// ---------- Constructors (WithX) ----------

// WithWorkers caps the number of goroutines Mul may use.
// Implementation:
//   - Stage 1: validate n ≥ 1.
//   - Stage 2: set workers=n; n==1 disables fan-out.
//
// Errors:
//   - Panics with a stable message when n < 1.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) {
		o.workers = n
		o.parallel = n > 1
	}
}

// WithMinRowsPerWorker sets the smallest row block handed to one goroutine.
// Panics when n < 1.
// AI-Hints: raise it for narrow products where a row is cheap to compute.
func WithMinRowsPerWorker(n int) Option {
	if n < 1 {
		panic(panicMinRowsInvalid)
	}

	return func(o *Options) { o.minRows = n }
}

// WithSequential forces Mul to compute every row on the calling goroutine.
func WithSequential() Option {
	return func(o *Options) { o.parallel = false }
}

// WithParallel re-enables row fan-out after WithSequential (default when NumCPU > 1).
func WithParallel() Option {
	return func(o *Options) { o.parallel = true }
}

// WithPivoting selects the pivot strategy used by Inverse.
// Implementation:
//   - Stage 1: validate p is a known PivotStrategy.
//   - Stage 2: return a setter that writes p into Options.
//
// Notes:
//   - PivotLargest is the numerically stronger variant; it changes which rows
//     are swapped and therefore the rounding of the result, never its meaning.
func WithPivoting(p PivotStrategy) Option {
	if p != PivotFirstNonZero && p != PivotLargest {
		panic(panicPivotInvalid)
	}

	return func(o *Options) { o.pivot = p }
}

// defaultOptions returns the documented zero-configuration behavior.
func defaultOptions() Options {
	n := runtime.NumCPU()

	return Options{
		parallel: n > 1,
		workers:  n,
		minRows:  DefaultMinRowsPerWorker,
		pivot:    DefaultPivot,
	}
}

// gatherOptions applies opts over the defaults in order (last write wins).
// Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// parallelConfig translates scheduling options into an internal/parallel Config.
func (o Options) parallelConfig() parallel.Config {
	return parallel.Config{
		Enabled:    o.parallel && o.workers > 1,
		NumWorkers: o.workers,
		MinChunk:   o.minRows,
	}
}

// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for the options snapshot
//
// Purpose:
//   - Expose a read-only view of the resolved Options to matrix_test ONLY.
//   - Being a _test.go file in package matrix, it is invisible to production builds.
//
// Risks & Maintenance:
//   - Keep OptionsSnapshot in sync with the Options fields (tests catch drift).

// OptionsSnapshot mirrors the unexported Options fields.
type OptionsSnapshot struct {
	Parallel bool
	Workers  int
	MinRows  int
	Pivot    PivotStrategy

	// Derived scheduling config handed to internal/parallel.
	ParallelEnabled bool
}

func snapshotOf(o Options) OptionsSnapshot {
	cfg := o.parallelConfig()

	return OptionsSnapshot{
		Parallel:        o.parallel,
		Workers:         o.workers,
		MinRows:         o.minRows,
		Pivot:           o.pivot,
		ParallelEnabled: cfg.Enabled,
	}
}

// GatherOptionsSnapshot_TestOnly resolves opts over the defaults.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	return snapshotOf(gatherOptions(opts...))
}

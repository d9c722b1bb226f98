// Package ports defines the interfaces the request orchestrator wires
// together: a seeded RNG, the sampling service, the worker pool, the
// profiling engine, the fingerprint+cache, and the comparison engine.
// Concrete implementations live under adapters/.
package ports

import (
	"context"

	"dataprofiler/domain/comparison"
	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
	"dataprofiler/domain/sampling"
)

// RNG is the deterministic seeded generator of spec §4.B.
type RNG interface {
	// Next returns the next value in [0, 1).
	Next() float64
}

// RNGFactory builds a fresh, independent RNG stream from a 32-bit seed.
type RNGFactory interface {
	New(seed int32) RNG
}

// Sampler is the sampling service of spec §4.C.
type Sampler interface {
	CreateSample(view *dataset.View, maxSampleSize int, stratify bool, seed int32) (*dataset.View, sampling.Metadata)
}

// ChunkFunc is the pure, shared-nothing function the worker pool dispatches
// per chunk, spec §4.D. It receives the half-open index range [start,end)
// of whatever abstract, contiguous work list the caller is chunking —
// column names for profileColumns, correlation-pair tasks for
// calculateCorrelations — and returns that chunk's partial result.
type ChunkFunc func(ctx context.Context, start, end int) (interface{}, error)

// PoolOptions configures one processInParallel invocation, spec §4.D.
type PoolOptions struct {
	MaxWorkers int
	ChunkSize  int
	TimeoutMs  int64
	TaskName   string
}

// WorkerPool is the bounded-parallelism executor of spec §4.D. totalItems
// is the length of the work list fn's [start,end) ranges index into.
type WorkerPool interface {
	ProcessInParallel(ctx context.Context, totalItems int, fn ChunkFunc, opts PoolOptions) (interface{}, error)
}

// Profiler is the profiling engine of spec §4.E.
type Profiler interface {
	Profile(ctx context.Context, view *dataset.View) (*profile.Report, error)
}

// Cache is the fingerprint + two-tier cache of spec §4.F.
type Cache interface {
	Fingerprint(content []byte, delimiter string, skipEmptyLines bool) string
	Lookup(fingerprint string) (*profile.Report, bool)
	Store(fingerprint string, report *profile.Report) bool
}

// Comparator is the comparison engine of spec §4.G.
type Comparator interface {
	Compare(p1, p2 *profile.Report) *comparison.Report
}

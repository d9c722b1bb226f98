// Package workerpool implements the bounded-parallelism executor of spec
// §4.D: a fixed worker cap, FIFO chunk dispatch, a single deadline for the
// whole operation, and fail-fast cancellation on the first chunk error.
package workerpool

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	ierrors "dataprofiler/internal/errors"
	"dataprofiler/ports"
)

const defaultTimeout = 60 * time.Second

// Pool is the default ports.WorkerPool, grounded on golang.org/x/sync's
// weighted semaphore for worker-count bounding.
type Pool struct{}

// New builds a Pool. There is no per-instance state: concurrency limits and
// chunk sizes are supplied per call via ports.PoolOptions.
func New() *Pool {
	return &Pool{}
}

type indexRange struct{ start, end int }

type chunkResult struct {
	partial interface{}
	err     error
}

// ProcessInParallel implements ports.WorkerPool. It splits [0, totalItems)
// into contiguous index ranges of at most opts.ChunkSize items each, runs
// fn over each range with at most opts.MaxWorkers in flight at once, and
// combines the per-chunk partials according to opts.TaskName once every
// chunk has either succeeded or the whole operation has failed.
//
// Chunks are dispatched in order (FIFO), but fn is pure and shares nothing
// across goroutines, so completion order is unconstrained. The first chunk
// error cancels the shared context and stops any further dispatch; chunks
// already in flight are allowed to finish (they are pure, so there is
// nothing to roll back) but their results are discarded.
func (p *Pool) ProcessInParallel(ctx context.Context, totalItems int, fn ports.ChunkFunc, opts ports.PoolOptions) (interface{}, error) {
	maxWorkers := opts.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	chunkSize := opts.ChunkSize
	if chunkSize < 1 {
		chunkSize = totalItems
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	deadline := time.Duration(opts.TimeoutMs) * time.Millisecond
	if deadline <= 0 {
		deadline = defaultTimeout
	}

	opCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	chunks := splitRanges(totalItems, chunkSize)
	if len(chunks) == 0 {
		return combine(opts.TaskName, nil)
	}

	sem := semaphore.NewWeighted(int64(maxWorkers))
	results := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	var failOnce sync.Once
	failed := make(chan struct{})

dispatch:
	for i, r := range chunks {
		select {
		case <-failed:
			break dispatch
		case <-opCtx.Done():
			break dispatch
		default:
		}

		if err := sem.Acquire(opCtx, 1); err != nil {
			results <- chunkResult{err: ierrors.TimeoutError("worker pool deadline exceeded before chunk " + strconv.Itoa(i) + " could start")}
			break dispatch
		}

		wg.Add(1)
		go func(rng indexRange) {
			defer wg.Done()
			defer sem.Release(1)

			select {
			case <-failed:
				return
			default:
			}

			partial, err := fn(opCtx, rng.start, rng.end)
			if err != nil {
				failOnce.Do(func() {
					close(failed)
					cancel()
				})
			}
			results <- chunkResult{partial: partial, err: err}
		}(r)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	partials := make([]interface{}, 0, len(chunks))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		if firstErr == nil {
			partials = append(partials, res.partial)
		}
	}

	if firstErr == nil && opCtx.Err() != nil {
		firstErr = ierrors.TimeoutError("worker pool deadline exceeded")
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return combine(opts.TaskName, partials)
}

// splitRanges divides [0, total) into contiguous ranges of at most
// chunkSize items each (the last may be smaller).
func splitRanges(total, chunkSize int) []indexRange {
	if total <= 0 {
		return nil
	}
	ranges := make([]indexRange, 0, (total+chunkSize-1)/chunkSize)
	for start := 0; start < total; start += chunkSize {
		end := start + chunkSize
		if end > total {
			end = total
		}
		ranges = append(ranges, indexRange{start: start, end: end})
	}
	return ranges
}

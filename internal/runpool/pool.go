// Package runpool bounds how many independent planning runs execute at
// once: each planning run owns its
// own Domain/Problem/Repositories/search.Driver (nothing is shared across
// runs, so there is no cross-run locking to design around), and runpool's
// only job is capping concurrency and collecting results, built on
// golang.org/x/sync/errgroup's bounded-group primitive.
package runpool

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Run is one independent planning run submitted to the pool.
type Run func(ctx context.Context) (any, error)

// Stats is what a fleet of planning runs needs tracked:
// submitted/completed/failed counts.
type Stats struct {
	Submitted int64
	Completed int64
	Failed    int64
}

// Pool runs up to limit planning runs concurrently.
type Pool struct {
	limit int
	stats Stats
}

// New returns a pool capped at limit concurrent runs. limit <= 0 defaults
// to runtime.NumCPU().
func New(limit int) *Pool {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Pool{limit: limit}
}

// Result pairs one submitted run's outcome with its index, since errgroup
// results arrive out of submission order under concurrency.
type Result struct {
	Index int
	Value any
	Err   error
}

// RunAll executes every run in runs with at most p.limit concurrently
// active, returning one Result per run (same length and order as runs
// regardless of completion order). Each run's error is carried in its own
// Result; no group error is returned.
// A run that panics is reported as its Result's error rather than taking
// down the pool.
func (p *Pool) RunAll(ctx context.Context, runs []Run) []Result {
	results := make([]Result, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i, run := range runs {
		i, run := i, run
		atomic.AddInt64(&p.stats.Submitted, 1)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					atomic.AddInt64(&p.stats.Failed, 1)
					results[i] = Result{Index: i, Err: &PanicError{Value: r}}
					return
				}
				if results[i].Err != nil {
					atomic.AddInt64(&p.stats.Failed, 1)
				} else {
					atomic.AddInt64(&p.stats.Completed, 1)
				}
			}()
			value, runErr := run(gctx)
			results[i] = Result{Index: i, Value: value, Err: runErr}
			return nil
		})
	}
	_ = g.Wait() // per-run errors are carried in results, not propagated as a group error
	return results
}

// Stats returns a point-in-time snapshot of submitted/completed/failed
// counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: atomic.LoadInt64(&p.stats.Submitted),
		Completed: atomic.LoadInt64(&p.stats.Completed),
		Failed:    atomic.LoadInt64(&p.stats.Failed),
	}
}

// PanicError wraps a recovered panic value so a crashing run surfaces as an
// ordinary error to the caller instead of taking down the whole pool.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return "runpool: run panicked: " + formatPanic(e.Value)
}

func formatPanic(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic"
}

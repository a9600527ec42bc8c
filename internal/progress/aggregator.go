// Package progress provides the run-wide, concurrency-safe counter set.
// Many workers add to it; one reporting loop reads it. Counters only ever
// move forward.
package progress

import (
	"sync/atomic"
	"time"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// Aggregator accumulates completed and error counts via atomic adds, so
// concurrent callers never lose updates. A single instance is shared for
// the whole run.
type Aggregator struct {
	completed atomic.Int64
	errors    atomic.Int64
	startedAt time.Time
}

// NewAggregator starts the clock for rate and ETA computations.
func NewAggregator() *Aggregator {
	return &Aggregator{startedAt: time.Now()}
}

// Add records finished work. It is called once per finished batch.
func (a *Aggregator) Add(completed, errors int64) {
	if completed > 0 {
		a.completed.Add(completed)
	}
	if errors > 0 {
		a.errors.Add(errors)
	}
}

// Completed returns the current completed count.
func (a *Aggregator) Completed() int64 {
	return a.completed.Load()
}

// Snapshot returns a point-in-time read of the counters. Each counter is
// individually consistent; the pair is not read under a common lock, which
// is fine because both only grow.
func (a *Aggregator) Snapshot() models.ProgressState {
	return models.ProgressState{
		Completed: a.completed.Load(),
		Errors:    a.errors.Load(),
		StartedAt: a.startedAt,
	}
}

// Rate returns completed items per second of elapsed wall time.
func (a *Aggregator) Rate() float64 {
	elapsed := time.Since(a.startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(a.completed.Load()) / elapsed
}

// ETA estimates the remaining wall time to process total items at the
// observed rate. It returns zero until a rate is measurable or when the
// run is already past total.
func (a *Aggregator) ETA(total int64) time.Duration {
	done := a.completed.Load() + a.errors.Load()
	remaining := total - done
	if remaining <= 0 {
		return 0
	}
	rate := a.Rate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(remaining) / rate * float64(time.Second))
}

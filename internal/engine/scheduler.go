package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/progress"
)

// State tracks where a scheduler is in its lifecycle.
type State int32

const (
	StatePlanned State = iota // batches computed, no work started
	StateSubmitting
	StateDraining // all submissions done, waiting for in-flight batches
	StateDone     // terminal; Summary available
)

func (s State) String() string {
	switch s {
	case StatePlanned:
		return "planned"
	case StateSubmitting:
		return "submitting"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// ErrBadConfig wraps configuration problems caught at Execute entry.
// It is the only error class Execute surfaces; everything else is
// recovered and counted.
var ErrBadConfig = fmt.Errorf("invalid scheduler configuration")

// Scheduler splits a work-item list into batches, feeds them to a worker
// pool, and blocks until every submitted batch has finished.
type Scheduler struct {
	maxWorkers int
	agg        *progress.Aggregator

	mu    sync.Mutex
	state State
}

// NewScheduler creates a scheduler posting progress to agg. maxWorkers of
// zero derives the count from the machine and the work size at Execute.
func NewScheduler(agg *progress.Aggregator, maxWorkers int) *Scheduler {
	return &Scheduler{maxWorkers: maxWorkers, agg: agg, state: StatePlanned}
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// SplitBatches slices items into ceil(len(items)/batchSize) batches,
// preserving input order within each batch. The item slices alias the
// input; items are owned by the caller until a worker consumes them.
func SplitBatches(items []models.WorkItem, batchSize int) []models.Batch {
	if batchSize <= 0 || len(items) == 0 {
		return nil
	}
	batches := make([]models.Batch, 0, (len(items)+batchSize-1)/batchSize)
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, models.Batch(items[start:end]))
	}
	return batches
}

// Execute runs the whole work list through the pool and returns the
// consolidated summary.
//
// If cap is non-nil, submission of new batches stops once the aggregator's
// completed count reaches it; batches already submitted drain normally.
// There is no mid-batch cancellation.
func (s *Scheduler) Execute(items []models.WorkItem, batchSize int, cap *int64, process ProcessFunc) (models.Summary, error) {
	if batchSize <= 0 {
		return models.Summary{}, fmt.Errorf("%w: batch size %d", ErrBadConfig, batchSize)
	}
	if s.maxWorkers < 0 {
		return models.Summary{}, fmt.Errorf("%w: max workers %d", ErrBadConfig, s.maxWorkers)
	}
	if cap != nil && *cap <= 0 {
		return models.Summary{}, fmt.Errorf("%w: cap %d", ErrBadConfig, *cap)
	}
	if process == nil {
		return models.Summary{}, fmt.Errorf("%w: nil process func", ErrBadConfig)
	}

	start := time.Now()
	batches := SplitBatches(items, batchSize)
	if len(batches) == 0 {
		s.setState(StateDone)
		return models.Summary{Duration: time.Since(start)}, nil
	}

	workers := s.maxWorkers
	if workers == 0 {
		workers = DefaultWorkerCount(len(batches))
	}

	pool, err := NewWorkerPool(workers)
	if err != nil {
		return models.Summary{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	defer pool.Release()

	logger.Get().Info().
		Int("items", len(items)).
		Int("batches", len(batches)).
		Int("workers", workers).
		Msg("starting run")

	var (
		resultMu sync.Mutex
		created  int64
		errors   int64
	)

	capReached := func() bool {
		return cap != nil && s.agg.Completed() >= *cap
	}

	// gatedProcess skips a batch that was queued behind the cap but never
	// started. In-flight batches always drain; there is no mid-batch kill.
	gatedProcess := func(b models.Batch) models.BatchResult {
		if capReached() {
			logger.Get().Debug().Int("batch_size", len(b)).Msg("cap reached, skipping queued batch")
			return models.BatchResult{}
		}
		return process(b)
	}

	s.setState(StateSubmitting)
	for _, batch := range batches {
		if capReached() {
			logger.Get().Info().Int64("cap", *cap).Msg("cap reached, stopping submission")
			break
		}
		batch := batch
		submitErr := pool.Submit(batch, gatedProcess, func(r models.BatchResult) {
			s.agg.Add(r.Created, r.Errors)
			resultMu.Lock()
			created += r.Created
			errors += r.Errors
			resultMu.Unlock()
		})
		if submitErr != nil {
			// The pool refused the batch; count it as failed rather
			// than dropping it silently.
			s.agg.Add(0, int64(len(batch)))
			resultMu.Lock()
			errors += int64(len(batch))
			resultMu.Unlock()
		}
	}

	s.setState(StateDraining)
	pool.Wait()
	s.setState(StateDone)

	resultMu.Lock()
	summary := models.Summary{
		TotalCreated: created,
		TotalErrors:  errors,
		Duration:     time.Since(start),
	}
	resultMu.Unlock()

	logger.Get().Info().
		Int64("created", summary.TotalCreated).
		Int64("errors", summary.TotalErrors).
		Dur("duration", summary.Duration).
		Msg("run finished")
	return summary, nil
}

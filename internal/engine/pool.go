// Package engine distributes pre-planned work across a bounded pool of
// workers and consolidates the results.
package engine

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// ProcessFunc handles one batch and reports its result.
// Created + Errors must equal the batch length.
type ProcessFunc func(models.Batch) models.BatchResult

// WorkerPool bounds how many batches are processed concurrently. It is
// backed by an ants goroutine pool; Submit blocks while all workers are
// busy, which gives the scheduler natural backpressure.
type WorkerPool struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

// NewWorkerPool creates a pool of at most maxWorkers concurrent workers.
func NewWorkerPool(maxWorkers int) (*WorkerPool, error) {
	if maxWorkers < 1 {
		return nil, fmt.Errorf("worker pool needs at least one worker, got %d", maxWorkers)
	}
	p, err := ants.NewPool(maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create goroutine pool: %w", err)
	}
	return &WorkerPool{pool: p}, nil
}

// Submit hands one batch to the pool. The batch is processed on a pool
// worker; done is invoked with its result. A panic inside process is
// caught and converted into an all-errors result so one bad batch never
// takes down the pool or other in-flight batches.
func (w *WorkerPool) Submit(batch models.Batch, process ProcessFunc, done func(models.BatchResult)) error {
	w.wg.Add(1)
	err := w.pool.Submit(func() {
		defer w.wg.Done()
		done(safeProcess(batch, process))
	})
	if err != nil {
		w.wg.Done()
		return fmt.Errorf("submit batch: %w", err)
	}
	return nil
}

// Wait blocks until every submitted batch has produced a result.
func (w *WorkerPool) Wait() {
	w.wg.Wait()
}

// Release tears the pool down. Call after Wait.
func (w *WorkerPool) Release() {
	w.pool.Release()
}

func safeProcess(batch models.Batch, process ProcessFunc) (result models.BatchResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error().Interface("panic", r).Int("batch_size", len(batch)).
				Msg("batch processing panicked")
			result = models.BatchResult{Errors: int64(len(batch))}
		}
	}()
	return process(batch)
}

// Run processes every batch with at most maxWorkers concurrent workers
// and returns one result per batch, index-aligned with the input. It
// returns only after every batch has produced a result; none is dropped.
func Run(batches []models.Batch, maxWorkers int, process ProcessFunc) []models.BatchResult {
	if len(batches) == 0 {
		return nil
	}
	if maxWorkers < 1 {
		maxWorkers = DefaultWorkerCount(len(batches))
	}

	pool, err := NewWorkerPool(maxWorkers)
	if err != nil {
		// Degenerate fallback: process inline, still honoring the
		// one-result-per-batch contract.
		results := make([]models.BatchResult, len(batches))
		for i, b := range batches {
			results[i] = safeProcess(b, process)
		}
		return results
	}
	defer pool.Release()

	results := make([]models.BatchResult, len(batches))
	var mu sync.Mutex
	for i, b := range batches {
		i, b := i, b
		submitErr := pool.Submit(b, process, func(r models.BatchResult) {
			mu.Lock()
			results[i] = r
			mu.Unlock()
		})
		if submitErr != nil {
			results[i] = models.BatchResult{Errors: int64(len(b))}
		}
	}
	pool.Wait()
	return results
}

// DefaultWorkerCount derives a worker count from available CPU
// parallelism and the amount of work. Small runs get fewer workers so
// pool startup does not dominate runtime.
func DefaultWorkerCount(batches int) int {
	workers := runtime.NumCPU()
	if batches < workers {
		workers = batches
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

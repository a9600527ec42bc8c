// This file defines the core data structures (models) for the engine.
// These structs represent the units of work, their batching, and the
// results reported back to the caller.

package models

import "time"

// ItemKind describes what class of filesystem object a WorkItem produces.
type ItemKind string

const (
	KindFile    ItemKind = "file"    // a regular, sparse demo file
	KindClutter ItemKind = "clutter" // incidental junk (thumbs.db, lock files, ...)
)

// WorkItem is a single, fully-resolved unit of filesystem creation work.
// It is immutable once created; ownership passes to exactly one worker.
type WorkItem struct {
	TargetPath string   `json:"target_path"`
	SizeKB     int64    `json:"size_kb"`
	Tag        string   `json:"tag"` // e.g. department name
	Kind       ItemKind `json:"kind"`
}

// Batch is an ordered slice of work items handed to a single worker.
// Item order within a batch is preserved as submitted.
type Batch []WorkItem

// BatchResult is returned by a worker after finishing one batch.
// Invariant: Created + Errors == len(batch) for every completed batch.
type BatchResult struct {
	Created int64 `json:"created"`
	Errors  int64 `json:"errors"`
}

// ProgressState is a point-in-time snapshot of the run's counters.
type ProgressState struct {
	Completed int64     `json:"completed"`
	Errors    int64     `json:"errors"`
	StartedAt time.Time `json:"started_at"`
}

// Summary is the final, caller-facing outcome of a run.
// Barring an early cap stop, TotalCreated + TotalErrors == number of items.
type Summary struct {
	TotalCreated int64         `json:"total_created"`
	TotalErrors  int64         `json:"total_errors"`
	Duration     time.Duration `json:"duration"`
}

// ProgressUpdate is the JSON payload pushed to websocket clients and
// polled from the status API while a run is in flight.
type ProgressUpdate struct {
	RunID     string  `json:"run_id"`
	Message   string  `json:"message"`
	Completed int64   `json:"completed"`
	Errors    int64   `json:"errors"`
	Total     int64   `json:"total"`
	Rate      float64 `json:"rate"` // items per second
	ETA       string  `json:"eta"`
	Done      bool    `json:"done"`
}

// ManifestEntry is one audit row recorded for every created item.
type ManifestEntry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Path      string    `json:"path"`
	SizeKB    int64     `json:"size_kb"`
	Tag       string    `json:"tag"`
	Kind      string    `json:"kind"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

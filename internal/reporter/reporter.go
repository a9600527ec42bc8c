// Package reporter is the run's reporting loop. It polls the progress
// aggregator on a fixed interval — the aggregator itself never throttles —
// and fans the snapshot out to the log and any websocket listeners. It
// also re-warms the directory cache as entries age out.
package reporter

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/dircache"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/progress"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/websocket"
)

// Reporter periodically emits progress updates for one run.
type Reporter struct {
	runID string
	total int64
	agg   *progress.Aggregator
	hub   *websocket.Hub  // may be nil
	cache *dircache.Cache // may be nil
	sched *gocron.Scheduler
}

// New builds a reporter. hub and cache are optional.
func New(runID string, total int64, agg *progress.Aggregator, hub *websocket.Hub, cache *dircache.Cache) *Reporter {
	return &Reporter{
		runID: runID,
		total: total,
		agg:   agg,
		hub:   hub,
		cache: cache,
	}
}

// Start begins emitting every intervalSeconds until Stop is called.
func (r *Reporter) Start(intervalSeconds int) {
	if intervalSeconds <= 0 {
		intervalSeconds = 2
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if _, err := s.Every(intervalSeconds).Seconds().Do(func() { r.emit(false) }); err != nil {
		logger.Get().Error().Err(err).Msg("could not schedule progress reports")
	}
	if r.cache != nil {
		// Cheap when everything is fresh; only stale groups refetch.
		if _, err := s.Every(intervalSeconds * 5).Seconds().Do(func() {
			if err := r.cache.Warm(false); err != nil {
				logger.Get().Debug().Err(err).Msg("periodic cache warm failed")
			}
		}); err != nil {
			logger.Get().Error().Err(err).Msg("could not schedule cache re-warm")
		}
	}

	s.StartAsync()
	r.sched = s
}

// Stop halts the loop and emits one final, done-flagged update.
func (r *Reporter) Stop() {
	if r.sched != nil {
		r.sched.Stop()
		r.sched = nil
	}
	r.emit(true)
}

func (r *Reporter) emit(done bool) {
	snap := r.agg.Snapshot()
	rate := r.agg.Rate()
	eta := r.agg.ETA(r.total)

	logger.Get().Info().
		Int64("completed", snap.Completed).
		Int64("errors", snap.Errors).
		Int64("total", r.total).
		Float64("rate_per_sec", rate).
		Str("eta", eta.Round(time.Second).String()).
		Msg("progress")

	if r.hub == nil {
		return
	}
	r.hub.BroadcastJSON(models.ProgressUpdate{
		RunID:     r.runID,
		Message:   "creating files",
		Completed: snap.Completed,
		Errors:    snap.Errors,
		Total:     r.total,
		Rate:      rate,
		ETA:       eta.Round(time.Second).String(),
		Done:      done,
	})
}

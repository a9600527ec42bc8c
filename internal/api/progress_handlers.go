package api

import (
	"net/http"
	"time"
)

// handleGetProgress returns the current counters plus derived rate and
// ETA. Pollers should keep their interval modest; the underlying snapshot
// is cheap but not free.
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Progress.Snapshot()

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":       s.app.RunID,
		"completed":    snap.Completed,
		"errors":       snap.Errors,
		"total":        s.total,
		"started_at":   snap.StartedAt,
		"rate_per_sec": s.app.Progress.Rate(),
		"eta":          s.app.Progress.ETA(s.total).Round(time.Second).String(),
	})
}

// handleGetRun describes the run's static shape.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	manifestCount := int64(-1)
	if s.app.Manifest != nil {
		if n, err := s.app.Manifest.CountByRun(s.app.RunID); err == nil {
			manifestCount = n
		}
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":         s.app.RunID,
		"output_path":    s.app.Config.Output.Path,
		"batch_size":     s.app.Config.BatchSize,
		"max_workers":    s.app.Config.MaxWorkers,
		"total_items":    s.total,
		"domain":         s.app.Cache.Domain(),
		"manifest_count": manifestCount,
	})
}

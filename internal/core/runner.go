package core

import (
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/builder"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/engine"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// OwnerApplier is the ACL mutation primitive this engine orchestrates but
// does not implement. The default does nothing beyond the manifest record;
// deployments with real directory integration inject their own.
type OwnerApplier interface {
	ApplyOwner(path, owner string) error
}

// NoopOwnerApplier records ownership only in the manifest.
type NoopOwnerApplier struct{}

func (NoopOwnerApplier) ApplyOwner(path, owner string) error { return nil }

// Runner executes a planned work-item list through the engine, wiring the
// builder, directory cache, progress aggregator, and manifest together.
type Runner struct {
	app     *App
	builder *builder.Builder
	owners  OwnerApplier
}

// NewRunner assembles a runner for one run. owners may be nil.
func NewRunner(app *App, b *builder.Builder, owners OwnerApplier) *Runner {
	if owners == nil {
		owners = NoopOwnerApplier{}
	}
	return &Runner{app: app, builder: b, owners: owners}
}

// Run warms the directory cache (failure is tolerated: items fall back to
// a generic identity) and pushes every item through the pipeline.
func (r *Runner) Run(items []models.WorkItem) (models.Summary, error) {
	if err := r.app.Cache.Warm(false); err != nil {
		logger.Get().Warn().Err(err).Msg("directory warm-up failed, using fallback identities")
	}

	scheduler := engine.NewScheduler(r.app.Progress, r.app.Config.MaxWorkers)
	return scheduler.Execute(items, r.app.Config.BatchSize, r.app.Config.Cap, r.processBatch)
}

// processBatch is the per-batch pipeline: build files, assign identities,
// record the manifest. It runs on pool workers.
func (r *Runner) processBatch(batch models.Batch) models.BatchResult {
	outcomes := r.builder.BuildBatch(batch)

	var result models.BatchResult
	entries := make([]models.ManifestEntry, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			result.Errors++
			continue
		}
		result.Created++

		owner := r.resolveOwner(o.Item.Tag)
		if err := r.owners.ApplyOwner(o.FinalPath, owner); err != nil {
			// Ownership is cosmetic for demo data; the file exists, so
			// the item still counts as created.
			logger.Get().Debug().Err(err).Str("path", o.FinalPath).Msg("apply owner failed")
		}

		entries = append(entries, models.ManifestEntry{
			RunID:  r.app.RunID,
			Path:   o.FinalPath,
			SizeKB: o.Item.SizeKB,
			Tag:    o.Item.Tag,
			Kind:   string(o.Item.Kind),
			Owner:  owner,
		})
	}

	if r.app.Manifest != nil {
		if err := r.app.Manifest.RecordBatch(entries); err != nil {
			logger.Get().Warn().Err(err).Msg("manifest record failed")
		}
	}
	return result
}

// resolveOwner draws a group member from the cache, falling back to the
// generic identity when the directory never answered. A cache miss is not
// an item failure.
func (r *Runner) resolveOwner(tag string) string {
	groupKey := r.app.Policy.GroupKeyFor(tag)
	if member, ok := r.app.Cache.ResolveRandomMember(groupKey); ok {
		return member
	}
	return r.app.Policy.FallbackOwner()
}

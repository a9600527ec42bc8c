// Package generator plans the work-item list: which files to fabricate,
// where, and how big. It is deliberately single-threaded and deterministic
// under a seed; all the concurrency lives in the engine that consumes its
// output.
package generator

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// Options shapes the planned tree.
type Options struct {
	Root           string
	Departments    []string
	FilesPerFolder int
	FolderDepth    int
	ClutterPercent int   // 0..100, share of extra clutter items per folder
	Seed           int64 // 0 = time-based
}

// Generator plans work items for the engine.
type Generator struct {
	opts Options
	seed int64
}

// New validates and applies option defaults.
func New(opts Options) *Generator {
	if opts.FilesPerFolder <= 0 {
		opts.FilesPerFolder = 25
	}
	if opts.FolderDepth <= 0 {
		opts.FolderDepth = 3
	}
	if opts.ClutterPercent < 0 {
		opts.ClutterPercent = 0
	}
	if opts.ClutterPercent > 100 {
		opts.ClutterPercent = 100
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{opts: opts, seed: seed}
}

// Plan materializes the full work-item list. Every item is fully resolved
// (path, size, tag) before any scheduling happens.
func (g *Generator) Plan() []models.WorkItem {
	var items []models.WorkItem
	for _, dept := range g.opts.Departments {
		// Per-department rng so adding a department does not reshuffle
		// the others.
		rng := rand.New(rand.NewSource(g.seed ^ int64(xxhash.Sum64String(dept))))
		deptRoot := filepath.Join(g.opts.Root, SanitizeFilename(dept))
		items = append(items, g.planFolder(rng, deptRoot, dept, g.opts.FolderDepth)...)
	}
	logger.Get().Info().Int("items", len(items)).Int("departments", len(g.opts.Departments)).
		Msg("planned work items")
	return items
}

func (g *Generator) planFolder(rng *rand.Rand, dir, dept string, depth int) []models.WorkItem {
	var items []models.WorkItem

	nFiles := g.opts.FilesPerFolder/2 + rng.Intn(g.opts.FilesPerFolder+1)
	for i := 0; i < nFiles; i++ {
		profile := pickProfile(rng)
		items = append(items, models.WorkItem{
			TargetPath: filepath.Join(dir, fileName(rng, dept, profile.ext)),
			SizeKB:     pickSizeKB(rng, profile),
			Tag:        dept,
			Kind:       models.KindFile,
		})
	}

	nClutter := nFiles * g.opts.ClutterPercent / 100
	for i := 0; i < nClutter; i++ {
		items = append(items, g.clutterItem(rng, dir, dept))
	}

	if depth <= 1 {
		return items
	}
	nSub := 1 + rng.Intn(3)
	for i := 0; i < nSub; i++ {
		sub := filepath.Join(dir, SanitizeFilename(pick(rng, folderPool(dept))))
		items = append(items, g.planFolder(rng, sub, dept, depth-1)...)
	}
	return items
}

// clutterItem produces the junk every real file share accumulates.
func (g *Generator) clutterItem(rng *rand.Rand, dir, dept string) models.WorkItem {
	var name string
	var sizeKB int64
	switch rng.Intn(4) {
	case 0:
		name = "Thumbs.db"
		sizeKB = 16
	case 1:
		name = "desktop.ini"
		sizeKB = 1
	case 2:
		name = "~$" + fileName(rng, dept, ".docx")
		sizeKB = 1
	default:
		name = fmt.Sprintf("%08x.tmp", rng.Uint32())
		sizeKB = int64(rng.Intn(64)) + 1
	}
	return models.WorkItem{
		TargetPath: filepath.Join(dir, name),
		SizeKB:     sizeKB,
		Tag:        dept,
		Kind:       models.KindClutter,
	}
}

// TotalSizeKB sums the planned allocation, handy for plan-only output.
func TotalSizeKB(items []models.WorkItem) int64 {
	var total int64
	for _, it := range items {
		total += it.SizeKB
	}
	return total
}

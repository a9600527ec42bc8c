// Package builder performs the actual filesystem work: directory
// auto-creation, sparse allocation, and content stubs. It is the only
// package that touches the output tree.
package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// FileSystem is the storage primitive surface the builder orchestrates.
// The afero-backed implementation below is used in production; tests can
// substitute a failing one.
type FileSystem interface {
	// EnsureDir creates path and any missing parents. Idempotent.
	EnsureDir(path string) error
	// AllocateSparse claims path exclusively and grows it to size bytes
	// without writing content. It returns os.ErrExist if path is taken.
	AllocateSparse(path string, size int64) error
	// WriteStub writes stub bytes at the start of an existing file.
	WriteStub(path string, stub []byte) error
}

// StubProvider supplies the placeholder bytes written to the head of each
// created file so type sniffers see something plausible.
type StubProvider interface {
	StubFor(item models.WorkItem) []byte
}

// ItemOutcome reports what happened to one work item. FinalPath may
// differ from the requested target path after a collision rename.
type ItemOutcome struct {
	Item      models.WorkItem
	FinalPath string
	Err       error
}

// Builder creates sparse demo files per work item.
type Builder struct {
	fs    FileSystem
	stubs StubProvider
}

// New wires a builder to its filesystem and stub collaborators.
func New(fs FileSystem, stubs StubProvider) *Builder {
	return &Builder{fs: fs, stubs: stubs}
}

// CreateSparse ensures the item's parent directory exists, allocates a
// sparse file of SizeKB kilobytes, and writes a minimal type stub. If the
// target path is already taken it deterministically renames rather than
// overwriting: collisions are expected under concurrent random name
// generation and never abort a batch.
func (b *Builder) CreateSparse(item models.WorkItem) (string, error) {
	dir := filepath.Dir(item.TargetPath)
	if err := b.fs.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("ensure dir %s: %w", dir, err)
	}
	return b.create(item)
}

// create assumes the parent directory already exists. BuildBatch uses it
// after grouping so the directory check runs once per directory.
func (b *Builder) create(item models.WorkItem) (string, error) {
	size := item.SizeKB * 1024
	path := item.TargetPath

	for attempt := 0; ; attempt++ {
		err := b.fs.AllocateSparse(path, size)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("allocate %s: %w", path, err)
		}
		path = collisionPath(item.TargetPath, attempt+1)
	}

	if stub := b.stubs.StubFor(item); len(stub) > 0 {
		if err := b.fs.WriteStub(path, stub); err != nil {
			return "", fmt.Errorf("write stub %s: %w", path, err)
		}
	}
	return path, nil
}

// BuildBatch creates every item in the batch, grouping items by target
// directory first so the directory-existence work happens once per
// directory instead of once per file. A failing item is recorded and the
// rest of the batch continues.
func (b *Builder) BuildBatch(batch models.Batch) []ItemOutcome {
	outcomes := make([]ItemOutcome, len(batch))

	ensured := make(map[string]error)
	for _, item := range batch {
		dir := filepath.Dir(item.TargetPath)
		if _, seen := ensured[dir]; !seen {
			ensured[dir] = b.fs.EnsureDir(dir)
		}
	}

	for i, item := range batch {
		outcomes[i].Item = item

		dir := filepath.Dir(item.TargetPath)
		if err := ensured[dir]; err != nil {
			outcomes[i].Err = fmt.Errorf("ensure dir %s: %w", dir, err)
			continue
		}

		final, err := b.create(item)
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", item.TargetPath).Msg("item failed")
			outcomes[i].Err = err
			continue
		}
		outcomes[i].FinalPath = final
	}
	return outcomes
}

// collisionPath appends a disambiguating suffix before the extension:
// report.xlsx -> report_1.xlsx, report_2.xlsx, ...
func collisionPath(original string, n int) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return fmt.Sprintf("%s_%d%s", base, n, ext)
}

// AferoFS adapts an afero.Fs to the FileSystem interface. With afero.NewOsFs
// it talks to the real disk; tests hand it a MemMapFs.
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps fs.
func NewAferoFS(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

func (a *AferoFS) EnsureDir(path string) error {
	return a.fs.MkdirAll(path, 0o755)
}

// AllocateSparse creates the file with O_EXCL so concurrent workers racing
// on the same name see os.ErrExist instead of clobbering each other, then
// extends it to size. On filesystems with sparse support the extension
// consumes no data blocks.
func (a *AferoFS) AllocateSparse(path string, size int64) error {
	f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if size > 0 {
		if err := f.Truncate(size); err != nil {
			// Leave no half-made file behind.
			a.fs.Remove(path)
			return err
		}
	}
	return nil
}

func (a *AferoFS) WriteStub(path string, stub []byte) error {
	f, err := a.fs.OpenFile(path, os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteAt(stub, 0)
	return err
}

package builder_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/builder"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

func newTestBuilder() (*builder.Builder, afero.Fs) {
	memFs := afero.NewMemMapFs()
	return builder.New(builder.NewAferoFS(memFs), builder.DefaultStubs{}), memFs
}

func TestCreateSparse(t *testing.T) {
	b, memFs := newTestBuilder()

	item := models.WorkItem{
		TargetPath: "/share/Finance/Q3/budget.xlsx",
		SizeKB:     64,
		Tag:        "Finance",
		Kind:       models.KindFile,
	}

	final, err := b.CreateSparse(item)
	require.NoError(t, err)
	assert.Equal(t, item.TargetPath, final)

	info, err := memFs.Stat(final)
	require.NoError(t, err)
	assert.Equal(t, int64(64*1024), info.Size())

	// The stub is written at the head of the file.
	f, err := memFs.Open(final)
	require.NoError(t, err)
	defer f.Close()
	head := make([]byte, 4)
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), head)
}

func TestCreateSparseMissingParents(t *testing.T) {
	b, memFs := newTestBuilder()

	item := models.WorkItem{TargetPath: "/share/a/b/c/d/notes.txt", SizeKB: 1, Kind: models.KindFile}
	_, err := b.CreateSparse(item)
	require.NoError(t, err)

	ok, _ := afero.DirExists(memFs, "/share/a/b/c/d")
	assert.True(t, ok)

	// Creating again into the same tree is fine.
	item2 := models.WorkItem{TargetPath: "/share/a/b/c/d/more.txt", SizeKB: 1, Kind: models.KindFile}
	_, err = b.CreateSparse(item2)
	require.NoError(t, err)
}

func TestCollisionRename(t *testing.T) {
	b, memFs := newTestBuilder()

	item := models.WorkItem{TargetPath: "/share/HR/handbook.pdf", SizeKB: 8, Kind: models.KindFile}

	first, err := b.CreateSparse(item)
	require.NoError(t, err)
	second, err := b.CreateSparse(item)
	require.NoError(t, err)
	third, err := b.CreateSparse(item)
	require.NoError(t, err)

	// Both complete with distinct final paths; nothing is overwritten.
	assert.Equal(t, "/share/HR/handbook.pdf", first)
	assert.Equal(t, "/share/HR/handbook_1.pdf", second)
	assert.Equal(t, "/share/HR/handbook_2.pdf", third)

	for _, p := range []string{first, second, third} {
		ok, _ := afero.Exists(memFs, p)
		assert.True(t, ok, "expected %s to exist", p)
	}
}

func TestBuildBatchGroupsAndContinuesPastFailures(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fs := &countingFS{inner: builder.NewAferoFS(memFs)}
	b := builder.New(fs, builder.DefaultStubs{})

	batch := models.Batch{
		{TargetPath: "/share/Sales/leads.xlsx", SizeKB: 4, Kind: models.KindFile},
		{TargetPath: "/share/Sales/pipeline.xlsx", SizeKB: 4, Kind: models.KindFile},
		{TargetPath: "/share/Sales/notes.txt", SizeKB: 1, Kind: models.KindFile},
		{TargetPath: "/share/Legal/contract.docx", SizeKB: 4, Kind: models.KindFile},
	}

	outcomes := b.BuildBatch(batch)
	require.Len(t, outcomes, len(batch))
	for _, o := range outcomes {
		assert.NoError(t, o.Err)
		assert.NotEmpty(t, o.FinalPath)
	}

	// Two distinct directories, two EnsureDir calls.
	assert.Equal(t, 2, fs.ensureDirCalls)
}

func TestBuildBatchPerItemFailure(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fs := &countingFS{inner: builder.NewAferoFS(memFs), failPath: "/share/IT/broken.bin"}
	b := builder.New(fs, builder.DefaultStubs{})

	batch := models.Batch{
		{TargetPath: "/share/IT/ok1.txt", SizeKB: 1, Kind: models.KindFile},
		{TargetPath: "/share/IT/broken.bin", SizeKB: 1, Kind: models.KindFile},
		{TargetPath: "/share/IT/ok2.txt", SizeKB: 1, Kind: models.KindFile},
	}

	outcomes := b.BuildBatch(batch)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err, "allocation failure is per-item fatal")
	assert.NoError(t, outcomes[2].Err, "the batch continues past a failed item")
}

func TestClutterStub(t *testing.T) {
	b, memFs := newTestBuilder()

	item := models.WorkItem{TargetPath: "/share/HR/Thumbs.db", SizeKB: 0, Kind: models.KindClutter}
	final, err := b.CreateSparse(item)
	require.NoError(t, err)

	data, err := afero.ReadFile(memFs, final)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

// countingFS wraps a FileSystem, counting EnsureDir calls and failing
// allocation for one configured path.
type countingFS struct {
	inner          builder.FileSystem
	ensureDirCalls int
	failPath       string
}

func (c *countingFS) EnsureDir(path string) error {
	c.ensureDirCalls++
	return c.inner.EnsureDir(path)
}

func (c *countingFS) AllocateSparse(path string, size int64) error {
	if c.failPath != "" && path == c.failPath {
		return fmt.Errorf("sparse extension unsupported: %w", os.ErrInvalid)
	}
	return c.inner.AllocateSparse(path, size)
}

func (c *countingFS) WriteStub(path string, stub []byte) error {
	return c.inner.WriteStub(path, stub)
}

func TestCollisionPathKeepsExtension(t *testing.T) {
	b, _ := newTestBuilder()

	// No extension at all still renames cleanly.
	item := models.WorkItem{TargetPath: "/share/IT/README", SizeKB: 1, Kind: models.KindFile}
	first, err := b.CreateSparse(item)
	require.NoError(t, err)
	second, err := b.CreateSparse(item)
	require.NoError(t, err)

	assert.Equal(t, "/share/IT/README", first)
	assert.Equal(t, "/share/IT/README_1", second)
	assert.Equal(t, filepath.Ext(first), filepath.Ext(second))
}

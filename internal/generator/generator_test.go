package generator_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/generator"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

func planOpts() generator.Options {
	return generator.Options{
		Root:           "/share",
		Departments:    []string{"Finance", "Engineering"},
		FilesPerFolder: 10,
		FolderDepth:    2,
		ClutterPercent: 20,
		Seed:           42,
	}
}

func TestPlanShape(t *testing.T) {
	items := generator.New(planOpts()).Plan()
	require.NotEmpty(t, items)

	for _, item := range items {
		assert.True(t, strings.HasPrefix(item.TargetPath, "/share/"),
			"item %q must live under the root", item.TargetPath)
		assert.Positive(t, item.SizeKB)
		assert.Contains(t, []string{"Finance", "Engineering"}, item.Tag)
		assert.Contains(t, []models.ItemKind{models.KindFile, models.KindClutter}, item.Kind)

		// Tag and top-level folder agree.
		rel, err := filepath.Rel("/share", item.TargetPath)
		require.NoError(t, err)
		top := strings.Split(rel, string(filepath.Separator))[0]
		assert.Equal(t, item.Tag, top)
	}
}

func TestPlanDeterministicUnderSeed(t *testing.T) {
	a := generator.New(planOpts()).Plan()
	b := generator.New(planOpts()).Plan()
	assert.Equal(t, a, b, "same seed, same plan")

	opts := planOpts()
	opts.Seed = 43
	c := generator.New(opts).Plan()
	assert.NotEqual(t, a, c, "different seed should reshuffle the plan")
}

func TestPlanDepartmentIndependence(t *testing.T) {
	a := generator.New(planOpts()).Plan()

	opts := planOpts()
	opts.Departments = []string{"Finance", "Engineering", "Legal"}
	b := generator.New(opts).Plan()

	var aFinance, bFinance []models.WorkItem
	for _, it := range a {
		if it.Tag == "Finance" {
			aFinance = append(aFinance, it)
		}
	}
	for _, it := range b {
		if it.Tag == "Finance" {
			bFinance = append(bFinance, it)
		}
	}
	assert.Equal(t, aFinance, bFinance,
		"adding a department must not reshuffle the others")
}

func TestPlanIncludesClutter(t *testing.T) {
	items := generator.New(planOpts()).Plan()

	var clutter int
	for _, it := range items {
		if it.Kind == models.KindClutter {
			clutter++
		}
	}
	assert.Positive(t, clutter, "clutter percent > 0 should yield clutter items")

	opts := planOpts()
	opts.ClutterPercent = 0
	for _, it := range generator.New(opts).Plan() {
		assert.Equal(t, models.KindFile, it.Kind)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		`quar"terly:report`: "quar-terly-report",
		`a/b\c`:             "a-b-c",
		"...hidden":         "hidden",
		"":                  "untitled",
		"---":               "untitled",
		"normal_name":       "normal_name",
	}
	for in, want := range cases {
		assert.Equal(t, want, generator.SanitizeFilename(in), "input %q", in)
	}
}

func TestTotalSizeKB(t *testing.T) {
	items := []models.WorkItem{{SizeKB: 10}, {SizeKB: 5}, {SizeKB: 0}}
	assert.Equal(t, int64(15), generator.TotalSizeKB(items))
}

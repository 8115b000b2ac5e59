package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/view"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Dataset)
	assert.Equal(t, 10, cfg.Histogram.Bins)
	assert.Equal(t, view.DefaultReference, cfg.Reference)
	assert.Equal(t, Scatter{X: "protein", Y: "carbohydrates"}, cfg.Scatter)

	deps, err := cfg.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, dispatch.DefaultDependencies(), deps)

	opts, err := cfg.ViewOptions()
	require.NoError(t, err)
	assert.Equal(t, dispatch.DefaultViewOptions(), opts)
}

func TestLoadBytes_Overrides(t *testing.T) {
	src := []byte(`
dataset: "menu.csv"
histogram: bins: 5
reference: protein: 60
scatter: {x: "total_fat", y: "protein", size: "calories"}
outputs: scatter: ["restaurants", "search_text"]
`)
	cfg, err := LoadBytes("dash.cue", src)
	require.NoError(t, err)

	assert.Equal(t, "menu.csv", cfg.Dataset)
	assert.Equal(t, 5, cfg.Histogram.Bins)
	assert.Equal(t, 60.0, cfg.Reference.Protein)
	assert.Equal(t, 300.0, cfg.Reference.Carbohydrates)

	opts, err := cfg.ViewOptions()
	require.NoError(t, err)
	assert.Equal(t, view.ScatterOptions{X: menu.AttrTotalFat, Y: menu.AttrProtein, Size: menu.AttrCalories}, opts.Scatter)

	deps, err := cfg.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, []dispatch.InputID{dispatch.InputRestaurants, dispatch.InputSearch}, deps[dispatch.OutputScatter])
	assert.Equal(t, []dispatch.InputID{dispatch.InputRestaurants}, deps[dispatch.OutputHistogram])

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Len(t, bindings, 4)
}

func TestLoadBytes_Rejects(t *testing.T) {
	tests := map[string]string{
		"zero bins":      `histogram: bins: 0`,
		"unknown attr":   `scatter: x: "sodium"`,
		"unknown input":  `outputs: histogram: ["sodium_range"]`,
		"unknown output": `outputs: pie: ["restaurants"]`,
		"empty deps":     `outputs: histogram: []`,
		"negative ref":   `reference: total_fat: -1`,
		"syntax":         `histogram: {`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBytes("bad.cue", []byte(src))
			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "bad.cue", ce.File)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.cue")
	require.NoError(t, os.WriteFile(path, []byte(`histogram: bins: 3`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Histogram.Bins)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Histogram.Bins)
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/dashboard_basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "dashboard_basic", scenario.Name)
	assert.Equal(t, []string{"c1", "c2"}, scenario.CycleIDs)
	require.Len(t, scenario.Dataset, 3)
	assert.Equal(t, "Burger", scenario.Dataset[0].ItemName)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, []float64{0, 10}, scenario.Steps[1].Input.ProteinRange)
	require.NotNil(t, scenario.Steps[1].Expect)
	assert.Equal(t, []string{"protein_range"}, scenario.Steps[1].Expect.Changed)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: typo
description: "assertion instead of assertions"
dataset:
  - {restaurant: A, item_name: Burger, protein: 1, carbohydrates: 1, total_fat: 1, calories: 1}
steps:
  - input: {restaurants: [A]}
assertion: []
`), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	const row = "dataset:\n  - {restaurant: A, item_name: X, protein: 1, carbohydrates: 1, total_fat: 1, calories: 1}\n"
	const step = "steps:\n  - input: {restaurants: [A]}\n"

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\n" + row + step,
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\n" + row + step,
			wantErr: "description is required",
		},
		{
			name:    "no dataset",
			yaml:    "name: n\ndescription: d\n" + step,
			wantErr: "exactly one of dataset and csv",
		},
		{
			name:    "both dataset and csv",
			yaml:    "name: n\ndescription: d\ncsv: \"a,b\"\n" + row + step,
			wantErr: "exactly one of dataset and csv",
		},
		{
			name:    "no steps",
			yaml:    "name: n\ndescription: d\n" + row,
			wantErr: "steps list is required",
		},
		{
			name:    "unknown status",
			yaml:    "name: n\ndescription: d\n" + row + "steps:\n  - input: {}\n    expect: {status: done}\n",
			wantErr: `unknown status "done"`,
		},
		{
			name:    "rejected with status",
			yaml:    "name: n\ndescription: d\n" + row + "steps:\n  - input: {}\n    expect: {rejected: true, status: empty}\n",
			wantErr: "rejected step cannot expect",
		},
		{
			name:    "unknown changed input",
			yaml:    "name: n\ndescription: d\n" + row + "steps:\n  - input: {}\n    expect: {changed: [sugar]}\n",
			wantErr: "expect.changed",
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: n\ndescription: d\n" + row + step + "assertions:\n  - {type: magic, output: scatter}\n",
			wantErr: `unknown assertion type "magic"`,
		},
		{
			name:    "output_state without state",
			yaml:    "name: n\ndescription: d\n" + row + step + "assertions:\n  - {type: output_state, output: scatter}\n",
			wantErr: "state is required",
		},
		{
			name:    "recompute_count without output",
			yaml:    "name: n\ndescription: d\n" + row + step + "assertions:\n  - {type: recompute_count, count: 1}\n",
			wantErr: "output is required",
		},
		{
			name:    "slice_value without value",
			yaml:    "name: n\ndescription: d\n" + row + step + "assertions:\n  - {type: slice_value, label: Protein}\n",
			wantErr: "label and value are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_DefaultAssertionOutput(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: n
description: d
dataset:
  - {restaurant: A, item_name: X, protein: 1, carbohydrates: 1, total_fat: 1, calories: 1}
steps:
  - input: {restaurants: [A]}
assertions:
  - {type: table_titles, titles: []}
  - {type: histogram_counts, series: A, counts: [1]}
`))
	require.NoError(t, err)
	assert.Equal(t, "menu-items", scenario.Assertions[0].Output)
	assert.Equal(t, "histogram", scenario.Assertions[1].Output)
}

package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/view"
)

func fixtureResult() *Result {
	r := NewResult()
	r.Cycles = []CycleTrace{
		{Step: 1, Recomputed: []string{"menu-items", "histogram"}},
		{Step: 2, Recomputed: []string{"menu-items"}},
	}
	r.Slots = []dispatch.Slot{
		{
			Output: dispatch.OutputMenuItems,
			State:  dispatch.OutputRendered,
			Artifact: view.Artifact{
				Kind:  view.KindTables,
				State: view.StateRendered,
				Tables: []view.Table{
					{Title: "A", Rows: [][]string{{"Salad", "5", "10", "2", "120"}, {"Burger", "20", "40", "15", "500"}}},
				},
			},
		},
		{
			Output: dispatch.OutputComposition,
			State:  dispatch.OutputRendered,
			Artifact: view.Artifact{
				Kind:  view.KindPie,
				State: view.StateRendered,
				Chart: &view.Chart{Slices: []view.Slice{{Label: "Protein", Value: 12.5}}},
			},
		},
		{
			Output: dispatch.OutputHistogram,
			State:  dispatch.OutputRendered,
			Artifact: view.Artifact{
				Kind:  view.KindHistogram,
				State: view.StateRendered,
				Chart: &view.Chart{Series: []view.Series{{Name: "A", Bins: []view.Bin{{Count: 1}, {Count: 1}}}}},
			},
		},
		{Output: dispatch.OutputScatter, State: dispatch.OutputIdle},
	}
	return r
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestEvaluateAssertions_Pass(t *testing.T) {
	assertions := []Assertion{
		{Type: AssertOutputState, Output: "scatter", State: "idle"},
		{Type: AssertArtifactState, Output: "menu-items", State: "rendered"},
		{Type: AssertTableTitles, Output: "menu-items", Titles: []string{"A"}},
		{Type: AssertTableRows, Output: "menu-items", Table: "A", Items: []string{"Salad", "Burger"}},
		{Type: AssertSliceValue, Output: "composition", Label: "Protein", Value: floatPtr(12.5)},
		{Type: AssertHistogramCounts, Output: "histogram", Series: "A", Counts: []int{1, 1}},
		{Type: AssertScatterPoints, Output: "scatter", Series: "A", Count: intPtr(0)},
		{Type: AssertRecomputeCount, Output: "menu-items", Count: intPtr(2)},
		{Type: AssertRecomputeCount, Output: "histogram", Count: intPtr(1)},
	}

	assert.Empty(t, EvaluateAssertions(fixtureResult(), assertions))
}

func TestEvaluateAssertions_Fail(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{
			name:      "unknown output",
			assertion: Assertion{Type: AssertOutputState, Output: "gauge", State: "idle"},
			want:      `unknown output "gauge"`,
		},
		{
			name:      "wrong slot state",
			assertion: Assertion{Type: AssertOutputState, Output: "scatter", State: "rendered"},
			want:      "Actual: idle",
		},
		{
			name:      "wrong message",
			assertion: Assertion{Type: AssertArtifactState, Output: "menu-items", State: "rendered", Message: "hello"},
			want:      `message "hello"`,
		},
		{
			name:      "row order",
			assertion: Assertion{Type: AssertTableRows, Output: "menu-items", Table: "A", Items: []string{"Burger", "Salad"}},
			want:      "[Salad Burger]",
		},
		{
			name:      "missing table",
			assertion: Assertion{Type: AssertTableRows, Output: "menu-items", Table: "B", Items: []string{}},
			want:      "no such table",
		},
		{
			name:      "slice value",
			assertion: Assertion{Type: AssertSliceValue, Output: "composition", Label: "Protein", Value: floatPtr(12)},
			want:      "Protein = 12.5",
		},
		{
			name:      "missing slice",
			assertion: Assertion{Type: AssertSliceValue, Output: "composition", Label: "Fiber", Value: floatPtr(1)},
			want:      "no such slice",
		},
		{
			name:      "histogram counts",
			assertion: Assertion{Type: AssertHistogramCounts, Output: "histogram", Series: "A", Counts: []int{2, 0}},
			want:      "Actual: [1 1]",
		},
		{
			name:      "recompute count",
			assertion: Assertion{Type: AssertRecomputeCount, Output: "histogram", Count: intPtr(2)},
			want:      "1 recomputes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(fixtureResult(), []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestSnapshot_IdleSlotHasNoArtifact(t *testing.T) {
	r := NewResult()
	r.Slots = []dispatch.Slot{{Output: dispatch.OutputScatter, State: dispatch.OutputIdle}}

	assert.Equal(t, "scenario: idle\nscatter: idle seq=0\n", string(Snapshot("idle", r)))
}

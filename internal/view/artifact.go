package view

import (
	"github.com/roach88/nutridash/internal/filter"
)

// State is the rendering state carried by an Artifact.
type State string

const (
	StateIncomplete State = "incomplete"
	StateEmpty      State = "empty"
	StateRendered   State = "rendered"
	StateError      State = "error"
)

// Kind identifies the artifact payload.
type Kind string

const (
	KindTables    Kind = "tables"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindPie       Kind = "pie"
)

// Placeholder messages shown instead of data.
const (
	MessageIncomplete = "Please select at least one restaurant and one nutrient/caloric range."
	MessageEmpty      = "No menu items found for the selected criteria."
	MessageNoData     = "No data for the selected criteria; averages shown as zero."
)

// Artifact is one render-ready output value.
type Artifact struct {
	Kind    Kind    `json:"kind"`
	State   State   `json:"state"`
	Message string  `json:"message,omitempty"`
	Tables  []Table `json:"tables,omitempty"`
	Chart   *Chart  `json:"chart,omitempty"`
}

// Column describes one table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text" | "number"
	Align string `json:"align"` // "left" | "right"
}

// Table is a titled grid of formatted cells.
type Table struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Chart is a chart specification.
type Chart struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	XAxis  string   `json:"x_axis,omitempty"`
	YAxis  string   `json:"y_axis,omitempty"`
	Series []Series `json:"series"`
	Slices []Slice  `json:"slices,omitempty"`
	Hole   float64  `json:"hole,omitempty"`
}

// Series is one colored group of points or histogram bins.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points,omitempty"`
	Bins   []Bin   `json:"bins,omitempty"`
}

// Point is one scatter marker.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
	Label string  `json:"label"`
}

// Bin is one histogram bucket. Low is inclusive; High is exclusive except
// for the last bin.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Slice is one labeled pie wedge.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Error returns the error artifact for kind.
func Error(kind Kind, err error) Artifact {
	return Artifact{Kind: kind, State: StateError, Message: err.Error()}
}

// Points counts scatter points across all series.
func (c *Chart) Points() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}

// stateFor maps a filter status onto an artifact state.
func stateFor(s filter.Status) State {
	switch s {
	case filter.StatusIncomplete:
		return StateIncomplete
	case filter.StatusEmpty:
		return StateEmpty
	}
	return StateRendered
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func colorAt(i int) string {
	return defaultColors[i%len(defaultColors)]
}

package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/nutridash/internal/view"
)

// sliceTolerance absorbs float error in computed averages.
const sliceTolerance = 1e-9

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Output   string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s on %s\n", e.Type, e.Output)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	if a.Type == AssertRecomputeCount {
		return assertRecomputeCount(result, a)
	}

	slot, ok := result.slot(a.Output)
	if !ok {
		return fmt.Errorf("unknown output %q", a.Output)
	}
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Output: a.Output, Expected: expected, Actual: actual}
	}
	art := slot.Artifact

	switch a.Type {
	case AssertOutputState:
		if string(slot.State) != a.State {
			return fail(a.State, string(slot.State))
		}

	case AssertArtifactState:
		if string(art.State) != a.State {
			return fail("state "+a.State, "state "+string(art.State))
		}
		if a.Message != "" && art.Message != a.Message {
			return fail(fmt.Sprintf("message %q", a.Message), fmt.Sprintf("message %q", art.Message))
		}

	case AssertTableTitles:
		titles := make([]string, 0, len(art.Tables))
		for _, t := range art.Tables {
			titles = append(titles, t.Title)
		}
		if !equalStrings(titles, a.Titles) {
			return fail(fmt.Sprintf("%v", a.Titles), fmt.Sprintf("%v", titles))
		}

	case AssertTableRows:
		table, ok := findTable(art, a.Table)
		if !ok {
			return fail("table "+a.Table, "no such table")
		}
		names := make([]string, 0, len(table.Rows))
		for _, row := range table.Rows {
			names = append(names, row[0])
		}
		if !equalStrings(names, a.Items) {
			return fail(fmt.Sprintf("%v", a.Items), fmt.Sprintf("%v", names))
		}

	case AssertSliceValue:
		if art.Chart == nil {
			return fail("a chart", "no chart")
		}
		for _, s := range art.Chart.Slices {
			if s.Label != a.Label {
				continue
			}
			if math.Abs(s.Value-*a.Value) > sliceTolerance {
				return fail(fmt.Sprintf("%s = %v", a.Label, *a.Value), fmt.Sprintf("%s = %v", a.Label, s.Value))
			}
			return nil
		}
		return fail("slice "+a.Label, "no such slice")

	case AssertHistogramCounts:
		series, ok := findSeries(art, a.Series)
		if !ok {
			return fail("series "+a.Series, "no such series")
		}
		counts := make([]int, len(series.Bins))
		for i, b := range series.Bins {
			counts[i] = b.Count
		}
		if fmt.Sprint(counts) != fmt.Sprint(a.Counts) {
			return fail(fmt.Sprint(a.Counts), fmt.Sprint(counts))
		}

	case AssertScatterPoints:
		series, ok := findSeries(art, a.Series)
		n := 0
		if ok {
			n = len(series.Points)
		}
		if n != *a.Count {
			return fail(fmt.Sprintf("%d points", *a.Count), fmt.Sprintf("%d points", n))
		}
	}
	return nil
}

func assertRecomputeCount(result *Result, a Assertion) error {
	n := 0
	for _, c := range result.Cycles {
		for _, o := range c.Recomputed {
			if o == a.Output {
				n++
			}
		}
	}
	if n != *a.Count {
		return &AssertionError{
			Type:     a.Type,
			Output:   a.Output,
			Expected: fmt.Sprintf("%d recomputes", *a.Count),
			Actual:   fmt.Sprintf("%d recomputes", n),
		}
	}
	return nil
}

func findTable(a view.Artifact, title string) (view.Table, bool) {
	for _, t := range a.Tables {
		if t.Title == title {
			return t, true
		}
	}
	return view.Table{}, false
}

func findSeries(a view.Artifact, name string) (view.Series, bool) {
	if a.Chart == nil {
		return view.Series{}, false
	}
	for _, s := range a.Chart.Series {
		if s.Name == name {
			return s, true
		}
	}
	return view.Series{}, false
}

package harness

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/view"
)

// Snapshot renders a result as deterministic text for golden comparison.
// Only stable facts appear: cycle IDs come from the scenario and no
// timestamps are recorded.
func Snapshot(name string, r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)

	for _, c := range r.Cycles {
		if c.Rejected != "" {
			fmt.Fprintf(&b, "step %d rejected: %s\n", c.Step, c.Rejected)
			continue
		}
		fmt.Fprintf(&b, "step %d cycle=%s seq=%d status=%s\n", c.Step, c.ID, c.Seq, orDash(c.Status))
		fmt.Fprintf(&b, "  changed: %s\n", joinOrDash(c.Changed))
		fmt.Fprintf(&b, "  recomputed: %s\n", joinOrDash(c.Recomputed))
		for _, f := range c.Faults {
			fmt.Fprintf(&b, "  fault: %s\n", f)
		}
	}

	for _, s := range r.Slots {
		fmt.Fprintf(&b, "%s: %s seq=%d\n", s.Output, s.State, s.Seq)
		if s.State == dispatch.OutputIdle {
			continue
		}
		writeArtifact(&b, s.Artifact)
	}
	return []byte(b.String())
}

func writeArtifact(b *strings.Builder, a view.Artifact) {
	fmt.Fprintf(b, "  artifact: %s\n", a.State)
	if a.Message != "" {
		fmt.Fprintf(b, "  message: %s\n", a.Message)
	}
	for _, t := range a.Tables {
		names := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			names = append(names, row[0])
		}
		fmt.Fprintf(b, "  table %s: %s\n", t.Title, strings.Join(names, ", "))
	}
	if a.Chart == nil {
		return
	}
	for _, s := range a.Chart.Series {
		switch a.Kind {
		case view.KindHistogram:
			counts := make([]int, len(s.Bins))
			for i, bin := range s.Bins {
				counts[i] = bin.Count
			}
			fmt.Fprintf(b, "  series %s: %v\n", s.Name, counts)
		default:
			fmt.Fprintf(b, "  series %s: %d points\n", s.Name, len(s.Points))
		}
	}
	for _, sl := range a.Chart.Slices {
		fmt.Fprintf(b, "  slice %s = %s\n", sl.Label, strconv.FormatFloat(sl.Value, 'f', -1, 64))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(xs []string) string {
	if len(xs) == 0 {
		return "-"
	}
	return strings.Join(xs, ", ")
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}

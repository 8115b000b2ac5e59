package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/view"
)

// cycleReport is the printable outcome of one dispatch.
type cycleReport struct {
	Seq        int64               `json:"seq,omitempty"`
	ID         string              `json:"id,omitempty"`
	Status     string              `json:"status,omitempty"`
	Rejected   string              `json:"rejected,omitempty"`
	Changed    []dispatch.InputID  `json:"changed"`
	Recomputed []dispatch.OutputID `json:"recomputed"`
	Artifacts  []outputArtifact    `json:"artifacts"`
	Faults     []string            `json:"faults,omitempty"`
}

type outputArtifact struct {
	Output   dispatch.OutputID `json:"output"`
	Artifact view.Artifact     `json:"artifact"`
}

func newCycleReport(c *dispatch.Cycle, err error) cycleReport {
	if err != nil {
		return cycleReport{
			Rejected:   err.Error(),
			Changed:    []dispatch.InputID{},
			Recomputed: []dispatch.OutputID{},
			Artifacts:  []outputArtifact{},
		}
	}

	r := cycleReport{
		Seq:        c.Seq,
		ID:         c.ID,
		Changed:    append([]dispatch.InputID{}, c.Changed...),
		Recomputed: append([]dispatch.OutputID{}, c.Recomputed...),
		Artifacts:  make([]outputArtifact, 0, len(c.Recomputed)),
	}
	if c.Status != 0 {
		r.Status = c.Status.String()
	}
	for _, out := range c.Recomputed {
		r.Artifacts = append(r.Artifacts, outputArtifact{Output: out, Artifact: c.Artifacts[out]})
	}
	for _, f := range c.Faults {
		r.Faults = append(r.Faults, f.Error())
	}
	return r
}

func (r cycleReport) writeText(w io.Writer) error {
	if r.Rejected != "" {
		_, err := fmt.Fprintf(w, "rejected: %s\n", r.Rejected)
		return err
	}

	status := r.Status
	if status == "" {
		status = "-"
	}
	fmt.Fprintf(w, "cycle %d (%s) status=%s\n", r.Seq, r.ID, status)
	fmt.Fprintf(w, "  changed: %s\n", joinIDs(r.Changed))
	fmt.Fprintf(w, "  recomputed: %s\n", joinIDs(r.Recomputed))
	for _, f := range r.Faults {
		fmt.Fprintf(w, "  fault: %s\n", f)
	}
	for _, oa := range r.Artifacts {
		if err := writeArtifact(w, oa.Output, oa.Artifact); err != nil {
			return err
		}
	}
	return nil
}

func joinIDs[T ~string](ids []T) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

// writeArtifact prints one artifact in human-readable form.
func writeArtifact(w io.Writer, out dispatch.OutputID, a view.Artifact) error {
	fmt.Fprintf(w, "[%s] %s\n", out, a.State)
	if a.Message != "" {
		fmt.Fprintf(w, "  %s\n", a.Message)
	}

	for _, t := range a.Tables {
		fmt.Fprintf(w, "  %s\n", t.Title)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		labels := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			labels[i] = c.Label
		}
		fmt.Fprintf(tw, "    %s\n", strings.Join(labels, "\t"))
		for _, row := range t.Rows {
			fmt.Fprintf(tw, "    %s\n", strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	c := a.Chart
	if c == nil || a.State == view.StateIncomplete {
		return nil
	}
	fmt.Fprintf(w, "  %s\n", c.Title)
	for _, s := range c.Series {
		switch a.Kind {
		case view.KindHistogram:
			counts := make([]string, len(s.Bins))
			for i, b := range s.Bins {
				counts[i] = strconv.Itoa(b.Count)
			}
			fmt.Fprintf(w, "    %s: %s\n", s.Name, strings.Join(counts, " "))
		default:
			fmt.Fprintf(w, "    %s: %d points\n", s.Name, len(s.Points))
		}
	}
	for _, sl := range c.Slices {
		fmt.Fprintf(w, "    %s: %s\n", sl.Label, strconv.FormatFloat(sl.Value, 'f', 2, 64))
	}
	return nil
}

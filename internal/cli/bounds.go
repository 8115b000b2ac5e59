package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/nutridash/internal/menu"
)

// AttributeBounds is one attribute's observed range and slider marks.
type AttributeBounds struct {
	Attribute menu.Attribute `json:"attribute"`
	Label     string         `json:"label"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Marks     []int          `json:"marks"`
}

// BoundsResult is the output of the bounds command.
type BoundsResult struct {
	Items       int               `json:"items"`
	Restaurants []string          `json:"restaurants"`
	Attributes  []AttributeBounds `json:"attributes"`
}

// NewBoundsCommand creates the bounds command.
func NewBoundsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounds [dataset]",
		Short: "Show restaurants, attribute ranges and slider marks",
		Long: `Load a dataset and print what the dashboard's controls are built from:
the distinct restaurants in load order, and for every numeric attribute its
observed minimum, maximum and slider tick marks.

Examples:
  nutridash bounds ./menu.csv
  nutridash bounds ./menu.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBounds(rootOpts, cmd, firstArg(args))
		},
	}
	return cmd
}

func runBounds(opts *RootOptions, cmd *cobra.Command, path string) error {
	f := newFormatter(opts, cmd)
	s, err := openSession(cmd.Context(), opts, f, path)
	if err != nil {
		return err
	}

	result, err := computeBounds(s.Dataset)
	if err != nil {
		return f.Fail(ExitFailure, "failed to compute bounds", err)
	}
	return f.Success(result)
}

func computeBounds(ds *menu.Dataset) (BoundsResult, error) {
	result := BoundsResult{
		Items:       ds.Len(),
		Restaurants: ds.Restaurants(),
		Attributes:  make([]AttributeBounds, 0, len(menu.Attributes)),
	}
	for _, a := range menu.Attributes {
		b, err := ds.Bounds(a)
		if err != nil {
			return BoundsResult{}, err
		}
		marks, err := ds.Marks(a, menu.DefaultMarkStep[a])
		if err != nil {
			return BoundsResult{}, err
		}
		result.Attributes = append(result.Attributes, AttributeBounds{
			Attribute: a,
			Label:     a.Label(),
			Min:       b.Min,
			Max:       b.Max,
			Marks:     marks,
		})
	}
	return result, nil
}

func (r BoundsResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "Items: %d\n", r.Items)
	fmt.Fprintf(w, "Restaurants: %s\n", strings.Join(r.Restaurants, ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Attribute\tMin\tMax\tMarks")
	for _, a := range r.Attributes {
		marks := make([]string, len(a.Marks))
		for i, m := range a.Marks {
			marks[i] = strconv.Itoa(m)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			a.Label,
			strconv.FormatFloat(a.Min, 'f', -1, 64),
			strconv.FormatFloat(a.Max, 'f', -1, 64),
			strings.Join(marks, " "),
		)
	}
	return tw.Flush()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

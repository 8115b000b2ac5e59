package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/filter"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Restaurants []string
	Protein     string
	Carbs       string
	Fat         string
	Calories    string
	Search      string

	// IDGenerator overrides the cycle ID generator (for testing).
	IDGenerator dispatch.IDGenerator
}

// RenderResult is the output of the render command.
type RenderResult struct {
	Cycle cycleReport `json:"cycle"`
}

func (r RenderResult) writeText(w io.Writer) error {
	return r.Cycle.writeText(w)
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Run one filter cycle and print every output",
		Long: `Build one input snapshot from flags, dispatch it, and print the artifact
of every output: restaurant tables, scatter, nutrient composition and the
calorie histogram.

Ranges default to the dataset's full bounds; pass "lo,hi" to narrow one.

Examples:
  nutridash render ./menu.csv --restaurant "Burger King" --protein 10,40
  nutridash render ./menu.db -r A -r B --search chicken --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd, firstArg(args))
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Restaurants, "restaurant", "r", nil, "restaurant to include (repeatable)")
	cmd.Flags().StringVar(&opts.Protein, "protein", "", "protein range lo,hi (grams)")
	cmd.Flags().StringVar(&opts.Carbs, "carbs", "", "carbohydrates range lo,hi (grams)")
	cmd.Flags().StringVar(&opts.Fat, "fat", "", "total fat range lo,hi (grams)")
	cmd.Flags().StringVar(&opts.Calories, "calories", "", "calories range lo,hi")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive item name search")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command, path string) error {
	f := newFormatter(opts.RootOptions, cmd)
	s, err := openSession(cmd.Context(), opts.RootOptions, f, path)
	if err != nil {
		return err
	}

	in := filter.DefaultInput(s.Dataset)
	in.Restaurants = opts.Restaurants
	ranges := []struct {
		flag string
		raw  string
		dst  *[]float64
	}{
		{"protein", opts.Protein, &in.ProteinRange},
		{"carbs", opts.Carbs, &in.CarbsRange},
		{"fat", opts.Fat, &in.FatRange},
		{"calories", opts.Calories, &in.CaloriesRange},
	}
	for _, r := range ranges {
		if r.raw == "" {
			continue
		}
		v, err := parseRangeFlag(r.raw)
		if err != nil {
			return f.Fail(ExitCommandError, "invalid --"+r.flag, err)
		}
		*r.dst = v
	}
	if cmd.Flags().Changed("search") {
		search := opts.Search
		in.SearchText = &search
	}

	ids := opts.IDGenerator
	if ids == nil {
		ids = dispatch.UUIDv7Generator{}
	}
	d, err := dispatch.New(s.Dataset, s.Bindings, dispatch.WithIDGenerator(ids))
	if err != nil {
		return f.Fail(ExitCommandError, "invalid bindings", err)
	}

	cycle, err := d.Dispatch(cmd.Context(), in)
	if err != nil {
		return f.Fail(ExitCommandError, "input rejected", err)
	}

	if err := f.Success(RenderResult{Cycle: newCycleReport(cycle, nil)}); err != nil {
		return err
	}
	if len(cycle.Faults) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d output(s) faulted", len(cycle.Faults)))
	}
	return nil
}

// parseRangeFlag parses "lo,hi". Bounds checks beyond arity and number
// syntax are left to filter.NewCriteria.
func parseRangeFlag(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, &filter.CriteriaError{Input: "range", Message: fmt.Sprintf("want lo,hi, got %q", raw)}
	}
	out := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, &filter.CriteriaError{Input: "range", Message: fmt.Sprintf("%q is not a number", p)}
		}
		out[i] = v
	}
	return out, nil
}

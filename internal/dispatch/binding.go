package dispatch

import (
	"fmt"

	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/view"
)

// InputID names one dashboard input.
type InputID string

const (
	InputRestaurants InputID = "restaurants"
	InputProtein     InputID = "protein_range"
	InputCarbs       InputID = "carbs_range"
	InputFat         InputID = "fat_range"
	InputCalories    InputID = "calories_range"
	InputSearch      InputID = "search_text"
)

// AllInputs lists every input in declaration order.
var AllInputs = []InputID{InputRestaurants, InputProtein, InputCarbs, InputFat, InputCalories, InputSearch}

// rangeInputs maps the range inputs to their attribute.
var rangeInputs = map[InputID]menu.Attribute{
	InputProtein:  menu.AttrProtein,
	InputCarbs:    menu.AttrCarbohydrates,
	InputFat:      menu.AttrTotalFat,
	InputCalories: menu.AttrCalories,
}

// ParseInputID validates an input name.
func ParseInputID(name string) (InputID, error) {
	for _, id := range AllInputs {
		if string(id) == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown input %q", name)
}

// OutputID names one declared output slot.
type OutputID string

const (
	OutputMenuItems   OutputID = "menu-items"
	OutputScatter     OutputID = "scatter"
	OutputComposition OutputID = "composition"
	OutputHistogram   OutputID = "histogram"
)

// AllOutputs lists the standard outputs in declaration order.
var AllOutputs = []OutputID{OutputMenuItems, OutputScatter, OutputComposition, OutputHistogram}

// DefaultDependencies is the standard dependency table: the histogram reads
// only the restaurant selection, everything else reads every input.
func DefaultDependencies() map[OutputID][]InputID {
	return map[OutputID][]InputID{
		OutputMenuItems:   append([]InputID(nil), AllInputs...),
		OutputScatter:     append([]InputID(nil), AllInputs...),
		OutputComposition: append([]InputID(nil), AllInputs...),
		OutputHistogram:   {InputRestaurants},
	}
}

// Frame is the read-only context handed to generators in one cycle.
// The filtered result is computed at most once per frame.
type Frame struct {
	Dataset  *menu.Dataset
	Criteria filter.Criteria

	result   filter.Result
	computed bool
}

// Result returns the cycle's filtered view, computing it on first use.
func (f *Frame) Result() filter.Result {
	if !f.computed {
		f.result = filter.Apply(f.Dataset, f.Criteria)
		f.computed = true
	}
	return f.result
}

// Generator produces one output's artifact for a frame.
type Generator func(f *Frame) (view.Artifact, error)

// Binding ties an output to its declared inputs and generator.
type Binding struct {
	Output   OutputID
	Kind     view.Kind
	Inputs   []InputID
	Generate Generator
}

// dependsOn reports whether any of changed is a declared input.
func (b Binding) dependsOn(changed []InputID) bool {
	for _, c := range changed {
		for _, in := range b.Inputs {
			if in == c {
				return true
			}
		}
	}
	return false
}

// ViewOptions parameterizes the standard generators.
type ViewOptions struct {
	Scatter   view.ScatterOptions
	Bins      int
	Reference view.Reference
}

// DefaultViewOptions mirrors the dashboard defaults.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Scatter:   view.DefaultScatter,
		Bins:      view.DefaultBins,
		Reference: view.DefaultReference,
	}
}

// StandardBindings builds the four standard outputs. deps overrides the
// dependency table per output; nil uses DefaultDependencies.
func StandardBindings(opts ViewOptions, deps map[OutputID][]InputID) []Binding {
	if deps == nil {
		deps = DefaultDependencies()
	}
	defaults := DefaultDependencies()
	inputsFor := func(id OutputID) []InputID {
		if in, ok := deps[id]; ok {
			return in
		}
		return defaults[id]
	}

	return []Binding{
		{
			Output: OutputMenuItems,
			Kind:   view.KindTables,
			Inputs: inputsFor(OutputMenuItems),
			Generate: func(f *Frame) (view.Artifact, error) {
				return view.TableView(f.Result()), nil
			},
		},
		{
			Output: OutputScatter,
			Kind:   view.KindScatter,
			Inputs: inputsFor(OutputScatter),
			Generate: func(f *Frame) (view.Artifact, error) {
				return view.ScatterView(f.Result(), opts.Scatter), nil
			},
		},
		{
			Output: OutputComposition,
			Kind:   view.KindPie,
			Inputs: inputsFor(OutputComposition),
			Generate: func(f *Frame) (view.Artifact, error) {
				return view.CompositionView(f.Result(), opts.Reference), nil
			},
		},
		{
			Output: OutputHistogram,
			Kind:   view.KindHistogram,
			Inputs: inputsFor(OutputHistogram),
			Generate: func(f *Frame) (view.Artifact, error) {
				return view.HistogramView(f.Dataset, f.Criteria.Restaurants(), opts.Bins), nil
			},
		},
	}
}

// changedInputs diffs two criteria snapshots input by input.
// A nil prev means every input changed.
func changedInputs(prev *filter.Criteria, next filter.Criteria) []InputID {
	if prev == nil {
		return append([]InputID(nil), AllInputs...)
	}

	var changed []InputID
	if !equalStrings(prev.Restaurants(), next.Restaurants()) {
		changed = append(changed, InputRestaurants)
	}
	for _, id := range AllInputs {
		attr, ok := rangeInputs[id]
		if !ok {
			continue
		}
		pr, pok := prev.Range(attr)
		nr, nok := next.Range(attr)
		if pok != nok || pr != nr {
			changed = append(changed, id)
		}
	}
	ps, _ := prev.Search()
	ns, _ := next.Search()
	if ps != ns {
		changed = append(changed, InputSearch)
	}
	return changed
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

// Scenario is one dashboard session to replay.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// CycleIDs are handed out to cycles in order. Defaults to cycle-N.
	CycleIDs []string `yaml:"cycle_ids,omitempty"`

	// Config is optional CUE source unified with the default configuration.
	Config string `yaml:"config,omitempty"`

	// Dataset rows. Exactly one of Dataset and CSV must be set.
	Dataset []Row `yaml:"dataset,omitempty"`

	// CSV is inline CSV text including the header.
	CSV string `yaml:"csv,omitempty"`

	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Row is one dataset row.
type Row struct {
	Restaurant    string  `yaml:"restaurant"`
	ItemName      string  `yaml:"item_name"`
	Protein       float64 `yaml:"protein"`
	Carbohydrates float64 `yaml:"carbohydrates"`
	TotalFat      float64 `yaml:"total_fat"`
	Calories      float64 `yaml:"calories"`
}

// Step is one input snapshot delivered to the dispatcher.
type Step struct {
	// Defaults starts the snapshot from the dashboard's initial input.
	Defaults bool `yaml:"defaults,omitempty"`

	Input StepInput `yaml:"input"`

	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepInput mirrors filter.Input. Unset fields keep the base value.
type StepInput struct {
	Restaurants   []string  `yaml:"restaurants,omitempty"`
	ProteinRange  []float64 `yaml:"protein_range,omitempty"`
	CarbsRange    []float64 `yaml:"carbs_range,omitempty"`
	FatRange      []float64 `yaml:"fat_range,omitempty"`
	CaloriesRange []float64 `yaml:"calories_range,omitempty"`
	SearchText    *string   `yaml:"search_text,omitempty"`
}

// StepExpect checks the cycle produced by a step. Nil slices are not checked.
type StepExpect struct {
	// Rejected expects the snapshot to fail validation.
	Rejected bool `yaml:"rejected,omitempty"`

	// Status is the filter status: incomplete, empty or matched.
	Status string `yaml:"status,omitempty"`

	Changed    []string `yaml:"changed,omitempty"`
	Recomputed []string `yaml:"recomputed,omitempty"`
}

// Assertion validates the dispatcher state after all steps.
type Assertion struct {
	Type    string   `yaml:"type"`
	Output  string   `yaml:"output,omitempty"`
	State   string   `yaml:"state,omitempty"`
	Message string   `yaml:"message,omitempty"`
	Table   string   `yaml:"table,omitempty"`
	Items   []string `yaml:"items,omitempty"`
	Titles  []string `yaml:"titles,omitempty"`
	Label   string   `yaml:"label,omitempty"`
	Value   *float64 `yaml:"value,omitempty"`
	Series  string   `yaml:"series,omitempty"`
	Counts  []int    `yaml:"counts,omitempty"`
	Count   *int     `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputState     = "output_state"
	AssertArtifactState   = "artifact_state"
	AssertTableTitles     = "table_titles"
	AssertTableRows       = "table_rows"
	AssertSliceValue      = "slice_value"
	AssertHistogramCounts = "histogram_counts"
	AssertScatterPoints   = "scatter_points"
	AssertRecomputeCount  = "recompute_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// dataset builds the scenario's validated dataset.
func (s *Scenario) dataset() (*menu.Dataset, error) {
	if s.CSV != "" {
		return menu.ReadCSV(bytes.NewReader([]byte(s.CSV)))
	}
	items := make([]menu.MenuItem, len(s.Dataset))
	for i, r := range s.Dataset {
		items[i] = menu.MenuItem{
			Restaurant:    r.Restaurant,
			ItemName:      r.ItemName,
			Protein:       r.Protein,
			Carbohydrates: r.Carbohydrates,
			TotalFat:      r.TotalFat,
			Calories:      r.Calories,
		}
	}
	return menu.New(items)
}

// input resolves the step's snapshot against ds.
func (st Step) input(ds *menu.Dataset) filter.Input {
	var in filter.Input
	if st.Defaults {
		in = filter.DefaultInput(ds)
	}
	if st.Input.Restaurants != nil {
		in.Restaurants = st.Input.Restaurants
	}
	if st.Input.ProteinRange != nil {
		in.ProteinRange = st.Input.ProteinRange
	}
	if st.Input.CarbsRange != nil {
		in.CarbsRange = st.Input.CarbsRange
	}
	if st.Input.FatRange != nil {
		in.FatRange = st.Input.FatRange
	}
	if st.Input.CaloriesRange != nil {
		in.CaloriesRange = st.Input.CaloriesRange
	}
	if st.Input.SearchText != nil {
		in.SearchText = st.Input.SearchText
	}
	return in
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if (len(s.Dataset) == 0) == (s.CSV == "") {
		return fmt.Errorf("exactly one of dataset and csv is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, st := range s.Steps {
		if st.Expect == nil {
			continue
		}
		switch st.Expect.Status {
		case "", "incomplete", "empty", "matched":
		default:
			return fmt.Errorf("steps[%d].expect: unknown status %q", i, st.Expect.Status)
		}
		if st.Expect.Rejected && (st.Expect.Status != "" || st.Expect.Recomputed != nil) {
			return fmt.Errorf("steps[%d].expect: rejected step cannot expect a status or recomputed outputs", i)
		}
		for _, id := range st.Expect.Changed {
			if _, err := dispatch.ParseInputID(id); err != nil {
				return fmt.Errorf("steps[%d].expect.changed: %w", i, err)
			}
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Output == "" {
		a.Output = string(defaultOutput[a.Type])
	}
	if a.Output == "" {
		return fmt.Errorf("assertions[%d]: output is required for %s", index, a.Type)
	}

	switch a.Type {
	case AssertOutputState, AssertArtifactState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for %s", index, a.Type)
		}
	case AssertTableTitles:
		if a.Titles == nil {
			return fmt.Errorf("assertions[%d]: titles is required for table_titles", index)
		}
	case AssertTableRows:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for table_rows", index)
		}
	case AssertSliceValue:
		if a.Label == "" || a.Value == nil {
			return fmt.Errorf("assertions[%d]: label and value are required for slice_value", index)
		}
	case AssertHistogramCounts:
		if a.Series == "" || a.Counts == nil {
			return fmt.Errorf("assertions[%d]: series and counts are required for histogram_counts", index)
		}
	case AssertScatterPoints:
		if a.Series == "" || a.Count == nil {
			return fmt.Errorf("assertions[%d]: series and count are required for scatter_points", index)
		}
	case AssertRecomputeCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for recompute_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// defaultOutput is the output an assertion type targets when none is named.
var defaultOutput = map[string]dispatch.OutputID{
	AssertTableTitles:     dispatch.OutputMenuItems,
	AssertTableRows:       dispatch.OutputMenuItems,
	AssertSliceValue:      dispatch.OutputComposition,
	AssertHistogramCounts: dispatch.OutputHistogram,
	AssertScatterPoints:   dispatch.OutputScatter,
}

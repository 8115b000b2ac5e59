package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/nutridash/internal/menu"
)

// Range is a closed interval [Low, High] with Low <= High.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies in the interval, both ends inclusive.
func (r Range) Contains(v float64) bool {
	return r.Low <= v && v <= r.High
}

// Input is the raw payload of one input-change event. Range slices carry
// either zero values (absent) or exactly two values.
type Input struct {
	Restaurants   []string  `json:"restaurants"`
	ProteinRange  []float64 `json:"protein_range"`
	CarbsRange    []float64 `json:"carbs_range"`
	FatRange      []float64 `json:"fat_range"`
	CaloriesRange []float64 `json:"calories_range"`
	SearchText    *string   `json:"search_text,omitempty"`
}

// RangeFor returns the raw range slice for attr.
func (in Input) RangeFor(attr menu.Attribute) []float64 {
	switch attr {
	case menu.AttrProtein:
		return in.ProteinRange
	case menu.AttrCarbohydrates:
		return in.CarbsRange
	case menu.AttrTotalFat:
		return in.FatRange
	case menu.AttrCalories:
		return in.CaloriesRange
	}
	return nil
}

// DefaultInput is the dashboard's initial state: no restaurant selected,
// every slider spanning the full dataset bounds, no search text.
func DefaultInput(ds *menu.Dataset) Input {
	in := Input{Restaurants: []string{}}
	for _, a := range menu.Attributes {
		b, _ := ds.Bounds(a)
		r := []float64{b.Min, b.Max}
		switch a {
		case menu.AttrProtein:
			in.ProteinRange = r
		case menu.AttrCarbohydrates:
			in.CarbsRange = r
		case menu.AttrTotalFat:
			in.FatRange = r
		case menu.AttrCalories:
			in.CaloriesRange = r
		}
	}
	return in
}

// CriteriaError reports a malformed input value.
type CriteriaError struct {
	Input   string
	Message string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Input, e.Message)
}

// Criteria is an immutable, validated snapshot of all filter inputs.
type Criteria struct {
	restaurants []string
	members     map[string]struct{}
	ranges      map[menu.Attribute]Range
	search      string
}

// NewCriteria validates in against ds.
//
// Restaurant names are de-duplicated keeping first occurrence. Each range
// must have zero or two finite values with low <= high; bounds are clamped
// to the dataset's observed min/max. A range lying entirely outside the
// observed bounds is kept as given, so it stays well-formed and matches
// nothing. Search text is trimmed and dropped when empty.
func NewCriteria(ds *menu.Dataset, in Input) (Criteria, error) {
	c := Criteria{
		members: make(map[string]struct{}, len(in.Restaurants)),
		ranges:  make(map[menu.Attribute]Range, len(menu.Attributes)),
	}

	for _, name := range in.Restaurants {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := c.members[name]; dup {
			continue
		}
		c.members[name] = struct{}{}
		c.restaurants = append(c.restaurants, name)
	}

	for _, a := range menu.Attributes {
		raw := in.RangeFor(a)
		if len(raw) == 0 {
			continue
		}
		b, err := ds.Bounds(a)
		if err != nil {
			return Criteria{}, err
		}
		r, err := parseRange(string(a), raw, b)
		if err != nil {
			return Criteria{}, err
		}
		c.ranges[a] = r
	}

	if in.SearchText != nil {
		c.search = strings.TrimSpace(*in.SearchText)
	}

	return c, nil
}

func parseRange(name string, raw []float64, b menu.Bounds) (Range, error) {
	if len(raw) != 2 {
		return Range{}, &CriteriaError{Input: name, Message: fmt.Sprintf("range needs 2 values, got %d", len(raw))}
	}
	low, high := raw[0], raw[1]
	if math.IsNaN(low) || math.IsNaN(high) {
		return Range{}, &CriteriaError{Input: name, Message: "range bound is NaN"}
	}
	if low > high {
		return Range{}, &CriteriaError{Input: name, Message: fmt.Sprintf("low %v exceeds high %v", low, high)}
	}

	clamped := Range{Low: math.Max(low, b.Min), High: math.Min(high, b.Max)}
	if clamped.Low > clamped.High {
		return Range{Low: low, High: high}, nil
	}
	return clamped, nil
}

// Restaurants returns the selected restaurants in selection order.
func (c Criteria) Restaurants() []string {
	out := make([]string, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

// Range returns the range for attr and whether it was supplied.
func (c Criteria) Range(attr menu.Attribute) (Range, bool) {
	r, ok := c.ranges[attr]
	return r, ok
}

// Search returns the trimmed search text and whether it is set.
func (c Criteria) Search() (string, bool) {
	return c.search, c.search != ""
}

// Complete reports whether a restaurant and all four ranges are supplied.
func (c Criteria) Complete() bool {
	return len(c.restaurants) > 0 && len(c.ranges) == len(menu.Attributes)
}

package menu

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Bounds is the observed closed interval of one attribute.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Dataset is the Record Store: an immutable, validated collection of
// menu items with precomputed bounds.
//
// Thread-safety: a Dataset is never mutated after New returns, so it may be
// shared across goroutines without locking.
type Dataset struct {
	items        []MenuItem
	bounds       map[Attribute]Bounds
	restaurants  []string         // first-seen load order
	byRestaurant map[string][]int // indices into items, load order
}

// New validates items and builds a Dataset.
//
// Restaurant and item names are trimmed and NFC normalized so that visually
// identical names from different sources compare equal. The input slice is
// copied.
func New(items []MenuItem) (*Dataset, error) {
	if len(items) == 0 {
		return nil, &IngestError{Code: ErrCodeEmptyDataset, Message: "dataset has no rows"}
	}

	d := &Dataset{
		items:        make([]MenuItem, len(items)),
		bounds:       make(map[Attribute]Bounds, len(Attributes)),
		byRestaurant: make(map[string][]int),
	}

	for _, a := range Attributes {
		d.bounds[a] = Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	}

	for i, it := range items {
		row := i + 1
		it.Restaurant = normalizeName(it.Restaurant)
		it.ItemName = normalizeName(it.ItemName)

		if it.Restaurant == "" {
			return nil, &IngestError{Code: ErrCodeEmptyField, Row: row, Column: ColumnRestaurant, Message: "restaurant is empty"}
		}
		if it.ItemName == "" {
			return nil, &IngestError{Code: ErrCodeEmptyField, Row: row, Column: ColumnItemName, Message: "item name is empty"}
		}

		for _, a := range Attributes {
			v := it.Value(a)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &IngestError{Code: ErrCodeNotNumeric, Row: row, Column: string(a), Message: fmt.Sprintf("value %v is not a finite number", v)}
			}
			if v < 0 {
				return nil, &IngestError{Code: ErrCodeNegativeValue, Row: row, Column: string(a), Message: fmt.Sprintf("value %v is negative", v)}
			}
			b := d.bounds[a]
			b.Min = math.Min(b.Min, v)
			b.Max = math.Max(b.Max, v)
			d.bounds[a] = b
		}

		if _, seen := d.byRestaurant[it.Restaurant]; !seen {
			d.restaurants = append(d.restaurants, it.Restaurant)
		}
		d.byRestaurant[it.Restaurant] = append(d.byRestaurant[it.Restaurant], i)
		d.items[i] = it
	}

	return d, nil
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Len returns the number of items.
func (d *Dataset) Len() int {
	return len(d.items)
}

// Item returns the i-th item in load order.
func (d *Dataset) Item(i int) MenuItem {
	return d.items[i]
}

// Items returns a copy of all items in load order.
func (d *Dataset) Items() []MenuItem {
	out := make([]MenuItem, len(d.items))
	copy(out, d.items)
	return out
}

// Bounds returns the precomputed min/max of attr.
func (d *Dataset) Bounds(attr Attribute) (Bounds, error) {
	b, ok := d.bounds[attr]
	if !ok {
		return Bounds{}, &UnknownAttributeError{Name: string(attr)}
	}
	return b, nil
}

// Restaurants returns the distinct restaurant names in first-seen load order.
func (d *Dataset) Restaurants() []string {
	out := make([]string, len(d.restaurants))
	copy(out, d.restaurants)
	return out
}

// HasRestaurant reports whether name appears in the dataset.
func (d *Dataset) HasRestaurant(name string) bool {
	_, ok := d.byRestaurant[name]
	return ok
}

// ItemsFor returns every item of restaurant in load order, ignoring any
// nutrient filter. Unknown restaurants yield an empty slice.
func (d *Dataset) ItemsFor(restaurant string) []MenuItem {
	idx := d.byRestaurant[restaurant]
	out := make([]MenuItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.items[i])
	}
	return out
}

// Marks returns slider tick positions for attr: every step from the
// truncated minimum up to the maximum.
func (d *Dataset) Marks(attr Attribute, step int) ([]int, error) {
	b, err := d.Bounds(attr)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, fmt.Errorf("marks step must be positive, got %d", step)
	}
	var marks []int
	for v := int(b.Min); v <= int(b.Max); v += step {
		marks = append(marks, v)
	}
	return marks, nil
}

// DefaultMarkStep is the slider tick spacing for each attribute.
var DefaultMarkStep = map[Attribute]int{
	AttrProtein:       10,
	AttrCarbohydrates: 20,
	AttrTotalFat:      10,
	AttrCalories:      50,
}

package filter

import (
	"sort"

	"github.com/roach88/nutridash/internal/menu"
)

// Status classifies a filter result.
type Status int

const (
	// StatusIncomplete means the selection is missing a required input.
	StatusIncomplete Status = iota + 1
	// StatusEmpty means the selection is complete but nothing matched.
	StatusEmpty
	// StatusMatched means at least one item matched.
	StatusMatched
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusEmpty:
		return "empty"
	case StatusMatched:
		return "matched"
	}
	return "unknown"
}

// Group is the slice of a result belonging to one restaurant.
type Group struct {
	Restaurant string
	Items      []menu.MenuItem
}

// Result is the FilteredView produced by Apply.
type Result struct {
	Status Status

	// Items are the matches sorted by calories ascending, ties in load order.
	Items []menu.MenuItem

	// Groups partitions Items by restaurant in first-appearance order.
	Groups []Group
}

// Apply filters ds with c.
//
// When c is incomplete the result is StatusIncomplete with no items, and
// no predicate is evaluated. Otherwise the restaurant and range predicates
// are ANDed, the search predicate is ANDed on top, and the survivors are
// stably sorted by calories.
func Apply(ds *menu.Dataset, c Criteria) Result {
	if !c.Complete() {
		return Result{Status: StatusIncomplete}
	}

	match := All(c.Predicates()...)
	items := make([]menu.MenuItem, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		if item := ds.Item(i); match(item) {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return Result{Status: StatusEmpty, Items: items}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Calories < items[j].Calories
	})

	return Result{
		Status: StatusMatched,
		Items:  items,
		Groups: partition(items),
	}
}

// partition groups items by restaurant preserving first-appearance order.
func partition(items []menu.MenuItem) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, item := range items {
		i, ok := pos[item.Restaurant]
		if !ok {
			i = len(groups)
			pos[item.Restaurant] = i
			groups = append(groups, Group{Restaurant: item.Restaurant})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/nutridash/internal/menu"
)

// Predicate is a pure test over one item.
type Predicate func(menu.MenuItem) bool

// RestaurantPredicate passes items whose restaurant is in names.
// An empty name list passes nothing.
func RestaurantPredicate(names []string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(item menu.MenuItem) bool {
		_, ok := set[item.Restaurant]
		return ok
	}
}

// RangePredicate passes items whose attr value lies in r, inclusive.
func RangePredicate(attr menu.Attribute, r Range) Predicate {
	return func(item menu.MenuItem) bool {
		return r.Contains(item.Value(attr))
	}
}

// SearchPredicate matches text as a case-insensitive substring of the item
// name, never the restaurant. Empty text passes everything.
//
// The returned predicate holds a cases.Caser and must not be shared
// between goroutines.
func SearchPredicate(text string) Predicate {
	if text == "" {
		return func(menu.MenuItem) bool { return true }
	}
	folder := cases.Fold()
	needle := folder.String(text)
	return func(item menu.MenuItem) bool {
		return strings.Contains(folder.String(item.ItemName), needle)
	}
}

// All combines predicates with logical AND, short-circuiting in order.
func All(preds ...Predicate) Predicate {
	return func(item menu.MenuItem) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Predicates returns the five selection predicates of c followed by the
// search predicate. Only meaningful when c.Complete().
func (c Criteria) Predicates() []Predicate {
	preds := make([]Predicate, 0, len(menu.Attributes)+2)
	preds = append(preds, RestaurantPredicate(c.restaurants))
	for _, a := range menu.Attributes {
		if r, ok := c.ranges[a]; ok {
			preds = append(preds, RangePredicate(a, r))
		}
	}
	if text, ok := c.Search(); ok {
		preds = append(preds, SearchPredicate(text))
	}
	return preds
}

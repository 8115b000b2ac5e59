// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

// SampleItems returns the three-item menu used throughout the tests:
// two items at restaurant A and one at B.
func SampleItems() []menu.MenuItem {
	return []menu.MenuItem{
		{Restaurant: "A", ItemName: "Burger", Protein: 20, Carbohydrates: 40, TotalFat: 15, Calories: 500},
		{Restaurant: "A", ItemName: "Salad", Protein: 5, Carbohydrates: 10, TotalFat: 2, Calories: 120},
		{Restaurant: "B", ItemName: "Fries", Protein: 3, Carbohydrates: 50, TotalFat: 20, Calories: 400},
	}
}

// SampleDataset builds a Dataset from SampleItems.
func SampleDataset(tb testing.TB) *menu.Dataset {
	tb.Helper()
	return Dataset(tb, SampleItems()...)
}

// Dataset builds a Dataset from items, failing the test on error.
func Dataset(tb testing.TB, items ...menu.MenuItem) *menu.Dataset {
	tb.Helper()
	ds, err := menu.New(items)
	if err != nil {
		tb.Fatalf("menu.New() error = %v", err)
	}
	return ds
}

// WideInput selects restaurants with every range spanning [0, 1000] and no
// search text.
func WideInput(restaurants ...string) filter.Input {
	return filter.Input{
		Restaurants:   restaurants,
		ProteinRange:  []float64{0, 1000},
		CarbsRange:    []float64{0, 1000},
		FatRange:      []float64{0, 1000},
		CaloriesRange: []float64{0, 1000},
	}
}

// WithSearch returns in with its search text set.
func WithSearch(in filter.Input, text string) filter.Input {
	in.SearchText = &text
	return in
}

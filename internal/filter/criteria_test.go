package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nutridash/internal/menu"
)

func TestNewCriteria_ClampsToBounds(t *testing.T) {
	ds := sampleDataset(t)

	c := mustCriteria(t, ds, fullInput("A"))

	r, ok := c.Range(menu.AttrCalories)
	require.True(t, ok)
	assert.Equal(t, Range{Low: 120, High: 500}, r)

	r, _ = c.Range(menu.AttrProtein)
	assert.Equal(t, Range{Low: 3, High: 20}, r)
}

func TestNewCriteria_DisjointRangeMatchesNothing(t *testing.T) {
	ds := sampleDataset(t)

	in := fullInput("A", "B")
	in.CaloriesRange = []float64{600, 900}
	c := mustCriteria(t, ds, in)

	r, _ := c.Range(menu.AttrCalories)
	assert.Equal(t, Range{Low: 600, High: 900}, r)
	assert.Equal(t, StatusEmpty, Apply(ds, c).Status)
}

func TestNewCriteria_RejectsMalformedRanges(t *testing.T) {
	ds := sampleDataset(t)

	tests := map[string][]float64{
		"one value": {1},
		"three":     {1, 2, 3},
		"inverted":  {50, 10},
		"nan":       {math.NaN(), 10},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			in := fullInput("A")
			in.FatRange = raw
			_, err := NewCriteria(ds, in)

			var ce *CriteriaError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "total_fat", ce.Input)
		})
	}
}

func TestNewCriteria_DeduplicatesRestaurants(t *testing.T) {
	ds := sampleDataset(t)

	c := mustCriteria(t, ds, fullInput("B", "A", "B", " A "))
	assert.Equal(t, []string{"B", "A"}, c.Restaurants())
}

func TestDefaultInput_IsIncomplete(t *testing.T) {
	ds := sampleDataset(t)

	in := DefaultInput(ds)
	assert.Equal(t, []float64{120, 500}, in.CaloriesRange)
	assert.Equal(t, []float64{2, 20}, in.FatRange)

	c := mustCriteria(t, ds, in)
	assert.False(t, c.Complete())

	in.Restaurants = []string{"A"}
	c = mustCriteria(t, ds, in)
	assert.True(t, c.Complete())
}

func TestPredicates(t *testing.T) {
	burger := menu.MenuItem{Restaurant: "A", ItemName: "Double Burger", Protein: 20, Calories: 500}

	assert.True(t, RestaurantPredicate([]string{"A"})(burger))
	assert.False(t, RestaurantPredicate(nil)(burger))

	assert.True(t, RangePredicate(menu.AttrCalories, Range{Low: 500, High: 500})(burger))
	assert.False(t, RangePredicate(menu.AttrProtein, Range{Low: 21, High: 30})(burger))

	assert.True(t, SearchPredicate("")(burger))
	assert.True(t, SearchPredicate("burger")(burger))
	assert.False(t, SearchPredicate("A")(burger), "restaurant name is not searched")
	assert.False(t, SearchPredicate("fries")(burger))
}

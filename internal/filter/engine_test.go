package filter

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nutridash/internal/menu"
)

func sampleDataset(t *testing.T) *menu.Dataset {
	t.Helper()
	ds, err := menu.New([]menu.MenuItem{
		{Restaurant: "A", ItemName: "Burger", Protein: 20, Carbohydrates: 40, TotalFat: 15, Calories: 500},
		{Restaurant: "A", ItemName: "Salad", Protein: 5, Carbohydrates: 10, TotalFat: 2, Calories: 120},
		{Restaurant: "B", ItemName: "Fries", Protein: 3, Carbohydrates: 50, TotalFat: 20, Calories: 400},
	})
	require.NoError(t, err)
	return ds
}

func fullInput(restaurants ...string) Input {
	return Input{
		Restaurants:   restaurants,
		ProteinRange:  []float64{0, 100},
		CarbsRange:    []float64{0, 100},
		FatRange:      []float64{0, 100},
		CaloriesRange: []float64{0, 1000},
	}
}

func mustCriteria(t *testing.T, ds *menu.Dataset, in Input) Criteria {
	t.Helper()
	c, err := NewCriteria(ds, in)
	require.NoError(t, err)
	return c
}

func names(items []menu.MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemName
	}
	return out
}

func TestApply_SortsMatchesByCalories(t *testing.T) {
	ds := sampleDataset(t)

	res := Apply(ds, mustCriteria(t, ds, fullInput("A")))

	assert.Equal(t, StatusMatched, res.Status)
	assert.Equal(t, []string{"Salad", "Burger"}, names(res.Items))
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "A", res.Groups[0].Restaurant)
	assert.Len(t, res.Groups[0].Items, 2)
}

func TestApply_IncompleteWhenAnyRequiredInputMissing(t *testing.T) {
	ds := sampleDataset(t)

	cases := map[string]func(*Input){
		"no restaurants":   func(in *Input) { in.Restaurants = nil },
		"blank restaurant": func(in *Input) { in.Restaurants = []string{"  "} },
		"no protein":       func(in *Input) { in.ProteinRange = nil },
		"no carbs":         func(in *Input) { in.CarbsRange = []float64{} },
		"no fat":           func(in *Input) { in.FatRange = nil },
		"no calories":      func(in *Input) { in.CaloriesRange = nil },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := fullInput("A", "B")
			mutate(&in)
			c := mustCriteria(t, ds, in)

			assert.False(t, c.Complete())
			res := Apply(ds, c)
			assert.Equal(t, StatusIncomplete, res.Status)
			assert.Empty(t, res.Items)
		})
	}
}

func TestApply_EmptyIsDistinctFromIncomplete(t *testing.T) {
	ds := sampleDataset(t)

	in := fullInput("B")
	in.CaloriesRange = []float64{0, 100}
	res := Apply(ds, mustCriteria(t, ds, in))

	assert.Equal(t, StatusEmpty, res.Status)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Groups)
}

func TestApply_SearchMatchesItemNameOnlyCaseInsensitive(t *testing.T) {
	ds := sampleDataset(t)

	search := "BURG"
	in := fullInput("A", "B")
	in.SearchText = &search
	res := Apply(ds, mustCriteria(t, ds, in))
	assert.Equal(t, []string{"Burger"}, names(res.Items))

	// Restaurant names are never searched.
	search = "a"
	res = Apply(ds, mustCriteria(t, ds, in))
	assert.Equal(t, []string{"Salad"}, names(res.Items))

	search = "   "
	res = Apply(ds, mustCriteria(t, ds, in))
	assert.Len(t, res.Items, 3)
}

func TestApply_GroupsInFirstAppearanceOrder(t *testing.T) {
	ds := sampleDataset(t)

	res := Apply(ds, mustCriteria(t, ds, fullInput("A", "B")))

	assert.Equal(t, []string{"Salad", "Fries", "Burger"}, names(res.Items))
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "A", res.Groups[0].Restaurant)
	assert.Equal(t, "B", res.Groups[1].Restaurant)
	assert.Equal(t, []string{"Salad", "Burger"}, names(res.Groups[0].Items))
}

func TestApply_StableForEqualCalories(t *testing.T) {
	ds, err := menu.New([]menu.MenuItem{
		{Restaurant: "A", ItemName: "first", Calories: 300},
		{Restaurant: "A", ItemName: "cheap", Calories: 100},
		{Restaurant: "A", ItemName: "second", Calories: 300},
		{Restaurant: "A", ItemName: "third", Calories: 300},
	})
	require.NoError(t, err)

	res := Apply(ds, mustCriteria(t, ds, fullInput("A")))
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, names(res.Items))
}

func TestApply_Idempotent(t *testing.T) {
	ds := sampleDataset(t)
	c := mustCriteria(t, ds, fullInput("A", "B"))

	first := Apply(ds, c)
	second := Apply(ds, c)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Apply not idempotent (-first +second):\n%s", diff)
	}
}

// TestApply_SoundAndComplete checks against a brute-force oracle over
// randomly generated datasets and criteria.
func TestApply_SoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	restaurants := []string{"A", "B", "C", "D"}

	for iter := 0; iter < 200; iter++ {
		items := make([]menu.MenuItem, 1+rng.Intn(40))
		for i := range items {
			items[i] = menu.MenuItem{
				Restaurant:    restaurants[rng.Intn(len(restaurants))],
				ItemName:      []string{"Burger", "Salad", "Wrap", "Shake"}[rng.Intn(4)],
				Protein:       float64(rng.Intn(60)),
				Carbohydrates: float64(rng.Intn(120)),
				TotalFat:      float64(rng.Intn(50)),
				Calories:      float64(rng.Intn(20) * 50),
			}
		}
		ds, err := menu.New(items)
		require.NoError(t, err)

		in := Input{Restaurants: []string{restaurants[rng.Intn(4)], restaurants[rng.Intn(4)]}}
		randRange := func(max int) []float64 {
			lo := float64(rng.Intn(max))
			return []float64{lo, lo + float64(rng.Intn(max))}
		}
		in.ProteinRange = randRange(60)
		in.CarbsRange = randRange(120)
		in.FatRange = randRange(50)
		in.CaloriesRange = randRange(1000)

		c := mustCriteria(t, ds, in)
		res := Apply(ds, c)

		match := All(c.Predicates()...)
		var want []menu.MenuItem
		for _, it := range ds.Items() {
			if match(it) {
				want = append(want, it)
			}
		}

		require.Len(t, res.Items, len(want), "iteration %d", iter)
		assert.True(t, sort.SliceIsSorted(res.Items, func(i, j int) bool {
			return res.Items[i].Calories < res.Items[j].Calories
		}))
		for _, it := range res.Items {
			assert.True(t, match(it))
		}
		assert.ElementsMatch(t, want, res.Items)

		if len(want) == 0 {
			assert.Equal(t, StatusEmpty, res.Status)
		} else {
			assert.Equal(t, StatusMatched, res.Status)
		}
	}
}

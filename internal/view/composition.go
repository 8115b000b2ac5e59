package view

import (
	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

// Reference holds the daily reference intake (grams) for a 2000-calorie diet.
type Reference struct {
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	TotalFat      float64 `json:"total_fat"`
}

// DefaultReference is 50g protein, 300g carbohydrates, 65g fat.
var DefaultReference = Reference{Protein: 50, Carbohydrates: 300, TotalFat: 65}

// NutrientSummary is the mean macro content of a set of items.
// Defined is false for an empty set; the means are then reported as zero.
type NutrientSummary struct {
	Count         int     `json:"count"`
	Defined       bool    `json:"defined"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	TotalFat      float64 `json:"total_fat"`
}

// Summarize averages protein, carbohydrates and fat over items.
func Summarize(items []menu.MenuItem) NutrientSummary {
	if len(items) == 0 {
		return NutrientSummary{}
	}
	var s NutrientSummary
	for _, it := range items {
		s.Protein += it.Protein
		s.Carbohydrates += it.Carbohydrates
		s.TotalFat += it.TotalFat
	}
	n := float64(len(items))
	s.Count = len(items)
	s.Defined = true
	s.Protein /= n
	s.Carbohydrates /= n
	s.TotalFat /= n
	return s
}

// CompositionView compares the filtered averages with the reference diet
// as six pie slices. Slices are always present; undefined means are zero.
func CompositionView(res filter.Result, ref Reference) Artifact {
	sum := Summarize(res.Items)

	chart := &Chart{
		Type:   string(KindPie),
		Title:  "Nutrient Comparison",
		Series: []Series{},
		Hole:   0.3,
		Slices: []Slice{
			{Label: "Protein", Value: sum.Protein},
			{Label: "Carbohydrates", Value: sum.Carbohydrates},
			{Label: "Total Fat", Value: sum.TotalFat},
			{Label: "Standard Protein", Value: ref.Protein},
			{Label: "Standard Carbs", Value: ref.Carbohydrates},
			{Label: "Standard Fat", Value: ref.TotalFat},
		},
	}

	a := Artifact{Kind: KindPie, State: stateFor(res.Status), Chart: chart}
	if a.State == StateEmpty {
		a.Message = MessageNoData
	}
	return a
}

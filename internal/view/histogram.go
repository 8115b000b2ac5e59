package view

import (
	"math"

	"github.com/roach88/nutridash/internal/menu"
)

// DefaultBins is the histogram bucket count.
const DefaultBins = 10

// HistogramView overlays, per selected restaurant, the calorie distribution
// of that restaurant's full item set. It reads only the restaurant
// selection; nutrient ranges and search text never influence it.
//
// All series share the same bin edges: bins equal-width buckets spanning
// the calories of every selected restaurant's items.
func HistogramView(ds *menu.Dataset, restaurants []string, bins int) Artifact {
	if bins <= 0 {
		bins = DefaultBins
	}
	chart := &Chart{
		Type:   string(KindHistogram),
		Title:  "Calorie Distribution",
		XAxis:  menu.AttrCalories.Label(),
		YAxis:  "Count",
		Series: []Series{},
	}
	if len(restaurants) == 0 {
		return Artifact{Kind: KindHistogram, State: StateIncomplete, Chart: chart}
	}

	values := make([][]float64, len(restaurants))
	lo, hi := math.Inf(1), math.Inf(-1)
	total := 0
	for i, r := range restaurants {
		for _, it := range ds.ItemsFor(r) {
			values[i] = append(values[i], it.Calories)
			lo = math.Min(lo, it.Calories)
			hi = math.Max(hi, it.Calories)
			total++
		}
	}

	if total == 0 {
		for i, r := range restaurants {
			chart.Series = append(chart.Series, Series{Name: r, Color: colorAt(i)})
		}
		return Artifact{Kind: KindHistogram, State: StateEmpty, Message: MessageEmpty, Chart: chart}
	}

	if lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	for i, r := range restaurants {
		s := Series{Name: r, Color: colorAt(i), Bins: make([]Bin, bins)}
		for b := range s.Bins {
			s.Bins[b].Low = lo + float64(b)*width
			s.Bins[b].High = lo + float64(b+1)*width
		}
		s.Bins[bins-1].High = hi

		for _, v := range values[i] {
			s.Bins[binIndex(v, lo, width, bins)].Count++
		}
		chart.Series = append(chart.Series, s)
	}

	return Artifact{Kind: KindHistogram, State: StateRendered, Chart: chart}
}

func binIndex(v, lo, width float64, bins int) int {
	if width == 0 {
		return 0
	}
	idx := int((v - lo) / width)
	if idx >= bins {
		idx = bins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

package view

import (
	"fmt"

	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

// ScatterOptions selects the plotted attributes. Size is optional.
type ScatterOptions struct {
	X    menu.Attribute
	Y    menu.Attribute
	Size menu.Attribute
}

// DefaultScatter plots protein against carbohydrates.
var DefaultScatter = ScatterOptions{X: menu.AttrProtein, Y: menu.AttrCarbohydrates}

// ScatterView maps every filtered item to a point, one series per
// restaurant group. Incomplete or empty results yield a chart with no
// series.
func ScatterView(res filter.Result, opts ScatterOptions) Artifact {
	chart := &Chart{
		Type:   string(KindScatter),
		Title:  fmt.Sprintf("%s vs %s", opts.X.Label(), opts.Y.Label()),
		XAxis:  opts.X.Label(),
		YAxis:  opts.Y.Label(),
		Series: []Series{},
	}

	for i, g := range res.Groups {
		s := Series{Name: g.Restaurant, Color: colorAt(i), Points: make([]Point, 0, len(g.Items))}
		for _, it := range g.Items {
			p := Point{X: it.Value(opts.X), Y: it.Value(opts.Y), Label: it.ItemName}
			if opts.Size != "" {
				p.Size = it.Value(opts.Size)
			}
			s.Points = append(s.Points, p)
		}
		chart.Series = append(chart.Series, s)
	}

	return Artifact{Kind: KindScatter, State: stateFor(res.Status), Chart: chart}
}

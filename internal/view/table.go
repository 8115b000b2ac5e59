package view

import (
	"strconv"

	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

var tableColumns = []Column{
	{Key: menu.ColumnItemName, Label: "Item Name", Type: "text", Align: "left"},
	{Key: string(menu.AttrProtein), Label: menu.AttrProtein.Label(), Type: "number", Align: "right"},
	{Key: string(menu.AttrCarbohydrates), Label: menu.AttrCarbohydrates.Label(), Type: "number", Align: "right"},
	{Key: string(menu.AttrTotalFat), Label: menu.AttrTotalFat.Label(), Type: "number", Align: "right"},
	{Key: string(menu.AttrCalories), Label: menu.AttrCalories.Label(), Type: "number", Align: "right"},
}

// TableView emits one table per restaurant group, titled with the
// restaurant name, rows in result order. Incomplete and empty results
// yield a single placeholder artifact instead.
func TableView(res filter.Result) Artifact {
	switch res.Status {
	case filter.StatusIncomplete:
		return Artifact{Kind: KindTables, State: StateIncomplete, Message: MessageIncomplete}
	case filter.StatusEmpty:
		return Artifact{Kind: KindTables, State: StateEmpty, Message: MessageEmpty}
	}

	tables := make([]Table, 0, len(res.Groups))
	for _, g := range res.Groups {
		rows := make([][]string, 0, len(g.Items))
		for _, it := range g.Items {
			rows = append(rows, []string{
				it.ItemName,
				formatNumber(it.Protein),
				formatNumber(it.Carbohydrates),
				formatNumber(it.TotalFat),
				formatNumber(it.Calories),
			})
		}
		tables = append(tables, Table{
			Title:   g.Restaurant,
			Columns: tableColumns,
			Rows:    rows,
		})
	}

	return Artifact{Kind: KindTables, State: StateRendered, Tables: tables}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

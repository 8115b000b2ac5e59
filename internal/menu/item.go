package menu

// MenuItem is one immutable row of the dataset.
type MenuItem struct {
	Restaurant    string  `json:"restaurant"`
	ItemName      string  `json:"item_name"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	TotalFat      float64 `json:"total_fat"`
	Calories      float64 `json:"calories"`
}

// Attribute names a numeric column of MenuItem.
type Attribute string

const (
	AttrProtein       Attribute = "protein"
	AttrCarbohydrates Attribute = "carbohydrates"
	AttrTotalFat      Attribute = "total_fat"
	AttrCalories      Attribute = "calories"
)

// Attributes lists the numeric attributes in column order.
var Attributes = []Attribute{AttrProtein, AttrCarbohydrates, AttrTotalFat, AttrCalories}

// Required column names of any tabular source, in canonical order.
const (
	ColumnRestaurant = "restaurant"
	ColumnItemName   = "item_name"
)

// RequiredColumns is the header every dataset source must provide.
var RequiredColumns = []string{
	ColumnRestaurant,
	ColumnItemName,
	string(AttrProtein),
	string(AttrCarbohydrates),
	string(AttrTotalFat),
	string(AttrCalories),
}

// ParseAttribute maps a column name to an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for _, a := range Attributes {
		if string(a) == name {
			return a, nil
		}
	}
	return "", &UnknownAttributeError{Name: name}
}

// Value returns the item's value for attr.
// Panics on an attribute outside Attributes; callers validate with ParseAttribute.
func (m MenuItem) Value(attr Attribute) float64 {
	switch attr {
	case AttrProtein:
		return m.Protein
	case AttrCarbohydrates:
		return m.Carbohydrates
	case AttrTotalFat:
		return m.TotalFat
	case AttrCalories:
		return m.Calories
	}
	panic((&UnknownAttributeError{Name: string(attr)}).Error())
}

// Label returns the display label used for axis titles and table headers.
func (a Attribute) Label() string {
	switch a {
	case AttrProtein:
		return "Protein (g)"
	case AttrCarbohydrates:
		return "Carbs (g)"
	case AttrTotalFat:
		return "Fats (g)"
	case AttrCalories:
		return "Calories"
	}
	return string(a)
}

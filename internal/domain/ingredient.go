package domain

import "time"

// IngredientType categorizes ingredients and implies how they are measured.
type IngredientType string

const (
	IngredientTypeSpirit  IngredientType = "SPIRIT"
	IngredientTypeLiqueur IngredientType = "LIQUEUR"
	IngredientTypeWine    IngredientType = "WINE"
	IngredientTypeJuice   IngredientType = "JUICE"
	IngredientTypeSyrup   IngredientType = "SYRUP"
	IngredientTypeSoda    IngredientType = "SODA"
	IngredientTypeDairy   IngredientType = "DAIRY"
	IngredientTypeFruit   IngredientType = "FRUIT"
	IngredientTypeGarnish IngredientType = "GARNISH"
	IngredientTypeOther   IngredientType = "OTHER"
)

// MeasuredByCount reports whether the type is counted in pieces rather than volume.
func (t IngredientType) MeasuredByCount() bool {
	return t == IngredientTypeFruit || t == IngredientTypeGarnish
}

// Valid reports whether the type is one of the known values.
func (t IngredientType) Valid() bool {
	switch t {
	case IngredientTypeSpirit, IngredientTypeLiqueur, IngredientTypeWine,
		IngredientTypeJuice, IngredientTypeSyrup, IngredientTypeSoda,
		IngredientTypeDairy, IngredientTypeFruit, IngredientTypeGarnish,
		IngredientTypeOther:
		return true
	}
	return false
}

// Ingredient models a stockable bar ingredient.
//
// Substitutes and Alternatives are directed relations: this ingredient names the
// ids it can be replaced by. The reverse direction is never implied.
type Ingredient struct {
	ID           string
	Name         string
	Type         IngredientType
	ABV          float64
	InStock      bool
	Substitutes  []string
	Alternatives []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

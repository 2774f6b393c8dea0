package domain

import "time"

// RecipeItem is one ordered line of a cocktail recipe.
type RecipeItem struct {
	IngredientID string
	Measure      string
}

// Cocktail models a recipe in the catalog.
type Cocktail struct {
	ID         string
	Name       string
	Recipe     []RecipeItem
	Steps      []string
	Tags       []string
	ABV        float64
	BaseSpirit string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RequiredIngredientIDs returns the distinct ingredient ids the recipe references.
func (c Cocktail) RequiredIngredientIDs() []string {
	seen := make(map[string]struct{}, len(c.Recipe))
	ids := make([]string, 0, len(c.Recipe))
	for _, item := range c.Recipe {
		if _, ok := seen[item.IngredientID]; ok {
			continue
		}
		seen[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}
	return ids
}

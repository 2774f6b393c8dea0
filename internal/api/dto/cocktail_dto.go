package dto

import (
	"time"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

// RecipeItemDTO is one ordered recipe line on the wire.
type RecipeItemDTO struct {
	IngredientID string `json:"ingredient_id"`
	Measure      string `json:"measure"`
}

// CocktailRequest is the create/update payload for a cocktail.
type CocktailRequest struct {
	Name       string          `json:"name"`
	Recipe     []RecipeItemDTO `json:"recipe"`
	Steps      []string        `json:"steps"`
	Tags       []string        `json:"tags"`
	ABV        float64         `json:"abv"`
	BaseSpirit string          `json:"base_spirit"`
}

// CocktailResponse is the wire shape of a cocktail.
type CocktailResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Recipe     []RecipeItemDTO `json:"recipe"`
	Steps      []string        `json:"steps"`
	Tags       []string        `json:"tags"`
	ABV        float64         `json:"abv"`
	BaseSpirit string          `json:"base_spirit"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToDomain maps the request onto a domain cocktail.
func (r CocktailRequest) ToDomain() domain.Cocktail {
	recipe := make([]domain.RecipeItem, 0, len(r.Recipe))
	for _, item := range r.Recipe {
		recipe = append(recipe, domain.RecipeItem{IngredientID: item.IngredientID, Measure: item.Measure})
	}
	return domain.Cocktail{
		Name:       r.Name,
		Recipe:     recipe,
		Steps:      r.Steps,
		Tags:       r.Tags,
		ABV:        r.ABV,
		BaseSpirit: r.BaseSpirit,
	}
}

// NewCocktailResponse maps a domain cocktail to its wire shape.
func NewCocktailResponse(cocktail domain.Cocktail) CocktailResponse {
	recipe := make([]RecipeItemDTO, 0, len(cocktail.Recipe))
	for _, item := range cocktail.Recipe {
		recipe = append(recipe, RecipeItemDTO{IngredientID: item.IngredientID, Measure: item.Measure})
	}
	return CocktailResponse{
		ID:         cocktail.ID,
		Name:       cocktail.Name,
		Recipe:     recipe,
		Steps:      cocktail.Steps,
		Tags:       cocktail.Tags,
		ABV:        cocktail.ABV,
		BaseSpirit: cocktail.BaseSpirit,
		CreatedAt:  cocktail.CreatedAt,
		UpdatedAt:  cocktail.UpdatedAt,
	}
}

// NewCocktailResponses maps a slice of cocktails.
func NewCocktailResponses(cocktails []domain.Cocktail) []CocktailResponse {
	result := make([]CocktailResponse, 0, len(cocktails))
	for _, cocktail := range cocktails {
		result = append(result, NewCocktailResponse(cocktail))
	}
	return result
}

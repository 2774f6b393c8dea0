package dto

import (
	"time"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

// IngredientRequest is the create/update payload for an ingredient.
type IngredientRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	ABV          float64  `json:"abv"`
	InStock      bool     `json:"in_stock"`
	Substitutes  []string `json:"substitutes"`
	Alternatives []string `json:"alternatives"`
}

// StockRequest is the payload for the stock toggle endpoint.
type StockRequest struct {
	InStock bool `json:"in_stock"`
}

// IngredientResponse is the wire shape of an ingredient.
type IngredientResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	MeasuredByCount bool      `json:"measured_by_count"`
	ABV             float64   `json:"abv"`
	InStock         bool      `json:"in_stock"`
	Substitutes     []string  `json:"substitutes"`
	Alternatives    []string  `json:"alternatives"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToDomain maps the request onto a domain ingredient.
func (r IngredientRequest) ToDomain() domain.Ingredient {
	return domain.Ingredient{
		Name:         r.Name,
		Type:         domain.IngredientType(r.Type),
		ABV:          r.ABV,
		InStock:      r.InStock,
		Substitutes:  r.Substitutes,
		Alternatives: r.Alternatives,
	}
}

// NewIngredientResponse maps a domain ingredient to its wire shape.
func NewIngredientResponse(ing domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		Type:            string(ing.Type),
		MeasuredByCount: ing.Type.MeasuredByCount(),
		ABV:             ing.ABV,
		InStock:         ing.InStock,
		Substitutes:     ing.Substitutes,
		Alternatives:    ing.Alternatives,
		CreatedAt:       ing.CreatedAt,
		UpdatedAt:       ing.UpdatedAt,
	}
}

// NewIngredientResponses maps a slice of ingredients.
func NewIngredientResponses(ingredients []domain.Ingredient) []IngredientResponse {
	result := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, NewIngredientResponse(ing))
	}
	return result
}

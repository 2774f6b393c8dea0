package dto

import "github.com/spec-kit/cocktail-service/internal/availability"

// AvailabilityResponse partitions the makeable catalog into the three tiers.
type AvailabilityResponse struct {
	Exact            []CocktailResponse `json:"exact"`
	WithSubstitutes  []CocktailResponse `json:"with_substitutes"`
	WithAlternatives []CocktailResponse `json:"with_alternatives"`
}

// IngredientImpactResponse is one row of the ingredient impact report.
type IngredientImpactResponse struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	LostIfOut      int    `json:"lost_if_out_of_stock"`
	GainedIfIn     int    `json:"gained_if_in_stock"`
}

// NewAvailabilityResponse maps a resolver result to its wire shape.
func NewAvailabilityResponse(result availability.Result) AvailabilityResponse {
	return AvailabilityResponse{
		Exact:            NewCocktailResponses(result.Exact),
		WithSubstitutes:  NewCocktailResponses(result.WithSubstitutes),
		WithAlternatives: NewCocktailResponses(result.WithAlternatives),
	}
}

// NewImpactResponses maps the impact report.
func NewImpactResponses(report []availability.Impact) []IngredientImpactResponse {
	result := make([]IngredientImpactResponse, 0, len(report))
	for _, impact := range report {
		result = append(result, IngredientImpactResponse{
			IngredientID:   impact.IngredientID,
			IngredientName: impact.IngredientName,
			LostIfOut:      impact.LostIfOut,
			GainedIfIn:     impact.GainedIfIn,
		})
	}
	return result
}

package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

func ingredient(id string, inStock bool, substitutes, alternatives []string) domain.Ingredient {
	return domain.Ingredient{
		ID:           id,
		Name:         "ingredient " + id,
		Type:         domain.IngredientTypeSpirit,
		InStock:      inStock,
		Substitutes:  substitutes,
		Alternatives: alternatives,
	}
}

func cocktail(id string, ingredientIDs ...string) domain.Cocktail {
	recipe := make([]domain.RecipeItem, 0, len(ingredientIDs))
	for _, ingID := range ingredientIDs {
		recipe = append(recipe, domain.RecipeItem{IngredientID: ingID, Measure: "2 cl"})
	}
	return domain.Cocktail{ID: id, Name: "cocktail " + id, Recipe: recipe}
}

func names(cocktails []domain.Cocktail) []string {
	ids := make([]string, 0, len(cocktails))
	for _, c := range cocktails {
		ids = append(ids, c.ID)
	}
	return ids
}

// The concrete scenario: A in stock; B out with substitute A; C out with only
// alternative A; D out with no relations.
func scenarioIngredients() []domain.Ingredient {
	return []domain.Ingredient{
		ingredient("A", true, nil, nil),
		ingredient("B", false, []string{"A"}, nil),
		ingredient("C", false, nil, []string{"A"}),
		ingredient("D", false, nil, nil),
	}
}

func TestResolveClassifiesThreeTiers(t *testing.T) {
	cocktails := []domain.Cocktail{
		cocktail("exact", "A"),
		cocktail("subs", "B"),
		cocktail("alts", "C"),
		cocktail("gone", "D"),
	}

	result := Resolve(scenarioIngredients(), cocktails)

	assert.Equal(t, []string{"exact"}, names(result.Exact))
	assert.Equal(t, []string{"subs"}, names(result.WithSubstitutes))
	assert.Equal(t, []string{"alts"}, names(result.WithAlternatives))
}

func TestResolveOmitsUnavailable(t *testing.T) {
	result := Resolve(scenarioIngredients(), []domain.Cocktail{cocktail("gone", "D")})

	assert.Empty(t, result.Exact)
	assert.Empty(t, result.WithSubstitutes)
	assert.Empty(t, result.WithAlternatives)
}

func TestResolveIsAPartition(t *testing.T) {
	ingredients := scenarioIngredients()
	cocktails := []domain.Cocktail{
		cocktail("1", "A"),
		cocktail("2", "A", "B"),
		cocktail("3", "B", "C"),
		cocktail("4", "C"),
		cocktail("5", "A", "D"),
		cocktail("6", "B"),
	}

	result := Resolve(ingredients, cocktails)

	seen := map[string]int{}
	for _, c := range result.Exact {
		seen[c.ID]++
	}
	for _, c := range result.WithSubstitutes {
		seen[c.ID]++
	}
	for _, c := range result.WithAlternatives {
		seen[c.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "cocktail %s must appear in exactly one list", id)
	}
}

func TestResolveSubstitutesPreferredOverAlternatives(t *testing.T) {
	// B's substitute and alternative are both in stock; the substitute wins.
	ingredients := []domain.Ingredient{
		ingredient("A", true, nil, nil),
		ingredient("X", true, nil, nil),
		ingredient("B", false, []string{"A"}, []string{"X"}),
	}

	result := Resolve(ingredients, []domain.Cocktail{cocktail("drink", "B")})

	assert.Equal(t, []string{"drink"}, names(result.WithSubstitutes))
	assert.Empty(t, result.WithAlternatives)
}

func TestResolveDowngradesWhenAnyMissingNeedsAlternative(t *testing.T) {
	// B is substitutable, C only has an alternative: one weak link downgrades
	// the whole cocktail.
	ingredients := scenarioIngredients()

	result := Resolve(ingredients, []domain.Cocktail{cocktail("drink", "B", "C")})

	assert.Empty(t, result.WithSubstitutes)
	assert.Equal(t, []string{"drink"}, names(result.WithAlternatives))
}

func TestResolveRelationsAreDirected(t *testing.T) {
	// A names B as substitute, not the reverse. With A in stock and B out,
	// a cocktail needing B must not borrow A's relation.
	ingredients := []domain.Ingredient{
		ingredient("A", true, []string{"B"}, nil),
		ingredient("B", false, nil, nil),
	}

	result := Resolve(ingredients, []domain.Cocktail{cocktail("drink", "B")})

	assert.Empty(t, result.Exact)
	assert.Empty(t, result.WithSubstitutes)
	assert.Empty(t, result.WithAlternatives)
}

func TestResolveNoTransitiveClosure(t *testing.T) {
	// B's substitute C is out of stock; C's own substitute A is in stock.
	// Nothing chains through C, so the cocktail is unavailable.
	ingredients := []domain.Ingredient{
		ingredient("A", true, nil, nil),
		ingredient("B", false, []string{"C"}, nil),
		ingredient("C", false, []string{"A"}, nil),
	}

	result := Resolve(ingredients, []domain.Cocktail{cocktail("drink", "B")})

	assert.Empty(t, result.Exact)
	assert.Empty(t, result.WithSubstitutes)
	assert.Empty(t, result.WithAlternatives)
}

func TestResolveDuplicateRecipeLines(t *testing.T) {
	// The same ingredient twice counts once.
	ingredients := []domain.Ingredient{ingredient("A", true, nil, nil)}
	drink := domain.Cocktail{ID: "drink", Recipe: []domain.RecipeItem{
		{IngredientID: "A", Measure: "2 cl"},
		{IngredientID: "A", Measure: "1 dash"},
	}}

	result := Resolve(ingredients, []domain.Cocktail{drink})
	assert.Equal(t, []string{"drink"}, names(result.Exact))
}

func TestResolveEmptyCollections(t *testing.T) {
	result := Resolve(nil, nil)
	assert.Empty(t, result.Exact)
	assert.Empty(t, result.WithSubstitutes)
	assert.Empty(t, result.WithAlternatives)

	assert.Empty(t, ImpactReport(nil, nil))
}

func TestImpactReportLostIfOut(t *testing.T) {
	ingredients := scenarioIngredients()
	cocktails := []domain.Cocktail{
		cocktail("exact", "A"),
		cocktail("subs", "B"),
		cocktail("gone", "D"),
	}

	report := ImpactReport(ingredients, cocktails)
	byID := map[string]Impact{}
	for _, impact := range report {
		byID[impact.IngredientID] = impact
	}

	// A going out kills both the exact cocktail and the one relying on A as
	// a substitute.
	require.Contains(t, byID, "A")
	assert.Equal(t, 2, byID["A"].LostIfOut)
	assert.Equal(t, 0, byID["A"].GainedIfIn)

	// B coming into stock moves "subs" from substitute-backed to exact: it
	// was already makeable, so nothing is gained and nothing lost.
	assert.Equal(t, 0, byID["B"].GainedIfIn)
	assert.Equal(t, 0, byID["B"].LostIfOut)

	// D coming into stock makes "gone" newly available.
	assert.Equal(t, 1, byID["D"].GainedIfIn)
	assert.Equal(t, 0, byID["D"].LostIfOut)
}

func TestImpactReportCoversEveryIngredient(t *testing.T) {
	ingredients := scenarioIngredients()
	report := ImpactReport(ingredients, []domain.Cocktail{cocktail("exact", "A")})

	assert.Len(t, report, len(ingredients))
}

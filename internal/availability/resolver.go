package availability

import (
	"github.com/spec-kit/cocktail-service/internal/domain"
)

// Classification is the three-tier answer to "how makeable is this cocktail
// right now". Unavailable cocktails carry no classification and are omitted
// from results.
type Classification string

const (
	ClassExact            Classification = "EXACT"
	ClassWithSubstitutes  Classification = "WITH_SUBSTITUTES"
	ClassWithAlternatives Classification = "WITH_ALTERNATIVES"
)

// Result partitions the makeable part of the catalog. A cocktail appears in
// at most one list.
type Result struct {
	Exact            []domain.Cocktail
	WithSubstitutes  []domain.Cocktail
	WithAlternatives []domain.Cocktail
}

// Impact reports, for one ingredient, how many cocktails would stop being
// makeable if it alone went out of stock and how many would become makeable
// if it alone came into stock.
type Impact struct {
	IngredientID   string
	IngredientName string
	LostIfOut      int
	GainedIfIn     int
}

// Resolve classifies every cocktail against the current in-stock set.
//
// Substitutes are strictly preferred over alternatives: a cocktail only drops
// to WITH_ALTERNATIVES when at least one missing ingredient has no in-stock
// substitute at all. Relations are directed and read only from the missing
// ingredient's own adjacency sets; nothing chains through a replacement's
// relations.
func Resolve(ingredients []domain.Ingredient, cocktails []domain.Cocktail) Result {
	byID := indexIngredients(ingredients)
	inStock := inStockSet(ingredients)

	var res Result
	for _, cocktail := range cocktails {
		class, ok := classify(cocktail, inStock, byID)
		if !ok {
			continue
		}
		switch class {
		case ClassExact:
			res.Exact = append(res.Exact, cocktail)
		case ClassWithSubstitutes:
			res.WithSubstitutes = append(res.WithSubstitutes, cocktail)
		case ClassWithAlternatives:
			res.WithAlternatives = append(res.WithAlternatives, cocktail)
		}
	}
	return res
}

// ImpactReport recomputes the classification with a single ingredient's stock
// flag hypothetically flipped, for every ingredient. "Makeable" means any of
// the three classes.
func ImpactReport(ingredients []domain.Ingredient, cocktails []domain.Cocktail) []Impact {
	byID := indexIngredients(ingredients)
	inStock := inStockSet(ingredients)

	baseline := make(map[string]bool, len(cocktails))
	for _, cocktail := range cocktails {
		_, ok := classify(cocktail, inStock, byID)
		baseline[cocktail.ID] = ok
	}

	report := make([]Impact, 0, len(ingredients))
	for _, ing := range ingredients {
		impact := Impact{IngredientID: ing.ID, IngredientName: ing.Name}

		withoutIt := copySet(inStock)
		delete(withoutIt, ing.ID)
		withIt := copySet(inStock)
		withIt[ing.ID] = struct{}{}

		for _, cocktail := range cocktails {
			if baseline[cocktail.ID] {
				if _, ok := classify(cocktail, withoutIt, byID); !ok {
					impact.LostIfOut++
				}
			} else {
				if _, ok := classify(cocktail, withIt, byID); ok {
					impact.GainedIfIn++
				}
			}
		}

		report = append(report, impact)
	}
	return report
}

func classify(cocktail domain.Cocktail, inStock map[string]struct{}, byID map[string]domain.Ingredient) (Classification, bool) {
	var missing []string
	for _, id := range cocktail.RequiredIngredientIDs() {
		if _, ok := inStock[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return ClassExact, true
	}

	allSubstitutable := true
	for _, id := range missing {
		if !anyInStock(byID[id].Substitutes, inStock) {
			allSubstitutable = false
			break
		}
	}
	if allSubstitutable {
		return ClassWithSubstitutes, true
	}

	for _, id := range missing {
		ing := byID[id]
		if !anyInStock(ing.Substitutes, inStock) && !anyInStock(ing.Alternatives, inStock) {
			return "", false
		}
	}
	return ClassWithAlternatives, true
}

func anyInStock(ids []string, inStock map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := inStock[id]; ok {
			return true
		}
	}
	return false
}

func indexIngredients(ingredients []domain.Ingredient) map[string]domain.Ingredient {
	byID := make(map[string]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	return byID
}

func inStockSet(ingredients []domain.Ingredient) map[string]struct{} {
	set := make(map[string]struct{})
	for _, ing := range ingredients {
		if ing.InStock {
			set[ing.ID] = struct{}{}
		}
	}
	return set
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

package service

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/spec-kit/cocktail-service/internal/availability"
	"github.com/spec-kit/cocktail-service/internal/domain"
	"github.com/spec-kit/cocktail-service/internal/repository"
)

const availabilityCacheKey = "classified"

// AvailabilityService answers the classified-availability and ingredient
// impact queries. The resolver itself is pure; this layer loads catalog
// snapshots and fronts the classification with a short-TTL cache that stock
// changes invalidate.
type AvailabilityService struct {
	ingredients repository.IngredientRepository
	cocktails   repository.CocktailRepository
	cache       *ttlcache.Cache[string, availability.Result]
}

// NewAvailabilityService builds the service and starts cache eviction.
func NewAvailabilityService(ingredients repository.IngredientRepository, cocktails repository.CocktailRepository, cacheTTL time.Duration) *AvailabilityService {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, availability.Result](cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, availability.Result](),
	)
	go cache.Start()

	return &AvailabilityService{
		ingredients: ingredients,
		cocktails:   cocktails,
		cache:       cache,
	}
}

// Classified returns the three makeable lists for the current stock state.
func (s *AvailabilityService) Classified(ctx context.Context) (availability.Result, error) {
	if item := s.cache.Get(availabilityCacheKey); item != nil {
		return item.Value(), nil
	}

	ingredients, cocktails, err := s.snapshot(ctx)
	if err != nil {
		return availability.Result{}, err
	}

	result := availability.Resolve(ingredients, cocktails)
	s.cache.Set(availabilityCacheKey, result, ttlcache.DefaultTTL)
	return result, nil
}

// Impact returns the per-ingredient impact report. Always computed fresh; the
// hypothetical flips make it unsuitable for the snapshot cache.
func (s *AvailabilityService) Impact(ctx context.Context) ([]availability.Impact, error) {
	ingredients, cocktails, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return availability.ImpactReport(ingredients, cocktails), nil
}

// Invalidate drops the cached classification after a catalog or stock change.
func (s *AvailabilityService) Invalidate() {
	s.cache.Delete(availabilityCacheKey)
}

// Close stops the cache eviction goroutine.
func (s *AvailabilityService) Close() {
	s.cache.Stop()
}

func (s *AvailabilityService) snapshot(ctx context.Context) ([]domain.Ingredient, []domain.Cocktail, error) {
	ingredients, err := s.ingredients.List(ctx, repository.IngredientFilter{})
	if err != nil {
		return nil, nil, err
	}
	cocktails, err := s.cocktails.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ingredients, cocktails, nil
}

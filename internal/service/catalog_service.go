package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/cocktail-service/internal/domain"
	"github.com/spec-kit/cocktail-service/internal/repository"
	"github.com/spec-kit/cocktail-service/internal/stream"
	apperrors "github.com/spec-kit/cocktail-service/pkg/util"
)

// CatalogService owns ingredient and cocktail CRUD plus the stock-change
// notification path: a stock flag that actually changes invalidates the
// availability cache, notifies the local hub and announces the change to
// other instances.
type CatalogService struct {
	ingredients  repository.IngredientRepository
	cocktails    repository.CocktailRepository
	hub          *stream.Hub
	bridge       *stream.Bridge
	availability *AvailabilityService
	logger       *zap.Logger
}

// CatalogDependencies encapsulates requirements for the catalog service.
type CatalogDependencies struct {
	IngredientRepo repository.IngredientRepository
	CocktailRepo   repository.CocktailRepository
	Hub            *stream.Hub
	Bridge         *stream.Bridge
	Availability   *AvailabilityService
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		ingredients:  deps.IngredientRepo,
		cocktails:    deps.CocktailRepo,
		hub:          deps.Hub,
		bridge:       deps.Bridge,
		availability: deps.Availability,
		logger:       logger,
	}
}

// CreateIngredient validates and persists a new ingredient.
func (s *CatalogService) CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if ingredient.Name == "" {
		return apperrors.NewValidationError("ingredient name required", nil)
	}
	if !ingredient.Type.Valid() {
		return apperrors.NewValidationError("unknown ingredient type", map[string]any{"type": string(ingredient.Type)})
	}
	if err := s.ingredients.Create(ctx, ingredient); err != nil {
		return err
	}
	s.availability.Invalidate()
	return nil
}

// UpdateIngredient persists changes to an ingredient. Stock transitions made
// through a full update notify subscribers the same way SetStock does.
func (s *CatalogService) UpdateIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if !ingredient.Type.Valid() {
		return apperrors.NewValidationError("unknown ingredient type", map[string]any{"type": string(ingredient.Type)})
	}

	prior, err := s.ingredients.GetByID(ctx, ingredient.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.ingredients.Update(ctx, ingredient); err != nil {
		return apperrors.MapError(err)
	}

	s.availability.Invalidate()
	if prior.InStock != ingredient.InStock {
		s.notifyStockChanged(ctx, ingredient.ID, ingredient.InStock)
	}
	return nil
}

// GetIngredient loads one ingredient.
func (s *CatalogService) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ing, nil
}

// ListIngredients loads ingredients matching the filter.
func (s *CatalogService) ListIngredients(ctx context.Context, filter repository.IngredientFilter) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, filter)
}

// DeleteIngredient removes an ingredient.
func (s *CatalogService) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.availability.Invalidate()
	return nil
}

// SetIngredientStock flips the stock flag. Subscribers are only notified when
// the persisted value actually changed.
func (s *CatalogService) SetIngredientStock(ctx context.Context, id string, inStock bool) error {
	changed, err := s.ingredients.SetStock(ctx, id, inStock)
	if err != nil {
		return apperrors.MapError(err)
	}
	if changed {
		s.availability.Invalidate()
		s.notifyStockChanged(ctx, id, inStock)
	}
	return nil
}

// CreateCocktail validates and persists a new cocktail.
func (s *CatalogService) CreateCocktail(ctx context.Context, cocktail *domain.Cocktail) error {
	if cocktail.Name == "" {
		return apperrors.NewValidationError("cocktail name required", nil)
	}
	if len(cocktail.Recipe) == 0 {
		return apperrors.NewValidationError("cocktail requires at least one ingredient", nil)
	}
	if err := s.cocktails.Create(ctx, cocktail); err != nil {
		return err
	}
	s.availability.Invalidate()
	return nil
}

// UpdateCocktail persists changes to a cocktail.
func (s *CatalogService) UpdateCocktail(ctx context.Context, cocktail *domain.Cocktail) error {
	if len(cocktail.Recipe) == 0 {
		return apperrors.NewValidationError("cocktail requires at least one ingredient", nil)
	}
	if err := s.cocktails.Update(ctx, cocktail); err != nil {
		return apperrors.MapError(err)
	}
	s.availability.Invalidate()
	return nil
}

// GetCocktail loads one cocktail with its recipe.
func (s *CatalogService) GetCocktail(ctx context.Context, id string) (*domain.Cocktail, error) {
	cocktail, err := s.cocktails.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return cocktail, nil
}

// ListCocktails loads the full cocktail collection.
func (s *CatalogService) ListCocktails(ctx context.Context) ([]domain.Cocktail, error) {
	return s.cocktails.List(ctx)
}

// DeleteCocktail removes a cocktail and its recipe rows.
func (s *CatalogService) DeleteCocktail(ctx context.Context, id string) error {
	if err := s.cocktails.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.availability.Invalidate()
	return nil
}

func (s *CatalogService) notifyStockChanged(ctx context.Context, id string, inStock bool) {
	s.logger.Info("ingredient stock changed",
		zap.String("ingredient_id", id),
		zap.Bool("in_stock", inStock),
	)
	s.hub.BroadcastStockChanged()
	if s.bridge != nil {
		s.bridge.PublishStockChanged(ctx)
	}
}

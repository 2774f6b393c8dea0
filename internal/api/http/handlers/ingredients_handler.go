package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/dto"
	"github.com/spec-kit/cocktail-service/internal/domain"
	"github.com/spec-kit/cocktail-service/internal/repository"
	"github.com/spec-kit/cocktail-service/internal/service"
)

// IngredientsHandler exposes ingredient CRUD and the stock toggle.
type IngredientsHandler struct {
	catalog *service.CatalogService
}

// NewIngredientsHandler constructs handler.
func NewIngredientsHandler(catalog *service.CatalogService) *IngredientsHandler {
	return &IngredientsHandler{catalog: catalog}
}

// List handles GET /api/ingredients.
func (h *IngredientsHandler) List(c *fiber.Ctx) error {
	filter := repository.IngredientFilter{}
	if raw := c.Query("type"); raw != "" {
		t := domain.IngredientType(raw)
		filter.Type = &t
	}
	if raw := c.Query("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid in_stock filter")
		}
		filter.InStock = &inStock
	}

	ingredients, err := h.catalog.ListIngredients(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientResponses(ingredients)})
}

// Get handles GET /api/ingredients/:id.
func (h *IngredientsHandler) Get(c *fiber.Ctx) error {
	ingredient, err := h.catalog.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientResponse(*ingredient)})
}

// Create handles POST /api/ingredients.
func (h *IngredientsHandler) Create(c *fiber.Ctx) error {
	var req dto.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ingredient := req.ToDomain()
	if err := h.catalog.CreateIngredient(c.Context(), &ingredient); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewIngredientResponse(ingredient)})
}

// Update handles PUT /api/ingredients/:id.
func (h *IngredientsHandler) Update(c *fiber.Ctx) error {
	var req dto.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ingredient := req.ToDomain()
	ingredient.ID = c.Params("id")
	if err := h.catalog.UpdateIngredient(c.Context(), &ingredient); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientResponse(ingredient)})
}

// Delete handles DELETE /api/ingredients/:id.
func (h *IngredientsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteIngredient(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetStock handles PUT /api/ingredients/:id/stock, the hook point that drives
// the update stream.
func (h *IngredientsHandler) SetStock(c *fiber.Ctx) error {
	var req dto.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.catalog.SetIngredientStock(c.Context(), c.Params("id"), req.InStock); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"in_stock": req.InStock}})
}

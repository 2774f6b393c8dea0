package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/dto"
	"github.com/spec-kit/cocktail-service/internal/service"
)

// CocktailsHandler exposes cocktail CRUD.
type CocktailsHandler struct {
	catalog *service.CatalogService
}

// NewCocktailsHandler constructs handler.
func NewCocktailsHandler(catalog *service.CatalogService) *CocktailsHandler {
	return &CocktailsHandler{catalog: catalog}
}

// List handles GET /api/cocktails.
func (h *CocktailsHandler) List(c *fiber.Ctx) error {
	cocktails, err := h.catalog.ListCocktails(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCocktailResponses(cocktails)})
}

// Get handles GET /api/cocktails/:id.
func (h *CocktailsHandler) Get(c *fiber.Ctx) error {
	cocktail, err := h.catalog.GetCocktail(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCocktailResponse(*cocktail)})
}

// Create handles POST /api/cocktails.
func (h *CocktailsHandler) Create(c *fiber.Ctx) error {
	var req dto.CocktailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	cocktail := req.ToDomain()
	if err := h.catalog.CreateCocktail(c.Context(), &cocktail); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCocktailResponse(cocktail)})
}

// Update handles PUT /api/cocktails/:id.
func (h *CocktailsHandler) Update(c *fiber.Ctx) error {
	var req dto.CocktailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	cocktail := req.ToDomain()
	cocktail.ID = c.Params("id")
	if err := h.catalog.UpdateCocktail(c.Context(), &cocktail); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCocktailResponse(cocktail)})
}

// Delete handles DELETE /api/cocktails/:id.
func (h *CocktailsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCocktail(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

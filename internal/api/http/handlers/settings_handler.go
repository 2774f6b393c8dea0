package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/dto"
	"github.com/spec-kit/cocktail-service/internal/domain"
	"github.com/spec-kit/cocktail-service/internal/repository"
)

// SettingsHandler exposes venue settings. Reads sit behind the customer
// perimeter, writes behind the staff perimeter.
type SettingsHandler struct {
	settings repository.SettingsRepository
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List handles GET /api/settings.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settings.List(c.Context())
	if err != nil {
		return err
	}

	values := fiber.Map{}
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return c.JSON(fiber.Map{"data": values})
}

// Put handles PUT /api/settings/:key.
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	setting := domain.Setting{Key: c.Params("key"), Value: req.Value}
	if err := h.settings.Upsert(c.Context(), &setting); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{setting.Key: setting.Value}})
}

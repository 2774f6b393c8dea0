package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/dto"
	"github.com/spec-kit/cocktail-service/internal/service"
)

// AvailabilityHandler exposes the classified availability and impact queries.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Classified handles GET /api/availability.
func (h *AvailabilityHandler) Classified(c *fiber.Ctx) error {
	result, err := h.availability.Classified(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAvailabilityResponse(result)})
}

// Impact handles GET /api/availability/impact.
func (h *AvailabilityHandler) Impact(c *fiber.Ctx) error {
	report, err := h.availability.Impact(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewImpactResponses(report)})
}

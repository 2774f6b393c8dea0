package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/http/handlers"
	"github.com/spec-kit/cocktail-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Ingredients  *handlers.IngredientsHandler
	Cocktails    *handlers.CocktailsHandler
	Availability *handlers.AvailabilityHandler
	Settings     *handlers.SettingsHandler
	Stream       *handlers.StreamHandler
	Gate         *auth.Gate
}

// RegisterRoutes wires HTTP routes. Every route runs behind the access gate;
// the gate's own allowlist keeps health and customer-token issuance public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/customer/token", cfg.Auth.CustomerToken)
	authGroup.Post("/staff/login", cfg.Auth.StaffLogin)
	authGroup.Post("/staff/logout", cfg.Auth.StaffLogout)
	authGroup.Get("/staff/status", cfg.Auth.StaffStatus)

	api := app.Group("/api")

	api.Get("/ingredients", cfg.Ingredients.List)
	api.Post("/ingredients", cfg.Ingredients.Create)
	api.Get("/ingredients/:id", cfg.Ingredients.Get)
	api.Put("/ingredients/:id", cfg.Ingredients.Update)
	api.Delete("/ingredients/:id", cfg.Ingredients.Delete)
	api.Put("/ingredients/:id/stock", cfg.Ingredients.SetStock)

	api.Get("/cocktails", cfg.Cocktails.List)
	api.Post("/cocktails", cfg.Cocktails.Create)
	api.Get("/cocktails/:id", cfg.Cocktails.Get)
	api.Put("/cocktails/:id", cfg.Cocktails.Update)
	api.Delete("/cocktails/:id", cfg.Cocktails.Delete)

	api.Get("/availability", cfg.Availability.Classified)
	api.Get("/availability/impact", cfg.Availability.Impact)

	api.Get("/settings", cfg.Settings.List)
	api.Put("/settings/:key", cfg.Settings.Put)

	api.Get("/stream", cfg.Stream.Subscribe)
}

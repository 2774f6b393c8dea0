package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/api/dto"
	"github.com/spec-kit/cocktail-service/internal/auth"
	"github.com/spec-kit/cocktail-service/internal/config"
	"github.com/spec-kit/cocktail-service/internal/service"
)

// AuthHandler exposes the customer token and staff session surfaces.
type AuthHandler struct {
	authService *service.AuthService
	secureCooky bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, appEnv string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		secureCooky: appEnv == "production",
	}
}

// CustomerToken handles POST /auth/customer/token.
func (h *AuthHandler) CustomerToken(c *fiber.Ctx) error {
	token := h.authService.IssueCustomerToken()
	expires := time.Now().Add(config.CustomerTokenLifetime)

	c.Cookie(&fiber.Cookie{
		Name:     auth.CustomerTokenCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCooky,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": dto.CustomerTokenResponse{Token: token, ExpiresAt: expires},
	})
}

// StaffLogin handles POST /auth/staff/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	staff, sessionID, err := h.authService.LoginStaff(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.StaffSessionCookie,
		Value:    sessionID,
		HTTPOnly: true,
		Secure:   h.secureCooky,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"name": staff.Name,
			"role": string(staff.Role),
		},
	})
}

// StaffLogout handles POST /auth/staff/logout.
func (h *AuthHandler) StaffLogout(c *fiber.Ctx) error {
	sessionID := c.Cookies(auth.StaffSessionCookie)
	h.authService.LogoutStaff(sessionID)

	c.Cookie(&fiber.Cookie{
		Name:     auth.StaffSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCooky,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// StaffStatus handles GET /auth/staff/status. The gate already validated the
// session and stored it in the request context.
func (h *AuthHandler) StaffStatus(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "no staff session")
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionStatusResponse{
			Role:      string(sess.Role),
			CreatedAt: sess.CreatedAt,
		},
	})
}

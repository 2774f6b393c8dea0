package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cocktail-service/internal/domain"
	apperrors "github.com/spec-kit/cocktail-service/pkg/util"
)

func newTestGate(t *testing.T) (*Gate, *CustomerTokenCodec, *SessionStore) {
	t.Helper()
	codec := NewCustomerTokenCodec("gate-secret", 24*time.Hour)
	sessions := newSessionStore(time.Hour, time.Hour, zap.NewNop(), time.Now)
	t.Cleanup(sessions.Close)
	return NewGate(codec, sessions), codec, sessions
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

func TestGateAllowsPublicPathsWithoutCredentials(t *testing.T) {
	gate, _, _ := newTestGate(t)

	for _, path := range []string{"/auth/customer/token", "/health/live", "/health/ready"} {
		_, err := gate.Decide(path, fiber.MethodGet, Credentials{})
		assert.NoError(t, err, path)
	}
}

func TestGateRejectsMissingCustomerToken(t *testing.T) {
	gate, _, _ := newTestGate(t)

	_, err := gate.Decide("/api/cocktails", fiber.MethodGet, Credentials{})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", errCode(t, err))
}

func TestGateRejectsInvalidCustomerToken(t *testing.T) {
	gate, _, _ := newTestGate(t)

	_, err := gate.Decide("/api/cocktails", fiber.MethodGet, Credentials{CustomerToken: "garbage"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", errCode(t, err))
}

func TestGateAllowsReadWithCustomerTokenOnly(t *testing.T) {
	gate, codec, _ := newTestGate(t)
	creds := Credentials{CustomerToken: codec.Issue()}

	for _, path := range []string{"/api/cocktails", "/api/ingredients", "/api/availability", "/api/settings", "/api/stream"} {
		sess, err := gate.Decide(path, fiber.MethodGet, creds)
		assert.NoError(t, err, path)
		assert.Nil(t, sess, path)
	}
}

func TestGateStaffRejectionIsDistinctFromCustomerRejection(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	// Valid customer token, no staff session, mutating cocktail endpoint.
	_, err := gate.Decide("/api/cocktails", fiber.MethodPost, Credentials{CustomerToken: codec.Issue()})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestGateRejectsUnknownStaffSession(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	_, err := gate.Decide("/api/ingredients", fiber.MethodPut, Credentials{
		CustomerToken:  codec.Issue(),
		StaffSessionID: "no-such-session",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestGateAllowsStaffMutationWithValidSession(t *testing.T) {
	gate, codec, sessions := newTestGate(t)
	sessionID := sessions.Create(domain.StaffRoleBarkeeper)

	sess, err := gate.Decide("/api/ingredients", fiber.MethodPut, Credentials{
		CustomerToken:  codec.Issue(),
		StaffSessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StaffRoleBarkeeper, sess.Role)
}

func TestGateStaffRulesSkipReads(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	// GET on settings is customer-level only; PUT needs staff.
	_, err := gate.Decide("/api/settings", fiber.MethodGet, Credentials{CustomerToken: codec.Issue()})
	assert.NoError(t, err)

	_, err = gate.Decide("/api/settings/theme", fiber.MethodPut, Credentials{CustomerToken: codec.Issue()})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestGateStaffLoginNeedsOnlyCustomerToken(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	_, err := gate.Decide("/auth/staff/login", fiber.MethodPost, Credentials{CustomerToken: codec.Issue()})
	assert.NoError(t, err)

	_, err = gate.Decide("/auth/staff/status", fiber.MethodGet, Credentials{CustomerToken: codec.Issue()})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestGateMiddlewareReadsHeaderAndCookies(t *testing.T) {
	gate, codec, sessions := newTestGate(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	app.Use(gate.Handle)
	app.Put("/api/ingredients/:id/stock", func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"role": string(sess.Role)})
	})

	req := httptest.NewRequest(fiber.MethodPut, "/api/ingredients/42/stock", nil)
	req.Header.Set(CustomerTokenHeader, codec.Issue())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "no staff cookie yet")

	sessionID := sessions.Create(domain.StaffRoleAdmin)
	req = httptest.NewRequest(fiber.MethodPut, "/api/ingredients/42/stock", nil)
	req.Header.Set(CustomerTokenHeader, codec.Issue())
	req.Header.Set("Cookie", StaffSessionCookie+"="+sessionID)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

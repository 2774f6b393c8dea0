package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cocktail-service/internal/domain"
	apperrors "github.com/spec-kit/cocktail-service/pkg/util"
)

const (
	// CustomerTokenHeader carries the customer token on API calls.
	CustomerTokenHeader = "X-Customer-Token"
	// CustomerTokenCookie is the cookie fallback for browser clients.
	CustomerTokenCookie = "customer_token"
	// StaffSessionCookie carries the staff session id.
	StaffSessionCookie = "staff_session"

	sessionKey = "staff_session_ctx"
)

// Credentials are the authentication inputs extracted from one request.
type Credentials struct {
	CustomerToken  string
	StaffSessionID string
}

// routeRule matches requests by path prefix and, optionally, methods.
// An empty method list matches every method.
type routeRule struct {
	prefix  string
	methods []string
}

func (r routeRule) matches(path, method string) bool {
	if !strings.HasPrefix(path, r.prefix) {
		return false
	}
	if len(r.methods) == 0 {
		return true
	}
	for _, m := range r.methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// Gate is the single request-gating filter. The customer token is the outer
// perimeter (the whole app sits behind a venue QR-code wall); staff sessions
// are an inner perimeter for privileged mutations.
type Gate struct {
	codec    *CustomerTokenCodec
	sessions *SessionStore

	public     []routeRule
	staffRules []routeRule
}

// NewGate builds the gate with the service's route policy.
func NewGate(codec *CustomerTokenCodec, sessions *SessionStore) *Gate {
	mutating := []string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete}

	return &Gate{
		codec:    codec,
		sessions: sessions,
		public: []routeRule{
			{prefix: "/auth/customer"},
			{prefix: "/health"},
		},
		staffRules: []routeRule{
			{prefix: "/api/ingredients", methods: mutating},
			{prefix: "/api/cocktails", methods: mutating},
			{prefix: "/api/settings", methods: mutating},
			{prefix: "/auth/staff/logout"},
			{prefix: "/auth/staff/status"},
		},
	}
}

// Decide evaluates the request policy. It returns the validated staff session
// when the staff perimeter was checked, and a nil error when the request is
// allowed. The two perimeters fail with distinct reasons.
func (g *Gate) Decide(path, method string, creds Credentials) (*domain.Session, error) {
	for _, rule := range g.public {
		if rule.matches(path, method) {
			return nil, nil
		}
	}

	if creds.CustomerToken == "" || !g.codec.Verify(creds.CustomerToken) {
		return nil, apperrors.NewUnauthenticated("missing or invalid customer token")
	}

	for _, rule := range g.staffRules {
		if !rule.matches(path, method) {
			continue
		}
		if creds.StaffSessionID == "" {
			return nil, apperrors.NewUnauthorized("staff session required")
		}
		sess, ok := g.sessions.Validate(creds.StaffSessionID)
		if !ok {
			return nil, apperrors.NewUnauthorized("staff session invalid or expired")
		}
		return &sess, nil
	}

	return nil, nil
}

// Handle enforces the gate as fiber middleware.
func (g *Gate) Handle(c *fiber.Ctx) error {
	sess, err := g.Decide(c.Path(), c.Method(), CredentialsFromRequest(c))
	if err != nil {
		return err
	}
	if sess != nil {
		c.Locals(sessionKey, sess)
	}
	return c.Next()
}

// CredentialsFromRequest extracts auth inputs from header and cookies.
func CredentialsFromRequest(c *fiber.Ctx) Credentials {
	token := c.Get(CustomerTokenHeader)
	if token == "" {
		token = c.Cookies(CustomerTokenCookie)
	}
	return Credentials{
		CustomerToken:  token,
		StaffSessionID: c.Cookies(StaffSessionCookie),
	}
}

// SessionFromContext retrieves the staff session validated by the gate.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok
}

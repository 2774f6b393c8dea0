package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/cocktail-service/internal/auth"
	"github.com/spec-kit/cocktail-service/internal/config"
	"github.com/spec-kit/cocktail-service/internal/domain"
	"github.com/spec-kit/cocktail-service/internal/repository"
	apperrors "github.com/spec-kit/cocktail-service/pkg/util"
)

// AuthService coordinates customer token issuance and staff login flows.
type AuthService struct {
	staff    repository.StaffRepository
	sessions *auth.SessionStore
	codec    *auth.CustomerTokenCodec
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	StaffRepo repository.StaffRepository
	Sessions  *auth.SessionStore
	Codec     *auth.CustomerTokenCodec
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:    deps.StaffRepo,
		sessions: deps.Sessions,
		codec:    deps.Codec,
	}
}

// IssueCustomerToken mints a fresh stateless customer token.
func (s *AuthService) IssueCustomerToken() string {
	return s.codec.Issue()
}

// LoginStaff authenticates a staff member and opens a session.
func (s *AuthService) LoginStaff(ctx context.Context, username, password string) (*domain.StaffMember, string, error) {
	staff, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if !staff.Active {
		return nil, "", apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid credentials")
	}

	sessionID := s.sessions.Create(staff.Role)
	return staff, sessionID, nil
}

// LogoutStaff terminates the session. Unknown ids are a no-op.
func (s *AuthService) LogoutStaff(sessionID string) {
	s.sessions.Terminate(sessionID)
}

// EnsureBootstrapAdmin seeds the first admin account on an empty staff table
// so a fresh deployment can be logged into.
func EnsureBootstrapAdmin(ctx context.Context, repo repository.StaffRepository, cfg config.AuthConfig, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.BootstrapAdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.StaffMember{
		Name:         "Administrator",
		Username:     "admin",
		PasswordHash: hash,
		Role:         domain.StaffRoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("seeded bootstrap admin account", zap.String("username", admin.Username))
	return nil
}

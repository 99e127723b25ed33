package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// UserRepository is the persistence surface needed by the auth service
type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	TouchLastSignedIn(ctx context.Context, id uint) error
}

// LoginInput contains credentials for a login attempt
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful login: the signed-in user and their session
type LoginResult struct {
	User    *models.User       `json:"user"`
	Session *auth.SessionToken `json:"session"`
}

// AuthService handles administrator authentication
type AuthService struct {
	userRepo   UserRepository
	admins     *auth.AdminAccountRegistry
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo UserRepository,
	admins *auth.AdminAccountRegistry,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		admins:     admins,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates against the provisioned administrator accounts,
// records the user row, and issues a session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	account := s.admins.FindByEmail(input.Email)
	if account == nil {
		s.logger.Warn("Unknown admin email during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user := &models.User{
		OpenID:      account.OpenID,
		Name:        account.Name,
		Email:       account.Email,
		LoginMethod: "password",
		Role:        models.UserRoleAdmin,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.logger.Error("Failed to record signed-in user", zap.Error(err))
		return nil, err
	}

	session, err := s.jwtService.GenerateSession(auth.GenerateSessionInput{
		UserID: user.ID,
		OpenID: user.OpenID,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue session token")
	}

	s.logger.Info("Login successful",
		zap.Uint("user_id", user.ID),
		zap.String("open_id", user.OpenID),
	)

	return &LoginResult{User: user, Session: session}, nil
}

// CurrentUser resolves the user row behind an authenticated session and
// refreshes its activity timestamp. The refresh is best effort; a stale
// timestamp never fails the lookup.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.TouchLastSignedIn(ctx, user.ID); err != nil {
		s.logger.Debug("Failed to refresh last_signed_in", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

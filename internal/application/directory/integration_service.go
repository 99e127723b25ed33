package directory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// IntegrationRepository is the persistence surface needed by the
// integration service
type IntegrationRepository interface {
	ListByEmployee(ctx context.Context, employeeID uint) ([]models.CommunicationIntegration, error)
	Upsert(ctx context.Context, integration *models.CommunicationIntegration) error
	Delete(ctx context.Context, employeeID uint, platform models.IntegrationPlatform) error
}

// ConnectIntegrationInput contains credentials for linking a platform to an
// employee
type ConnectIntegrationInput struct {
	EmployeeID     uint
	Platform       models.IntegrationPlatform
	ExternalID     string
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
}

// IntegrationService manages per-employee communication platform links
type IntegrationService struct {
	integrations IntegrationRepository
	employees    EmployeeRepository
	logger       *zap.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(
	integrations IntegrationRepository,
	employees EmployeeRepository,
	logger *zap.Logger,
) *IntegrationService {
	return &IntegrationService{
		integrations: integrations,
		employees:    employees,
		logger:       logger,
	}
}

// List returns all platform links for an employee.
func (s *IntegrationService) List(ctx context.Context, employeeID uint) ([]models.CommunicationIntegration, error) {
	return s.integrations.ListByEmployee(ctx, employeeID)
}

// Connect links a platform to an employee, overwriting an existing link for
// the same platform.
func (s *IntegrationService) Connect(ctx context.Context, input ConnectIntegrationInput) (*models.CommunicationIntegration, error) {
	if !input.Platform.Valid() {
		return nil, shared.ErrInvalidInput
	}

	if _, err := s.employees.FindByID(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	integration := &models.CommunicationIntegration{
		EmployeeID:     input.EmployeeID,
		Platform:       input.Platform,
		ExternalID:     input.ExternalID,
		AccessToken:    input.AccessToken,
		RefreshToken:   input.RefreshToken,
		TokenExpiresAt: input.TokenExpiresAt,
	}
	if err := s.integrations.Upsert(ctx, integration); err != nil {
		s.logger.Warn("Failed to connect integration",
			zap.Uint("employee_id", input.EmployeeID),
			zap.String("platform", string(input.Platform)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Integration connected",
		zap.Uint("employee_id", input.EmployeeID),
		zap.String("platform", string(input.Platform)))

	return integration, nil
}

// Disconnect removes the platform link for an employee.
func (s *IntegrationService) Disconnect(ctx context.Context, employeeID uint, platform models.IntegrationPlatform) error {
	if !platform.Valid() {
		return shared.ErrInvalidInput
	}

	if err := s.integrations.Delete(ctx, employeeID, platform); err != nil {
		return err
	}

	s.logger.Info("Integration disconnected",
		zap.Uint("employee_id", employeeID),
		zap.String("platform", string(platform)))
	return nil
}

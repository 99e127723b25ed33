package directory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// ErrEmployeeNotFound carries the user-facing message for a missing employee.
var ErrEmployeeNotFound = shared.NewDomainError("NOT_FOUND", "Funcionário não encontrado")

// EmployeeRepository is the persistence surface needed by the employee service
type EmployeeRepository interface {
	List(ctx context.Context) ([]persistence.EmployeeRow, error)
	FindByID(ctx context.Context, id uint) (*persistence.EmployeeRow, error)
	FindByUserID(ctx context.Context, userID uint) (*persistence.EmployeeRow, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// CreateEmployeeInput contains attributes for a new employee record
type CreateEmployeeInput struct {
	UserID     uint
	FullName   string
	AvatarURL  string
	Position   string
	Department string
	HireDate   *time.Time
	Status     models.EmployeeStatus
	Bio        string
	Phone      string
}

// UpdateEmployeeInput is a partial employee update; nil fields stay untouched
type UpdateEmployeeInput struct {
	FullName   *string
	AvatarURL  *string
	Position   *string
	Department *string
	HireDate   *time.Time
	Status     *models.EmployeeStatus
	Bio        *string
	Phone      *string
}

func (in UpdateEmployeeInput) fields() map[string]any {
	fields := map[string]any{}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}
	if in.Department != nil {
		fields["department"] = *in.Department
	}
	if in.HireDate != nil {
		fields["hire_date"] = *in.HireDate
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	return fields
}

// EmployeeService handles the employee directory
type EmployeeService struct {
	employees EmployeeRepository
	logger    *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, logger: logger}
}

// List returns all employees joined with their account email.
func (s *EmployeeService) List(ctx context.Context) ([]persistence.EmployeeRow, error) {
	return s.employees.List(ctx)
}

// Get returns a single employee.
func (s *EmployeeService) Get(ctx context.Context, id uint) (*persistence.EmployeeRow, error) {
	row, err := s.employees.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return row, err
}

// GetByUserID returns the employee record linked to a user account.
func (s *EmployeeService) GetByUserID(ctx context.Context, userID uint) (*persistence.EmployeeRow, error) {
	row, err := s.employees.FindByUserID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return row, err
}

// Create records a new employee and returns the stored row.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*persistence.EmployeeRow, error) {
	status := input.Status
	if status == "" {
		status = models.EmployeeStatusActive
	}
	if !status.Valid() {
		return nil, shared.ErrInvalidInput
	}

	employee := &models.Employee{
		UserID:     input.UserID,
		FullName:   input.FullName,
		AvatarURL:  input.AvatarURL,
		Position:   input.Position,
		Department: input.Department,
		HireDate:   input.HireDate,
		Status:     status,
		Bio:        input.Bio,
		Phone:      input.Phone,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		s.logger.Warn("Failed to create employee",
			zap.Uint("user_id", input.UserID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.Uint("employee_id", employee.ID),
		zap.Uint("user_id", employee.UserID))

	return s.Get(ctx, employee.ID)
}

// Update applies a partial update and returns the stored row.
func (s *EmployeeService) Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*persistence.EmployeeRow, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, shared.ErrInvalidInput
	}

	if err := s.employees.Update(ctx, id, input.fields()); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an employee. Fails while the employee still owns projects.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	err := s.employees.Delete(ctx, id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return ErrEmployeeNotFound
	case err != nil:
		s.logger.Warn("Failed to delete employee", zap.Uint("employee_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Employee deleted", zap.Uint("employee_id", id))
	return nil
}

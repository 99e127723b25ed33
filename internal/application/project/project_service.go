package project

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// ErrProjectNotFound carries the user-facing message for a missing project.
var ErrProjectNotFound = shared.NewDomainError("NOT_FOUND", "Projeto não encontrado")

// Repository is the persistence surface needed by the project service
type Repository interface {
	List(ctx context.Context) ([]persistence.ProjectRow, error)
	FindByID(ctx context.Context, id uint) (*persistence.ProjectRow, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error

	ListMembers(ctx context.Context, projectID uint) ([]persistence.ProjectMemberRow, error)
	AddMember(ctx context.Context, member *models.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, employeeID uint) error

	ListDependencies(ctx context.Context, projectID uint) ([]persistence.ProjectDependencyRow, error)
	AddDependency(ctx context.Context, link *models.ProjectDependency) error
	RemoveDependency(ctx context.Context, projectID, dependencyID uint) error
}

// CreateProjectInput contains attributes for a new project
type CreateProjectInput struct {
	Name        string
	Description string
	RepoURL     string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   uint
}

// UpdateProjectInput is a partial project update; nil fields stay untouched
type UpdateProjectInput struct {
	Name        *string
	Description *string
	RepoURL     *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

func (in UpdateProjectInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.RepoURL != nil {
		fields["repo_url"] = *in.RepoURL
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.StartDate != nil {
		fields["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		fields["end_date"] = *in.EndDate
	}
	return fields
}

// AddMemberInput links an employee to a project
type AddMemberInput struct {
	ProjectID  uint
	EmployeeID uint
	Role       string
}

// AddDependencyInput links a catalog dependency to a project
type AddDependencyInput struct {
	ProjectID    uint
	DependencyID uint
	VersionUsed  string
}

// Service handles projects, their members and their dependency links
type Service struct {
	projects Repository
	logger   *zap.Logger
}

// NewService creates a new project service
func NewService(projects Repository, logger *zap.Logger) *Service {
	return &Service{projects: projects, logger: logger}
}

// List returns all projects joined with their creator's name.
func (s *Service) List(ctx context.Context) ([]persistence.ProjectRow, error) {
	return s.projects.List(ctx)
}

// Get returns a single project.
func (s *Service) Get(ctx context.Context, id uint) (*persistence.ProjectRow, error) {
	row, err := s.projects.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	return row, err
}

// Create records a new project and returns the stored row.
func (s *Service) Create(ctx context.Context, input CreateProjectInput) (*persistence.ProjectRow, error) {
	status := input.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	if !status.Valid() {
		return nil, shared.ErrInvalidInput
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		RepoURL:     input.RepoURL,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Warn("Failed to create project",
			zap.String("name", input.Name),
			zap.Uint("created_by", input.CreatedBy),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.String("name", project.Name))

	return s.Get(ctx, project.ID)
}

// Update applies a partial update and returns the stored row.
func (s *Service) Update(ctx context.Context, id uint, input UpdateProjectInput) (*persistence.ProjectRow, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, shared.ErrInvalidInput
	}

	if err := s.projects.Update(ctx, id, input.fields()); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a project; memberships and dependency links go with it.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.projects.Delete(ctx, id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return ErrProjectNotFound
	case err != nil:
		s.logger.Warn("Failed to delete project", zap.Uint("project_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Project deleted", zap.Uint("project_id", id))
	return nil
}

// ListMembers returns the memberships of a project.
func (s *Service) ListMembers(ctx context.Context, projectID uint) ([]persistence.ProjectMemberRow, error) {
	return s.projects.ListMembers(ctx, projectID)
}

// AddMember links an employee to a project. A second link for the same pair
// fails with ALREADY_EXISTS.
func (s *Service) AddMember(ctx context.Context, input AddMemberInput) (*models.ProjectMember, error) {
	member := &models.ProjectMember{
		ProjectID:  input.ProjectID,
		EmployeeID: input.EmployeeID,
		Role:       input.Role,
	}
	if err := s.projects.AddMember(ctx, member); err != nil {
		s.logger.Warn("Failed to add project member",
			zap.Uint("project_id", input.ProjectID),
			zap.Uint("employee_id", input.EmployeeID),
			zap.Error(err))
		return nil, err
	}
	return member, nil
}

// RemoveMember unlinks an employee from a project.
func (s *Service) RemoveMember(ctx context.Context, projectID, employeeID uint) error {
	return s.projects.RemoveMember(ctx, projectID, employeeID)
}

// ListDependencies returns the dependency links of a project.
func (s *Service) ListDependencies(ctx context.Context, projectID uint) ([]persistence.ProjectDependencyRow, error) {
	return s.projects.ListDependencies(ctx, projectID)
}

// AddDependency links a catalog entry to a project. A second link for the
// same pair fails with ALREADY_EXISTS.
func (s *Service) AddDependency(ctx context.Context, input AddDependencyInput) (*models.ProjectDependency, error) {
	link := &models.ProjectDependency{
		ProjectID:    input.ProjectID,
		DependencyID: input.DependencyID,
		VersionUsed:  input.VersionUsed,
	}
	if err := s.projects.AddDependency(ctx, link); err != nil {
		s.logger.Warn("Failed to add project dependency",
			zap.Uint("project_id", input.ProjectID),
			zap.Uint("dependency_id", input.DependencyID),
			zap.Error(err))
		return nil, err
	}
	return link, nil
}

// RemoveDependency unlinks a catalog entry from a project.
func (s *Service) RemoveDependency(ctx context.Context, projectID, dependencyID uint) error {
	return s.projects.RemoveDependency(ctx, projectID, dependencyID)
}

package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// ErrDependencyNotFound carries the user-facing message for a missing
// catalog entry.
var ErrDependencyNotFound = shared.NewDomainError("NOT_FOUND", "Dependência não encontrada")

// Repository is the persistence surface needed by the catalog service
type Repository interface {
	List(ctx context.Context) ([]models.Dependency, error)
	FindByID(ctx context.Context, id uint) (*models.Dependency, error)
	Create(ctx context.Context, dep *models.Dependency) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// CreateDependencyInput contains attributes for a new catalog entry
type CreateDependencyInput struct {
	Name              string
	Category          models.DependencyCategory
	Version           string
	Description       string
	DocumentationURL  string
	InstallationGuide string
}

// UpdateDependencyInput is a partial catalog update; nil fields stay
// untouched
type UpdateDependencyInput struct {
	Name              *string
	Category          *models.DependencyCategory
	Version           *string
	Description       *string
	DocumentationURL  *string
	InstallationGuide *string
}

func (in UpdateDependencyInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Version != nil {
		fields["version"] = *in.Version
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.DocumentationURL != nil {
		fields["documentation_url"] = *in.DocumentationURL
	}
	if in.InstallationGuide != nil {
		fields["installation_guide"] = *in.InstallationGuide
	}
	return fields
}

// Service manages the shared dependency catalog
type Service struct {
	catalog Repository
	logger  *zap.Logger
}

// NewService creates a new catalog service
func NewService(catalog Repository, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// List returns all catalog entries.
func (s *Service) List(ctx context.Context) ([]models.Dependency, error) {
	return s.catalog.List(ctx)
}

// Get returns a single catalog entry.
func (s *Service) Get(ctx context.Context, id uint) (*models.Dependency, error) {
	dep, err := s.catalog.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrDependencyNotFound
	}
	return dep, err
}

// Create records a new catalog entry.
func (s *Service) Create(ctx context.Context, input CreateDependencyInput) (*models.Dependency, error) {
	if !input.Category.Valid() {
		return nil, shared.ErrInvalidInput
	}

	dep := &models.Dependency{
		Name:              input.Name,
		Category:          input.Category,
		Version:           input.Version,
		Description:       input.Description,
		DocumentationURL:  input.DocumentationURL,
		InstallationGuide: input.InstallationGuide,
	}
	if err := s.catalog.Create(ctx, dep); err != nil {
		s.logger.Warn("Failed to create dependency",
			zap.String("name", input.Name),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Dependency created",
		zap.Uint("dependency_id", dep.ID),
		zap.String("name", dep.Name))
	return dep, nil
}

// Update applies a partial update and returns the stored entry.
func (s *Service) Update(ctx context.Context, id uint, input UpdateDependencyInput) (*models.Dependency, error) {
	if input.Category != nil && !input.Category.Valid() {
		return nil, shared.ErrInvalidInput
	}

	if err := s.catalog.Update(ctx, id, input.fields()); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrDependencyNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a catalog entry; project links cascade.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.catalog.Delete(ctx, id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return ErrDependencyNotFound
	case err != nil:
		s.logger.Warn("Failed to delete dependency", zap.Uint("dependency_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Dependency deleted", zap.Uint("dependency_id", id))
	return nil
}

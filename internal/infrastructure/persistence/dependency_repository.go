package persistence

import (
	"context"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// GormDependencyRepository persists catalog Dependency rows.
type GormDependencyRepository struct {
	store *Store
}

// NewGormDependencyRepository creates a new GormDependencyRepository
func NewGormDependencyRepository(store *Store) *GormDependencyRepository {
	return &GormDependencyRepository{store: store}
}

// List returns all catalog entries, newest first. Returns an empty slice,
// never an error, when storage is unreachable.
func (r *GormDependencyRepository) List(ctx context.Context) ([]models.Dependency, error) {
	deps := []models.Dependency{}
	if !r.store.Available() {
		return deps, nil
	}
	err := r.store.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&deps).Error
	if err != nil {
		return nil, translateError(err)
	}
	return deps, nil
}

// FindByID returns a single catalog entry.
func (r *GormDependencyRepository) FindByID(ctx context.Context, id uint) (*models.Dependency, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var dep models.Dependency
	if err := r.store.DB().WithContext(ctx).First(&dep, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &dep, nil
}

// Create inserts a new catalog entry.
func (r *GormDependencyRepository) Create(ctx context.Context, dep *models.Dependency) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	return translateError(r.store.DB().WithContext(ctx).Create(dep).Error)
}

// Update applies a partial attribute set to the catalog entry with the given id.
func (r *GormDependencyRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	if len(fields) == 0 {
		return r.exists(ctx, id)
	}
	result := r.store.DB().WithContext(ctx).
		Model(&models.Dependency{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the catalog entry; project links cascade.
func (r *GormDependencyRepository) Delete(ctx context.Context, id uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).Delete(&models.Dependency{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDependencyRepository) exists(ctx context.Context, id uint) error {
	var count int64
	if err := r.store.DB().WithContext(ctx).
		Model(&models.Dependency{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package persistence

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// GormIntegrationRepository persists per-employee communication platform
// credential records.
type GormIntegrationRepository struct {
	store *Store
}

// NewGormIntegrationRepository creates a new GormIntegrationRepository
func NewGormIntegrationRepository(store *Store) *GormIntegrationRepository {
	return &GormIntegrationRepository{store: store}
}

// ListByEmployee returns all integration records for an employee. Returns an
// empty slice, never an error, when storage is unreachable.
func (r *GormIntegrationRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]models.CommunicationIntegration, error) {
	integrations := []models.CommunicationIntegration{}
	if !r.store.Available() {
		return integrations, nil
	}
	err := r.store.DB().WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("connected_at DESC").
		Find(&integrations).Error
	if err != nil {
		return nil, translateError(err)
	}
	return integrations, nil
}

// Upsert inserts an integration record, or overwrites the credential fields
// of the existing (employee, platform) row.
func (r *GormIntegrationRepository) Upsert(ctx context.Context, integration *models.CommunicationIntegration) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	integration.UpdatedAt = time.Now()
	return translateError(r.store.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"external_id", "access_token", "refresh_token",
				"token_expires_at", "updated_at",
			}),
		}).
		Create(integration).Error)
}

// Delete removes the integration record identified by its composite key.
func (r *GormIntegrationRepository) Delete(ctx context.Context, employeeID uint, platform models.IntegrationPlatform) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).
		Where("employee_id = ? AND platform = ?", employeeID, platform).
		Delete(&models.CommunicationIntegration{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

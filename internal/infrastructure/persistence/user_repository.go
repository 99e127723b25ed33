package persistence

import (
	"context"
	"time"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm/clause"
)

// GormUserRepository persists User rows.
type GormUserRepository struct {
	store *Store
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(store *Store) *GormUserRepository {
	return &GormUserRepository{store: store}
}

// Upsert inserts the user or, when a row with the same open id exists,
// refreshes its mutable identity fields and last-signed-in timestamp.
func (r *GormUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	if user.OpenID == "" {
		return shared.ErrInvalidInput
	}
	if user.LastSignedIn.IsZero() {
		user.LastSignedIn = time.Now()
	}

	err := r.store.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "open_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "login_method", "role", "last_signed_in", "updated_at"}),
		}).
		Create(user).Error
	return translateError(err)
}

// FindByOpenID returns the user with the given external login identifier.
// Absent rows and an unavailable store both report shared.ErrNotFound.
func (r *GormUserRepository) FindByOpenID(ctx context.Context, openID string) (*models.User, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var user models.User
	if err := r.store.DB().WithContext(ctx).
		Where("open_id = ?", openID).
		First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var user models.User
	if err := r.store.DB().WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// TouchLastSignedIn updates the last-signed-in timestamp for the given user.
func (r *GormUserRepository) TouchLastSignedIn(ctx context.Context, id uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	err := r.store.DB().WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_signed_in", time.Now()).Error
	return translateError(err)
}

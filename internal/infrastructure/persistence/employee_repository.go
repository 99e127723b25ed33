package persistence

import (
	"context"
	"time"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// EmployeeRow is the list/detail read shape for employees: the employee
// columns enriched with the linked user's email.
type EmployeeRow struct {
	ID         uint                  `json:"id"`
	UserID     uint                  `json:"userId"`
	FullName   string                `json:"fullName"`
	AvatarURL  string                `json:"avatarUrl"`
	Position   string                `json:"position"`
	Department string                `json:"department"`
	HireDate   *time.Time            `json:"hireDate"`
	Status     models.EmployeeStatus `json:"status"`
	Bio        string                `json:"bio"`
	Phone      string                `json:"phone"`
	Email      *string               `json:"email"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

const employeeRowSelect = "employees.id, employees.user_id, employees.full_name, " +
	"employees.avatar_url, employees.position, employees.department, employees.hire_date, " +
	"employees.status, employees.bio, employees.phone, users.email AS email, " +
	"employees.created_at, employees.updated_at"

// GormEmployeeRepository persists Employee rows.
type GormEmployeeRepository struct {
	store *Store
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(store *Store) *GormEmployeeRepository {
	return &GormEmployeeRepository{store: store}
}

// List returns all employees joined with the linked user's email, newest
// first. Returns an empty slice, never an error, when storage is unreachable.
func (r *GormEmployeeRepository) List(ctx context.Context) ([]EmployeeRow, error) {
	rows := []EmployeeRow{}
	if !r.store.Available() {
		return rows, nil
	}
	err := r.store.DB().WithContext(ctx).
		Model(&models.Employee{}).
		Select(employeeRowSelect).
		Joins("LEFT JOIN users ON users.id = employees.user_id").
		Order("employees.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// FindByID returns a single employee with the same join enrichment as List.
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint) (*EmployeeRow, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var rows []EmployeeRow
	err := r.store.DB().WithContext(ctx).
		Model(&models.Employee{}).
		Select(employeeRowSelect).
		Joins("LEFT JOIN users ON users.id = employees.user_id").
		Where("employees.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	return &rows[0], nil
}

// FindByUserID returns the employee profile belonging to the given user,
// with the same join enrichment as List.
func (r *GormEmployeeRepository) FindByUserID(ctx context.Context, userID uint) (*EmployeeRow, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var rows []EmployeeRow
	err := r.store.DB().WithContext(ctx).
		Model(&models.Employee{}).
		Select(employeeRowSelect).
		Joins("LEFT JOIN users ON users.id = employees.user_id").
		Where("employees.user_id = ?", userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	return &rows[0], nil
}

// Create inserts a new employee row.
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	return translateError(r.store.DB().WithContext(ctx).Create(employee).Error)
}

// Update applies a partial attribute set to the employee with the given id.
// Updating a missing id reports shared.ErrNotFound.
func (r *GormEmployeeRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	if len(fields) == 0 {
		return r.exists(ctx, id)
	}
	result := r.store.DB().WithContext(ctx).
		Model(&models.Employee{}).
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

// Delete removes the employee row. Memberships and integration records
// cascade; projects the employee created block the delete.
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).Delete(&models.Employee{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) exists(ctx context.Context, id uint) error {
	var count int64
	if err := r.store.DB().WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package persistence

import (
	"context"
	"time"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

// ProjectRow is the read shape for projects: project columns enriched with
// the creator's display name.
type ProjectRow struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	RepoURL     string               `json:"repoUrl"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	CreatedBy   uint                 `json:"createdBy"`
	CreatorName *string              `json:"creatorName"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ProjectMemberRow is the read shape for project memberships, enriched with
// the employee's display fields.
type ProjectMemberRow struct {
	ID               uint       `json:"id"`
	ProjectID        uint       `json:"projectId"`
	EmployeeID       uint       `json:"employeeId"`
	Role             string     `json:"role"`
	JoinedAt         time.Time  `json:"joinedAt"`
	EmployeeName     *string    `json:"employeeName"`
	EmployeePosition *string    `json:"employeePosition"`
	EmployeeAvatar   *string    `json:"employeeAvatar"`
}

// ProjectDependencyRow is the read shape for project dependency links,
// enriched with the catalog entry's display fields.
type ProjectDependencyRow struct {
	ID                    uint       `json:"id"`
	ProjectID             uint       `json:"projectId"`
	DependencyID          uint       `json:"dependencyId"`
	VersionUsed           string     `json:"versionUsed"`
	AddedAt               time.Time  `json:"addedAt"`
	DependencyName        *string    `json:"dependencyName"`
	DependencyCategory    *string    `json:"dependencyCategory"`
	DependencyDescription *string    `json:"dependencyDescription"`
	DependencyDocURL      *string    `json:"dependencyDocUrl"`
}

const projectRowSelect = "projects.id, projects.name, projects.description, " +
	"projects.repo_url, projects.status, projects.start_date, projects.end_date, " +
	"projects.created_by, employees.full_name AS creator_name, " +
	"projects.created_at, projects.updated_at"

// GormProjectRepository persists Project rows and their member and dependency
// links.
type GormProjectRepository struct {
	store *Store
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(store *Store) *GormProjectRepository {
	return &GormProjectRepository{store: store}
}

// List returns all projects joined with the creator's name, newest first.
// Returns an empty slice, never an error, when storage is unreachable.
func (r *GormProjectRepository) List(ctx context.Context) ([]ProjectRow, error) {
	rows := []ProjectRow{}
	if !r.store.Available() {
		return rows, nil
	}
	err := r.store.DB().WithContext(ctx).
		Model(&models.Project{}).
		Select(projectRowSelect).
		Joins("LEFT JOIN employees ON employees.id = projects.created_by").
		Order("projects.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// FindByID returns a single project with the same join enrichment as List.
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint) (*ProjectRow, error) {
	if !r.store.Available() {
		return nil, shared.ErrNotFound
	}
	var rows []ProjectRow
	err := r.store.DB().WithContext(ctx).
		Model(&models.Project{}).
		Select(projectRowSelect).
		Joins("LEFT JOIN employees ON employees.id = projects.created_by").
		Where("projects.id = ?", id).
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

// Create inserts a new project row. Fails when the creator employee does not
// exist.
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	return translateError(r.store.DB().WithContext(ctx).Create(project).Error)
}

// Update applies a partial attribute set to the project with the given id.
func (r *GormProjectRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	if len(fields) == 0 {
		return r.exists(ctx, id)
	}
	result := r.store.DB().WithContext(ctx).
		Model(&models.Project{}).
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

// Delete removes the project row; member and dependency links cascade.
func (r *GormProjectRepository) Delete(ctx context.Context, id uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListMembers returns the memberships of a project, newest joined first.
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint) ([]ProjectMemberRow, error) {
	rows := []ProjectMemberRow{}
	if !r.store.Available() {
		return rows, nil
	}
	err := r.store.DB().WithContext(ctx).
		Model(&models.ProjectMember{}).
		Select("project_members.id, project_members.project_id, project_members.employee_id, "+
			"project_members.role, project_members.joined_at, "+
			"employees.full_name AS employee_name, employees.position AS employee_position, "+
			"employees.avatar_url AS employee_avatar").
		Joins("LEFT JOIN employees ON employees.id = project_members.employee_id").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.joined_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// AddMember inserts a membership link. A duplicate (project, employee) pair
// fails with shared.ErrAlreadyExists; the first row is unaffected.
func (r *GormProjectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	return translateError(r.store.DB().WithContext(ctx).Create(member).Error)
}

// RemoveMember deletes the membership link identified by its composite key.
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, employeeID uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListDependencies returns the dependency links of a project, newest first.
func (r *GormProjectRepository) ListDependencies(ctx context.Context, projectID uint) ([]ProjectDependencyRow, error) {
	rows := []ProjectDependencyRow{}
	if !r.store.Available() {
		return rows, nil
	}
	err := r.store.DB().WithContext(ctx).
		Model(&models.ProjectDependency{}).
		Select("project_dependencies.id, project_dependencies.project_id, "+
			"project_dependencies.dependency_id, project_dependencies.version_used, "+
			"project_dependencies.added_at, dependencies.name AS dependency_name, "+
			"dependencies.category AS dependency_category, "+
			"dependencies.description AS dependency_description, "+
			"dependencies.documentation_url AS dependency_doc_url").
		Joins("LEFT JOIN dependencies ON dependencies.id = project_dependencies.dependency_id").
		Where("project_dependencies.project_id = ?", projectID).
		Order("project_dependencies.added_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// AddDependency inserts a dependency link. Duplicate pairs fail with
// shared.ErrAlreadyExists.
func (r *GormProjectRepository) AddDependency(ctx context.Context, link *models.ProjectDependency) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	return translateError(r.store.DB().WithContext(ctx).Create(link).Error)
}

// RemoveDependency deletes the dependency link identified by its composite key.
func (r *GormProjectRepository) RemoveDependency(ctx context.Context, projectID, dependencyID uint) error {
	if !r.store.Available() {
		return shared.ErrUnavailable
	}
	result := r.store.DB().WithContext(ctx).
		Where("project_id = ? AND dependency_id = ?", projectID, dependencyID).
		Delete(&models.ProjectDependency{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProjectRepository) exists(ctx context.Context, id uint) error {
	var count int64
	if err := r.store.DB().WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

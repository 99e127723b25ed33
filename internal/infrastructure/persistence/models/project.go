package models

import "time"

// ProjectStatus is the closed set of project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Valid reports whether the status is a member of the closed set.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

// Project is a unit of work. The creator reference is RESTRICT, not CASCADE:
// deleting an employee who created projects is blocked by the database.
type Project struct {
	BaseModel
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	RepoURL     string        `gorm:"type:text" json:"repoUrl"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	CreatedBy   uint          `gorm:"not null;index" json:"createdBy"`

	Creator *Employee `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// ProjectMember links an employee to a project. The (project, employee) pair
// is unique: an employee joins a project at most once concurrently.
type ProjectMember struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"not null;uniqueIndex:idx_project_employee" json:"projectId"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_project_employee" json:"employeeId"`
	Role       string    `gorm:"type:varchar(100)" json:"role"`
	JoinedAt   time.Time `gorm:"not null;autoCreateTime" json:"joinedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM
func (ProjectMember) TableName() string {
	return "project_members"
}

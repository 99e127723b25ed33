package dto

import "time"

// CreateProjectRequest carries attributes for a new project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	RepoURL     string     `json:"repoUrl" binding:"omitempty,url"`
	Status      string     `json:"status" binding:"omitempty,oneof=planning active paused completed archived"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	CreatedBy   uint       `json:"createdBy" binding:"required,min=1"`
}

// UpdateProjectRequest is a partial project update; absent fields stay
// untouched
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	RepoURL     *string    `json:"repoUrl" binding:"omitempty,url"`
	Status      *string    `json:"status" binding:"omitempty,oneof=planning active paused completed archived"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// AddMemberRequest links an employee to a project
type AddMemberRequest struct {
	EmployeeID uint   `json:"employeeId" binding:"required,min=1"`
	Role       string `json:"role" binding:"omitempty,max=100"`
}

// MemberPathRequest identifies a membership in the URL path
type MemberPathRequest struct {
	ID         uint `uri:"id" binding:"required,min=1"`
	EmployeeID uint `uri:"employeeId" binding:"required,min=1"`
}

// AddProjectDependencyRequest links a catalog entry to a project
type AddProjectDependencyRequest struct {
	DependencyID uint   `json:"dependencyId" binding:"required,min=1"`
	VersionUsed  string `json:"versionUsed" binding:"omitempty,max=100"`
}

// DependencyPathRequest identifies a project dependency link in the URL path
type DependencyPathRequest struct {
	ID           uint `uri:"id" binding:"required,min=1"`
	DependencyID uint `uri:"dependencyId" binding:"required,min=1"`
}

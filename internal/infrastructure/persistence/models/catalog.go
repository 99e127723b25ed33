package models

import "time"

// DependencyCategory is the closed set of catalog entry kinds.
type DependencyCategory string

const (
	DependencyCategoryLibrary   DependencyCategory = "library"
	DependencyCategoryFramework DependencyCategory = "framework"
	DependencyCategoryTool      DependencyCategory = "tool"
	DependencyCategoryService   DependencyCategory = "service"
	DependencyCategoryPlatform  DependencyCategory = "platform"
)

// Valid reports whether the category is a member of the closed set.
func (c DependencyCategory) Valid() bool {
	switch c {
	case DependencyCategoryLibrary, DependencyCategoryFramework, DependencyCategoryTool, DependencyCategoryService, DependencyCategoryPlatform:
		return true
	}
	return false
}

// Dependency is a catalog entry for a technology or tool teams rely on.
type Dependency struct {
	BaseModel
	Name              string             `gorm:"type:varchar(200);not null" json:"name"`
	Category          DependencyCategory `gorm:"type:varchar(20);not null" json:"category"`
	Version           string             `gorm:"type:varchar(50)" json:"version"`
	Description       string             `gorm:"type:text" json:"description"`
	DocumentationURL  string             `gorm:"type:text" json:"documentationUrl"`
	InstallationGuide string             `gorm:"type:text" json:"installationGuide"`
}

// TableName returns the table name for GORM
func (Dependency) TableName() string {
	return "dependencies"
}

// ProjectDependency links a catalog entry to a project, optionally pinning
// the version the project actually uses. The (project, dependency) pair is
// unique.
type ProjectDependency struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;uniqueIndex:idx_project_dependency" json:"projectId"`
	DependencyID uint      `gorm:"not null;uniqueIndex:idx_project_dependency" json:"dependencyId"`
	VersionUsed  string    `gorm:"type:varchar(50)" json:"versionUsed"`
	AddedAt      time.Time `gorm:"not null;autoCreateTime" json:"addedAt"`

	Project    *Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Dependency *Dependency `gorm:"foreignKey:DependencyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM
func (ProjectDependency) TableName() string {
	return "project_dependencies"
}

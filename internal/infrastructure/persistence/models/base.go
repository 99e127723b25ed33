package models

import "time"

// BaseModel provides the surrogate key and audit timestamps shared by the
// independently-created entities. Join rows declare their own narrower set.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// AllModels lists every persistence model in migration order. Parents come
// before children so AutoMigrate can create foreign keys in one pass.
func AllModels() []any {
	return []any{
		&User{},
		&Employee{},
		&Project{},
		&ProjectMember{},
		&Dependency{},
		&ProjectDependency{},
		&CommunicationIntegration{},
	}
}

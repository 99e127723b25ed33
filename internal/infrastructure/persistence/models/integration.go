package models

import "time"

// IntegrationPlatform is the closed set of external services an employee can
// connect a credential record for.
type IntegrationPlatform string

const (
	IntegrationPlatformSlack  IntegrationPlatform = "slack"
	IntegrationPlatformGitHub IntegrationPlatform = "github"
	IntegrationPlatformManus  IntegrationPlatform = "manus"
)

// Valid reports whether the platform is a member of the closed set.
func (p IntegrationPlatform) Valid() bool {
	return p == IntegrationPlatformSlack || p == IntegrationPlatformGitHub || p == IntegrationPlatformManus
}

// CommunicationIntegration stores per-employee credentials for an external
// service. One credential set per employee per platform; cascades with the
// employee.
type CommunicationIntegration struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	EmployeeID     uint                `gorm:"not null;uniqueIndex:idx_employee_platform" json:"employeeId"`
	Platform       IntegrationPlatform `gorm:"type:varchar(20);not null;uniqueIndex:idx_employee_platform" json:"platform"`
	ExternalID     string              `gorm:"type:varchar(200)" json:"externalId"`
	AccessToken    string              `gorm:"type:text" json:"-"`
	RefreshToken   string              `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time          `json:"tokenExpiresAt"`
	ConnectedAt    time.Time           `gorm:"not null;autoCreateTime" json:"connectedAt"`
	UpdatedAt      time.Time           `gorm:"not null" json:"updatedAt"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM
func (CommunicationIntegration) TableName() string {
	return "communication_integrations"
}

package dto

import "time"

// CreateEmployeeRequest carries attributes for a new employee record
type CreateEmployeeRequest struct {
	UserID     uint       `json:"userId" binding:"required,min=1"`
	FullName   string     `json:"fullName" binding:"required,max=255"`
	AvatarURL  string     `json:"avatarUrl" binding:"omitempty,url"`
	Position   string     `json:"position" binding:"omitempty,max=255"`
	Department string     `json:"department" binding:"omitempty,max=255"`
	HireDate   *time.Time `json:"hireDate"`
	Status     string     `json:"status" binding:"omitempty,oneof=active inactive"`
	Bio        string     `json:"bio"`
	Phone      string     `json:"phone" binding:"omitempty,max=50"`
}

// UpdateEmployeeRequest is a partial employee update; absent fields stay
// untouched
type UpdateEmployeeRequest struct {
	FullName   *string    `json:"fullName" binding:"omitempty,max=255"`
	AvatarURL  *string    `json:"avatarUrl" binding:"omitempty,url"`
	Position   *string    `json:"position" binding:"omitempty,max=255"`
	Department *string    `json:"department" binding:"omitempty,max=255"`
	HireDate   *time.Time `json:"hireDate"`
	Status     *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	Bio        *string    `json:"bio"`
	Phone      *string    `json:"phone" binding:"omitempty,max=50"`
}

// ConnectIntegrationRequest links a communication platform to an employee
type ConnectIntegrationRequest struct {
	Platform       string     `json:"platform" binding:"required,oneof=slack github manus"`
	ExternalID     string     `json:"externalId" binding:"omitempty,max=255"`
	AccessToken    string     `json:"accessToken"`
	RefreshToken   string     `json:"refreshToken"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt"`
}

// IntegrationPlatformRequest identifies a platform in the URL path
type IntegrationPlatformRequest struct {
	ID       uint   `uri:"id" binding:"required,min=1"`
	Platform string `uri:"platform" binding:"required,oneof=slack github manus"`
}

package models

import "time"

// UserRole is the closed set of privilege levels a user can hold.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// Valid reports whether the role is a member of the closed set.
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// User is the identity anchor for authentication. Every employee profile
// references exactly one user row.
type User struct {
	BaseModel
	OpenID       string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"openId"`
	Name         string    `gorm:"type:text" json:"name"`
	Email        string    `gorm:"type:varchar(320)" json:"email"`
	LoginMethod  string    `gorm:"type:varchar(64)" json:"loginMethod"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	LastSignedIn time.Time `gorm:"not null" json:"lastSignedIn"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// EmployeeStatus is the closed set of employment states.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Valid reports whether the status is a member of the closed set.
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

// Employee extends a user with company profile data. Deleting the user
// cascades to the employee row.
type Employee struct {
	BaseModel
	UserID    uint           `gorm:"not null;index" json:"userId"`
	FullName  string         `gorm:"type:text;not null" json:"fullName"`
	AvatarURL string         `gorm:"type:text" json:"avatarUrl"`
	Position  string         `gorm:"type:varchar(100)" json:"position"`
	Department string        `gorm:"type:varchar(100)" json:"department"`
	HireDate  *time.Time     `json:"hireDate"`
	Status    EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies what a user does in the organization.
type Role string

const (
	RoleEmployee        Role = "employee"
	RoleManager         Role = "manager"
	RoleDepartmentChief Role = "department_chief"
	RoleDRH             Role = "DRH"
)

// AccountState is the account approval lifecycle.
// Accounts are created pending and move exactly once to approved or rejected.
type AccountState string

const (
	AccountPending  AccountState = "pending"
	AccountApproved AccountState = "approved"
	AccountRejected AccountState = "rejected"
)

// User represents an account in the system.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`
	Username  string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON

	Role Role `gorm:"size:50;not null;default:employee" json:"role"`

	// A user belongs to at most one structure and one department.
	StructureID  *uint       `gorm:"index" json:"structure_id,omitempty"`
	Structure    *Structure  `gorm:"foreignKey:StructureID" json:"structure,omitempty"`
	DepartmentID *uint       `gorm:"index" json:"department_id,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	// State is the approval lifecycle; IsActive only flips to true on approval.
	State    AccountState `gorm:"size:20;not null;default:pending" json:"state"`
	IsActive bool         `gorm:"default:false" json:"is_active"`
	// IsStaff grants back-office access. Approved DRH users may be promoted
	// to staff depending on configuration.
	IsStaff bool `gorm:"default:false" json:"is_staff"`

	CreatedBy string `gorm:"size:50" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"size:50" json:"updated_by,omitempty"`
}

// FullName returns "First Last" for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsPending() bool  { return u.State == AccountPending }
func (u *User) IsApproved() bool { return u.State == AccountApproved }
func (u *User) IsRejected() bool { return u.State == AccountRejected }

// CanLogin reports whether the account may open a session.
func (u *User) CanLogin() bool {
	return u.State == AccountApproved && u.IsActive
}

// IsReviewer reports whether the user may act on pending accounts and
// enrollments at all. The scope of that authority is decided by policy.
func (u *User) IsReviewer() bool {
	return u.IsStaff || u.Role == RoleDRH
}

// InStructure reports whether the user belongs to the given structure.
func (u *User) InStructure(structureID uint) bool {
	return u.StructureID != nil && *u.StructureID == structureID
}

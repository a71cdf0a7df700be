package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the lifecycle of a formation registration.
// Pending is the only non-terminal state.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentValidated EnrollmentStatus = "validated"
	// EnrollmentRejected is a reviewer refusal.
	EnrollmentRejected EnrollmentStatus = "rejected"
	// EnrollmentCancelled is a self-service withdrawal by the registrant.
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment records a user's registration for a formation.
// At most one active (pending or validated) enrollment may exist per
// (user, formation) pair; the service layer enforces this in a transaction.
type Enrollment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint  `gorm:"index:idx_enrollment_pair;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	FormationID uint       `gorm:"index:idx_enrollment_pair;not null" json:"formation_id"`
	Formation   *Formation `gorm:"foreignKey:FormationID" json:"formation,omitempty"`

	Status       EnrollmentStatus `gorm:"size:50;not null;default:pending" json:"status"`
	RegisteredAt time.Time        `gorm:"not null" json:"registered_at"`

	// Set when a reviewer validates or rejects the enrollment.
	ValidatedByID *uint      `json:"validated_by_id,omitempty"`
	ValidatedBy   *User      `gorm:"foreignKey:ValidatedByID" json:"validated_by,omitempty"`
	ValidatedAt   *time.Time `json:"validated_at,omitempty"`
}

func (e *Enrollment) IsPending() bool { return e.Status == EnrollmentPending }

// IsTerminal reports whether no further transition is allowed.
func (e *Enrollment) IsTerminal() bool { return e.Status != EnrollmentPending }

// IsActive reports whether this enrollment blocks a new registration for
// the same (user, formation) pair.
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentPending || e.Status == EnrollmentValidated
}

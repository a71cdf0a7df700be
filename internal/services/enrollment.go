package services

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/i18n"
	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentService implements the enrollment state machine:
// pending -> validated | rejected | cancelled, nothing out of a terminal
// state. Every transition runs in one transaction together with its
// notification.
type EnrollmentService struct {
	db   *gorm.DB
	gate *gate.Gate[*models.User]
	app  config.AppConfig
}

func NewEnrollmentService(db *gorm.DB, g *gate.Gate[*models.User], app config.AppConfig) *EnrollmentService {
	return &EnrollmentService{db: db, gate: g, app: app}
}

// Register creates a pending enrollment for the account on the formation.
// Fails with ErrNotFound when the formation does not exist, with
// ErrOutsideStructure when cross-structure signup is disabled and the
// formation belongs to another structure, and with ErrAlreadyRegistered
// when an active enrollment for the pair already exists.
func (s *EnrollmentService) Register(ctx context.Context, account *models.User, formationID uint) (*models.Enrollment, error) {
	var formation models.Formation
	if err := s.db.WithContext(ctx).First(&formation, formationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.app.CrossStructureSignup && !account.InStructure(formation.StructureID) {
		return nil, ErrOutsideStructure
	}

	enrollment := &models.Enrollment{
		UserID:       account.ID,
		FormationID:  formation.ID,
		Status:       models.EnrollmentPending,
		RegisteredAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the registrant row: two racing registrations for the same
		// pair must not both pass the count below.
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, account.ID).Error; err != nil {
			return err
		}
		var active int64
		if err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND formation_id = ? AND status IN ?",
				account.ID, formation.ID,
				[]models.EnrollmentStatus{models.EnrollmentPending, models.EnrollmentValidated}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyRegistered
		}
		return tx.Create(enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	enrollment.Formation = &formation
	return enrollment, nil
}

// Cancel is the registrant's self-service withdrawal, valid only while the
// enrollment is pending. The registrant gets a notification like for any
// other transition.
func (s *EnrollmentService) Cancel(ctx context.Context, account *models.User, enrollmentID uint) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Enrollment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Formation").
			Where("id = ? AND user_id = ?", enrollmentID, account.ID).
			First(&e).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !e.IsPending() {
			return ErrNotPending
		}
		e.Status = models.EnrollmentCancelled
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		msg := i18n.Tf(i18n.DefaultLang, "notif_enrollment_cancelled", e.Formation.Title)
		if err := createNotification(tx, e.UserID, msg); err != nil {
			return err
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Validate moves a pending enrollment to validated on behalf of reviewer.
func (s *EnrollmentService) Validate(ctx context.Context, reviewer *models.User, enrollmentID uint) (*models.Enrollment, error) {
	return s.decide(ctx, reviewer, enrollmentID, gate.ActionValidate,
		models.EnrollmentValidated, "notif_enrollment_validated")
}

// Reject moves a pending enrollment to rejected on behalf of reviewer.
func (s *EnrollmentService) Reject(ctx context.Context, reviewer *models.User, enrollmentID uint) (*models.Enrollment, error) {
	return s.decide(ctx, reviewer, enrollmentID, gate.ActionReject,
		models.EnrollmentRejected, "notif_enrollment_rejected")
}

// decide is the shared transition: re-read the row under a write lock
// inside the transaction, require pending, authorize the reviewer against
// the formation's structure, stamp the validator and write exactly one
// notification. Any failure rolls the whole transition back.
func (s *EnrollmentService) decide(ctx context.Context, reviewer *models.User, enrollmentID uint, action gate.Action, status models.EnrollmentStatus, notifCode string) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Enrollment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Formation").First(&e, enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !e.IsPending() {
			return ErrNotPending
		}
		if err := s.gate.Authorize(ctx, reviewer, action, "enrollment", &e); err != nil {
			return ErrPermissionDenied
		}

		now := time.Now()
		e.Status = status
		e.ValidatedByID = &reviewer.ID
		e.ValidatedAt = &now
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		msg := i18n.Tf(i18n.DefaultLang, notifCode, e.Formation.Title)
		if err := createNotification(tx, e.UserID, msg); err != nil {
			return err
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ForUser returns all enrollments of the account, newest first.
func (s *EnrollmentService) ForUser(ctx context.Context, userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Formation").
		Order("registered_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

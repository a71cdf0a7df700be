package services

import (
	"context"

	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
)

// PendingAccounts returns the pending accounts the actor may review.
// Staff non-DRH reviewers see everything; DRH reviewers see only their own
// structure; everyone else sees nothing.
func PendingAccounts(ctx context.Context, db *gorm.DB, actor *models.User) ([]models.User, error) {
	q := db.WithContext(ctx).
		Where("state = ?", models.AccountPending).
		Preload("Structure").Preload("Department").
		Order("created_at")

	switch {
	case actor.IsStaff && actor.Role != models.RoleDRH:
		// system-wide
	case actor.Role == models.RoleDRH && actor.StructureID != nil:
		q = q.Where("structure_id = ?", *actor.StructureID)
	default:
		return []models.User{}, nil
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PendingEnrollments returns the pending enrollments the actor may review.
// DRH scope follows the owning structure of the enrollment's formation.
func PendingEnrollments(ctx context.Context, db *gorm.DB, actor *models.User) ([]models.Enrollment, error) {
	q := db.WithContext(ctx).
		Where("enrollments.status = ?", models.EnrollmentPending).
		Preload("User").Preload("Formation").
		Order("enrollments.registered_at")

	switch {
	case actor.IsStaff && actor.Role != models.RoleDRH:
		// system-wide
	case actor.Role == models.RoleDRH && actor.StructureID != nil:
		q = q.Joins("JOIN formations ON formations.id = enrollments.formation_id").
			Where("formations.structure_id = ?", *actor.StructureID)
	default:
		return []models.Enrollment{}, nil
	}

	var enrollments []models.Enrollment
	if err := q.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// VisibleUsers returns the directory entries the actor may browse.
// These are read-only visibility rules, not transition rights: managers see
// their structure peers, department chiefs their department peers, plain
// employees only themselves. Staff see everyone.
func VisibleUsers(ctx context.Context, db *gorm.DB, actor *models.User) ([]models.User, error) {
	q := db.WithContext(ctx).
		Preload("Structure").Preload("Department").
		Order("username")

	switch {
	case actor.IsStaff:
		// everyone
	case actor.Role == models.RoleManager || actor.Role == models.RoleDRH:
		if actor.StructureID == nil {
			return []models.User{}, nil
		}
		q = q.Where("structure_id = ?", *actor.StructureID)
	case actor.Role == models.RoleDepartmentChief:
		if actor.DepartmentID == nil {
			return []models.User{}, nil
		}
		q = q.Where("department_id = ?", *actor.DepartmentID)
	default:
		q = q.Where("id = ?", actor.ID)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

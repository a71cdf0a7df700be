package services

import (
	"context"
	"errors"

	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/i18n"
	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountService mirrors the enrollment state machine for account
// activation: pending -> approved | rejected, reviewer-gated, one
// notification per successful transition.
type AccountService struct {
	db     *gorm.DB
	gate   *gate.Gate[*models.User]
	app    config.AppConfig
	actors *gate.CachedResolver[uint, *models.User]
}

// NewAccountService creates the service. actors may be nil; when set, the
// cache entry of a transitioned account is invalidated so the change is
// visible on the next request.
func NewAccountService(db *gorm.DB, g *gate.Gate[*models.User], app config.AppConfig, actors *gate.CachedResolver[uint, *models.User]) *AccountService {
	return &AccountService{db: db, gate: g, app: app, actors: actors}
}

// Approve moves a pending account to approved and activates it. A DRH
// account is additionally promoted to staff when the policy flag is on.
func (s *AccountService) Approve(ctx context.Context, reviewer *models.User, accountID uint) (*models.User, error) {
	return s.decide(ctx, reviewer, accountID, gate.ActionValidate, func(u *models.User) {
		u.State = models.AccountApproved
		u.IsActive = true
		if u.Role == models.RoleDRH && s.app.PromoteDRHOnApproval {
			u.IsStaff = true
		}
	}, "notif_account_approved")
}

// Reject moves a pending account to rejected and keeps it inactive.
func (s *AccountService) Reject(ctx context.Context, reviewer *models.User, accountID uint) (*models.User, error) {
	return s.decide(ctx, reviewer, accountID, gate.ActionReject, func(u *models.User) {
		u.State = models.AccountRejected
		u.IsActive = false
	}, "notif_account_rejected")
}

func (s *AccountService) decide(ctx context.Context, reviewer *models.User, accountID uint, action gate.Action, apply func(*models.User), notifCode string) (*models.User, error) {
	var out *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Structure").First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !account.IsPending() {
			return ErrNotPending
		}
		if err := s.gate.Authorize(ctx, reviewer, action, "account", &account); err != nil {
			return ErrPermissionDenied
		}

		apply(&account)
		account.UpdatedBy = reviewer.Username
		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		if err := createNotification(tx, account.ID, i18n.T(i18n.DefaultLang, notifCode)); err != nil {
			return err
		}
		out = &account
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.actors != nil {
		s.actors.Invalidate(out.ID)
	}
	return out, nil
}

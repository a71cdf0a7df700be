package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/policy"
	"github.com/diewo77/go-tms/internal/services"
	"gorm.io/gorm"
)

func seedPendingAccount(t *testing.T, db *gorm.DB, role models.Role, structureID *uint) models.User {
	t.Helper()
	u := models.User{
		Email: string(role) + "-pending@test", Username: string(role) + "-pending",
		Password: "x", Role: role, State: models.AccountPending,
		StructureID: structureID,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("pending account: %v", err)
	}
	return u
}

func newAccountService(db *gorm.DB, app config.AppConfig) *services.AccountService {
	return services.NewAccountService(db, policy.NewReviewGate(), app, nil)
}

func TestApprove_ActivatesAccountAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	svc := newAccountService(db, config.AppConfig{})
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	out, err := svc.Approve(context.Background(), &staff, pending.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out.State != models.AccountApproved {
		t.Errorf("state = %q, want approved", out.State)
	}
	if !out.IsActive {
		t.Error("approved account should be active")
	}
	if out.UpdatedBy != staff.Username {
		t.Errorf("UpdatedBy = %q, want %q", out.UpdatedBy, staff.Username)
	}
	if n := countNotifications(t, db, pending.ID); n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
}

func TestReject_KeepsAccountInactive(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	svc := newAccountService(db, config.AppConfig{})
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	out, err := svc.Reject(context.Background(), &staff, pending.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if out.State != models.AccountRejected {
		t.Errorf("state = %q, want rejected", out.State)
	}
	if out.IsActive {
		t.Error("rejected account must stay inactive")
	}
	if out.CanLogin() {
		t.Error("rejected account must not be able to log in")
	}
	if n := countNotifications(t, db, pending.ID); n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
}

func TestApprove_PromotesDRHToStaff(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)

	// Flag on: the approved DRH gains back-office access.
	svc := newAccountService(db, config.AppConfig{PromoteDRHOnApproval: true})
	drh := seedPendingAccount(t, db, models.RoleDRH, &s1.ID)
	out, err := svc.Approve(context.Background(), &staff, drh.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !out.IsStaff {
		t.Error("approved DRH should be promoted to staff when the flag is on")
	}
}

func TestApprove_DRHPromotionDisabled(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)

	svc := newAccountService(db, config.AppConfig{PromoteDRHOnApproval: false})
	drh := seedPendingAccount(t, db, models.RoleDRH, &s1.ID)
	out, err := svc.Approve(context.Background(), &staff, drh.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out.IsStaff {
		t.Error("DRH should not be promoted when the flag is off")
	}
}

func TestApprove_AlreadyDecided(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	svc := newAccountService(db, config.AppConfig{})
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	if _, err := svc.Approve(context.Background(), &staff, pending.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.Approve(context.Background(), &staff, pending.ID); !errors.Is(err, services.ErrNotPending) {
		t.Errorf("re-approve: expected ErrNotPending, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), &staff, pending.ID); !errors.Is(err, services.ErrNotPending) {
		t.Errorf("reject after approve: expected ErrNotPending, got %v", err)
	}
}

func TestApprove_UnknownAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db, config.AppConfig{})
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)

	if _, err := svc.Approve(context.Background(), &staff, 9999); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestApprove_DRHScope(t *testing.T) {
	db := setupTestDB(t)
	s1, s2, _, _, _ := seedOrg(t, db)
	svc := newAccountService(db, config.AppConfig{})

	ownDRH := seedReviewer(t, db, "drh1", models.RoleDRH, false, &s1.ID)
	otherDRH := seedReviewer(t, db, "drh2", models.RoleDRH, false, &s2.ID)
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	if _, err := svc.Approve(context.Background(), &otherDRH, pending.ID); !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	// The denied attempt left no trace.
	var check models.User
	if err := db.First(&check, pending.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if check.State != models.AccountPending {
		t.Errorf("state = %q, want pending after denial", check.State)
	}
	if n := countNotifications(t, db, pending.ID); n != 0 {
		t.Errorf("notifications = %d, want 0 after denial", n)
	}

	if _, err := svc.Approve(context.Background(), &ownDRH, pending.ID); err != nil {
		t.Fatalf("own DRH approve: %v", err)
	}
}

func TestApprove_EmployeeDenied(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, emp := seedOrg(t, db)
	svc := newAccountService(db, config.AppConfig{})
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	if _, err := svc.Approve(context.Background(), &emp, pending.ID); !errors.Is(err, services.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestApprove_InvalidatesActorCache(t *testing.T) {
	db := setupTestDB(t)
	s1, _, _, _, _ := seedOrg(t, db)
	staff := seedReviewer(t, db, "staff", models.RoleManager, true, nil)
	actors := policy.NewActorResolver(db, 5*time.Minute)
	svc := services.NewAccountService(db, policy.NewReviewGate(), config.AppConfig{}, actors)
	pending := seedPendingAccount(t, db, models.RoleEmployee, &s1.ID)

	// Warm the cache with the pending record.
	before, err := actors.Resolve(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if before.State != models.AccountPending {
		t.Fatalf("precondition: state = %q", before.State)
	}

	if _, err := svc.Approve(context.Background(), &staff, pending.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	after, err := actors.Resolve(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if after.State != models.AccountApproved {
		t.Errorf("cache must be invalidated on transition, still sees %q", after.State)
	}
}

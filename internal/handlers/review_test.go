package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/go-tms/auth"
	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/policy"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type reviewFixture struct {
	db    *gorm.DB
	cfg   *policy.RouterConfig
	s1    models.Structure
	s2    models.Structure
	f1    models.Formation
	emp   models.User
	staff models.User
	drh   models.User
}

func setupReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Structure{}, &models.Department{}, &models.User{},
		&models.Formation{}, &models.Enrollment{}, &models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	fx := &reviewFixture{db: db}
	fx.s1 = models.Structure{Name: "DSI", Code: "DSI"}
	fx.s2 = models.Structure{Name: "DFC", Code: "DFC"}
	for _, s := range []*models.Structure{&fx.s1, &fx.s2} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("structure: %v", err)
		}
	}
	fx.f1 = models.Formation{Title: "Go avancé", Ref: "F-GO1", Cost: 1000, StructureID: fx.s1.ID}
	if err := db.Create(&fx.f1).Error; err != nil {
		t.Fatalf("formation: %v", err)
	}
	fx.emp = models.User{
		Email: "emp@test", Username: "emp", Password: "x",
		Role: models.RoleEmployee, State: models.AccountApproved, IsActive: true,
		StructureID: &fx.s1.ID,
	}
	fx.staff = models.User{
		Email: "staff@test", Username: "staff", Password: "x",
		Role: models.RoleManager, State: models.AccountApproved, IsActive: true, IsStaff: true,
	}
	fx.drh = models.User{
		Email: "drh@test", Username: "drh", Password: "x",
		Role: models.RoleDRH, State: models.AccountApproved, IsActive: true,
		StructureID: &fx.s2.ID,
	}
	for _, u := range []*models.User{&fx.emp, &fx.staff, &fx.drh} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("user: %v", err)
		}
	}

	fx.cfg = policy.NewRouterConfig(db, config.AppConfig{PromoteDRHOnApproval: true})
	return fx
}

func asUser(req *http.Request, userID uint) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func withID(req *http.Request, id uint) *http.Request {
	req.SetPathValue("id", fmt.Sprint(id))
	return req
}

func TestParticipateAndValidateFlow(t *testing.T) {
	fx := setupReviewFixture(t)

	// Employee registers for a formation of their structure.
	req := asUser(httptest.NewRequest(http.MethodPost, "/formations/1/participate", nil), fx.emp.ID)
	req = withID(req, fx.f1.ID)
	w := httptest.NewRecorder()
	fx.cfg.FormationHandler.Participate(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("participate: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Enrollment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Staff validates it.
	req = asUser(httptest.NewRequest(http.MethodPost, "/admin/enrollments/1/validate", nil), fx.staff.ID)
	req = withID(req, created.ID)
	w = httptest.NewRecorder()
	fx.cfg.ReviewHandler.ValidateEnrollment(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("validate: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// The registrant got exactly one notification.
	req = asUser(httptest.NewRequest(http.MethodGet, "/notifications", nil), fx.emp.ID)
	w = httptest.NewRecorder()
	fx.cfg.NotificationHandler.Unread(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: expected 200 got %d", w.Code)
	}
	var list struct {
		Items []models.Notification `json:"items"`
		Total int                   `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("unread = %d, want 1", list.Total)
	}
}

func TestParticipate_OutsideStructure(t *testing.T) {
	fx := setupReviewFixture(t)
	f2 := models.Formation{Title: "Comptabilité", Ref: "F-CPT", Cost: 800, StructureID: fx.s2.ID}
	if err := fx.db.Create(&f2).Error; err != nil {
		t.Fatalf("formation: %v", err)
	}

	req := asUser(httptest.NewRequest(http.MethodPost, "/formations/2/participate", nil), fx.emp.ID)
	req = withID(req, f2.ID)
	w := httptest.NewRecorder()
	fx.cfg.FormationHandler.Participate(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestValidateEnrollment_DRHOutOfScope(t *testing.T) {
	fx := setupReviewFixture(t)

	req := asUser(httptest.NewRequest(http.MethodPost, "/formations/1/participate", nil), fx.emp.ID)
	req = withID(req, fx.f1.ID)
	w := httptest.NewRecorder()
	fx.cfg.FormationHandler.Participate(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("participate: expected 201 got %d", w.Code)
	}
	var created models.Enrollment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The DRH of another structure is refused.
	req = asUser(httptest.NewRequest(http.MethodPost, "/admin/enrollments/1/validate", nil), fx.drh.ID)
	req = withID(req, created.ID)
	w = httptest.NewRecorder()
	fx.cfg.ReviewHandler.ValidateEnrollment(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestApproveAccount_Flow(t *testing.T) {
	fx := setupReviewFixture(t)
	pending := models.User{
		Email: "pending@test", Username: "pending", Password: "x",
		Role: models.RoleEmployee, State: models.AccountPending, StructureID: &fx.s1.ID,
	}
	if err := fx.db.Create(&pending).Error; err != nil {
		t.Fatalf("pending: %v", err)
	}

	// The pending queue contains it.
	req := asUser(httptest.NewRequest(http.MethodGet, "/admin/accounts/pending", nil), fx.staff.ID)
	w := httptest.NewRecorder()
	fx.cfg.ReviewHandler.PendingAccounts(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("queue: expected 200 got %d", w.Code)
	}
	var list struct {
		Items []models.User `json:"items"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("queue total = %d, want 1", list.Total)
	}

	// Staff approves it.
	req = asUser(httptest.NewRequest(http.MethodPost, "/admin/accounts/1/validate", nil), fx.staff.ID)
	req = withID(req, pending.ID)
	w = httptest.NewRecorder()
	fx.cfg.ReviewHandler.ApproveAccount(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var check models.User
	if err := fx.db.First(&check, pending.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !check.CanLogin() {
		t.Error("approved account should be able to log in")
	}

	// A second approval reports the conflict.
	req = asUser(httptest.NewRequest(http.MethodPost, "/admin/accounts/1/validate", nil), fx.staff.ID)
	req = withID(req, pending.ID)
	w = httptest.NewRecorder()
	fx.cfg.ReviewHandler.ApproveAccount(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("re-approve: expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestHandlers_RequireActor(t *testing.T) {
	fx := setupReviewFixture(t)

	// No session in context: 401.
	req := httptest.NewRequest(http.MethodGet, "/enrollments", nil)
	w := httptest.NewRecorder()
	fx.cfg.FormationHandler.MyEnrollments(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// Unknown user id: 401 as well.
	req = asUser(httptest.NewRequest(http.MethodGet, "/enrollments", nil), 9999)
	w = httptest.NewRecorder()
	fx.cfg.FormationHandler.MyEnrollments(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

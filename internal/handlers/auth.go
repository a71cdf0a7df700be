package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-tms/auth"
	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/i18n"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type signupRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	StructureID  *uint  `json:"structure_id"`
	DepartmentID *uint  `json:"department_id"`
}

// Signup creates a pending, inactive account. The account cannot open a
// session until a reviewer approves it.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	if req.Role == "" {
		req.Role = string(models.RoleEmployee)
	}

	v := make(validation.Violations)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	validation.OneOf("role", req.Role, []string{
		string(models.RoleEmployee),
		string(models.RoleManager),
		string(models.RoleDepartmentChief),
		string(models.RoleDRH),
	}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     string(hashed),
		Role:         models.Role(req.Role),
		StructureID:  req.StructureID,
		DepartmentID: req.DepartmentID,
		State:        models.AccountPending,
		CreatedBy:    strings.TrimSpace(req.Username),
	}
	if err := h.db.WithContext(r.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lang := i18n.FromContext(r.Context())
			httpx.JSONError(w, http.StatusConflict, "email_taken",
				map[string]any{"message": i18n.T(lang, "email_taken")})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id":    user.ID,
		"state": user.State,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login opens a session for an approved, active account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	lang := i18n.FromContext(r.Context())

	var user models.User
	if err := h.db.WithContext(r.Context()).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials",
			map[string]any{"message": i18n.T(lang, "invalid_credentials")})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials",
			map[string]any{"message": i18n.T(lang, "invalid_credentials")})
		return
	}
	if !user.CanLogin() {
		httpx.JSONError(w, http.StatusForbidden, "account_not_active",
			map[string]any{"message": i18n.T(lang, "account_not_active")})
		return
	}

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"is_staff": user.IsStaff,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "logged_out"})
}

package db

import (
	"errors"

	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrNoAdminPassword is returned when the bootstrap admin would be created
// without a password. Set ADMIN_PASSWORD to opt in.
var ErrNoAdminPassword = errors.New("db: ADMIN_PASSWORD not set, refusing to seed admin account")

// Seed creates the bootstrap admin account if no staff user exists yet.
// The admin is created approved and active so the back-office is reachable
// on a fresh database.
func Seed(db *gorm.DB, app config.AppConfig) error {
	var staffCount int64
	if err := db.Model(&models.User{}).Where("is_staff = ?", true).Count(&staffCount).Error; err != nil {
		return err
	}
	if staffCount > 0 {
		return nil
	}
	if app.AdminPassword == "" {
		return ErrNoAdminPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(app.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:     app.AdminEmail,
		Username:  app.AdminUsername,
		FirstName: "TMS",
		LastName:  "Admin",
		Password:  string(hashed),
		Role:      models.RoleManager,
		State:     models.AccountApproved,
		IsActive:  true,
		IsStaff:   true,
		CreatedBy: "seed",
	}
	return db.Create(&admin).Error
}

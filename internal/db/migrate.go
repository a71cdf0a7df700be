package db

import (
	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
)

// Migrate applies the GORM auto-migrations for all TMS tables.
// Order matters: referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Structure{},
		&models.Department{},
		&models.User{},
		&models.Formation{},
		&models.Enrollment{},
		&models.Notification{},
	)
}

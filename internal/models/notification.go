package models

import (
	"time"
)

// Notification is an append-only message for a user, produced as a side
// effect of approval transitions. Rows are immutable except for the read
// flag.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	Message string `gorm:"type:text;not null" json:"message"`
	IsRead  bool   `gorm:"default:false;index" json:"is_read"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Formation is a training offering published by a structure.
type Formation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Ref         string `gorm:"size:50;not null" json:"ref"`
	Level       string `gorm:"size:50" json:"level,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Cost        int    `gorm:"not null" json:"cost"`
	Country     string `gorm:"size:50" json:"country,omitempty"`
	// DurationDays is the length of the formation in days.
	DurationDays  int    `json:"duration_days"`
	Prerequisites string `gorm:"size:255" json:"prerequisites,omitempty"`
	Program       string `gorm:"type:text" json:"program,omitempty"`
	// TargetAudience describes who the formation is for.
	TargetAudience string `gorm:"type:text" json:"target_audience,omitempty"`
	Objective      string `gorm:"type:text" json:"objective,omitempty"`
	Category       string `gorm:"size:50" json:"category,omitempty"`

	// A formation belongs to exactly one structure.
	StructureID uint       `gorm:"index;not null" json:"structure_id"`
	Structure   *Structure `gorm:"foreignKey:StructureID" json:"structure,omitempty"`

	// CreatedByID references the staff user that published the formation.
	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`

	UpdatedBy string `gorm:"size:50" json:"updated_by,omitempty"`
}

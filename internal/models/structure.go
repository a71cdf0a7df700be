package models

import (
	"time"

	"gorm.io/gorm"
)

// Structure represents an organizational unit (business division).
// Departments, users and formations all hang off a structure.
type Structure struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Level     string         `gorm:"size:50" json:"level,omitempty"`

	// Audit columns: username of the actor that created/last touched the row.
	CreatedBy string `gorm:"size:50" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"size:50" json:"updated_by,omitempty"`

	// Deleting a structure removes its departments and formations;
	// users keep their account but lose the structure reference.
	Departments []Department `gorm:"constraint:OnDelete:CASCADE" json:"departments,omitempty"`
	Users       []User       `gorm:"constraint:OnDelete:SET NULL" json:"users,omitempty"`
	Formations  []Formation  `gorm:"constraint:OnDelete:CASCADE" json:"formations,omitempty"`
}

// Department is a sub-unit of a structure. Codes are globally unique.
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;size:50;not null" json:"code"`

	StructureID uint       `gorm:"index;not null" json:"structure_id"`
	Structure   *Structure `gorm:"foreignKey:StructureID" json:"structure,omitempty"`

	CreatedBy string `gorm:"size:50" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"size:50" json:"updated_by,omitempty"`

	Users []User `gorm:"constraint:OnDelete:SET NULL" json:"users,omitempty"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a hiring company owned by a single user.
// The slug is globally unique and used in public URLs like /companies/acme.
type Company struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OwnerID     uint           `json:"owner_id" gorm:"index;not null"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	Website     string         `json:"website" gorm:"type:varchar(255)"`
	LogoID      *uint          `json:"logo_id,omitempty" gorm:"index"`
	CoverID     *uint          `json:"cover_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Logo  *File `json:"logo,omitempty" gorm:"foreignKey:LogoID;constraint:OnDelete:SET NULL"`
	Cover *File `json:"cover,omitempty" gorm:"foreignKey:CoverID;constraint:OnDelete:SET NULL"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents the user model stored in the database
type User struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(255);not null"`
	Email            string         `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Username         string         `json:"username" gorm:"type:varchar(255);uniqueIndex"`
	Password         string         `json:"-" gorm:"type:varchar(255)"`
	IsOnboarding     bool           `json:"is_onboarding" gorm:"default:true"`
	OnboardingStage  string         `json:"onboarding_stage" gorm:"type:varchar(50);default:'welcome'"`
	ProfilePictureID *uint          `json:"profile_picture_id,omitempty" gorm:"index"`
	CoverPictureID   *uint          `json:"cover_picture_id,omitempty" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	ProfilePicture *File `json:"profile_picture,omitempty" gorm:"foreignKey:ProfilePictureID;constraint:OnDelete:SET NULL"`
	CoverPicture   *File `json:"cover_picture,omitempty" gorm:"foreignKey:CoverPictureID;constraint:OnDelete:SET NULL"`
}

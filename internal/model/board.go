package model

import (
	"time"

	"gorm.io/gorm"
)

// Board is a named collection of job postings published by a company,
// used for public listing pages.
type Board struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	CompanyID   uint           `json:"company_id" gorm:"index;not null"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex"`
	LogoID      *uint          `json:"logo_id,omitempty" gorm:"index"`
	CoverID     *uint          `json:"cover_id,omitempty" gorm:"index"`
	ThemeColor  string         `json:"theme_color" gorm:"type:varchar(7)"`
	IsPublic    bool           `json:"is_public" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

// BoardJob links a job onto a board for public listing
type BoardJob struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BoardID    uint      `json:"board_id" gorm:"index;not null"`
	JobID      uint      `json:"job_id" gorm:"index;not null"`
	IsFeatured bool      `json:"is_featured" gorm:"default:false"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Board *Board `json:"board,omitempty" gorm:"foreignKey:BoardID"`
	Job   *Job   `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

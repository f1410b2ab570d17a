package model

import "time"

// Heartbeat records a client check-in with its network details
type Heartbeat struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          *uint     `json:"user_id,omitempty" gorm:"index"`
	IPAddress       string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent       string    `json:"user_agent" gorm:"type:varchar(255)"`
	IsAuthenticated bool      `json:"is_authenticated" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

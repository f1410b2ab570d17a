package model

import "time"

// File captures a stored binary asset. Rows are immutable once written;
// owners reference files through nullable set-null foreign keys, so an
// orphaned file after owner deletion is tolerated.
type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Path      string    `json:"path" gorm:"type:varchar(255);not null"`
	Type      string    `json:"type" gorm:"type:varchar(100);not null"` // MIME type
	Size      int64     `json:"size" gorm:"not null"`
	Extension string    `json:"extension" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

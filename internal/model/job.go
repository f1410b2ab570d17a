package model

import "time"

// Job employment types
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// JobTypes is the fixed set of accepted employment types
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// Job represents a job posting
type Job struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	TeamID      *uint     `json:"team_id,omitempty" gorm:"index"`
	CompanyID   uint      `json:"company_id" gorm:"index;not null"`
	BoardID     uint      `json:"board_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Company     string    `json:"company" gorm:"type:varchar(255)"`
	Location    string    `json:"location" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	Type        string    `json:"type" gorm:"type:varchar(20);not null"`
	Salary      string    `json:"salary" gorm:"type:varchar(100)"`
	Remote      bool      `json:"remote" gorm:"default:false"`
	Published   bool      `json:"published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User           *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Board          *Board          `json:"board,omitempty" gorm:"foreignKey:BoardID"`
	PipelineStages []PipelineStage `json:"pipeline_stages,omitempty" gorm:"foreignKey:JobID"`
}

// PipelineStage is a step in a job's candidate-review workflow,
// distinct from a user's onboarding stage.
type PipelineStage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	JobID       uint      `json:"job_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"column:stage_order;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Job *Job `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// JobCustomField is an extra question a job asks of its applicants
type JobCustomField struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobID     uint      `json:"job_id" gorm:"index;not null"`
	Label     string    `json:"label" gorm:"type:varchar(255);not null"`
	Type      string    `json:"type" gorm:"type:varchar(20);not null"` // text, textarea, select, checkbox, file
	Options   string    `json:"options" gorm:"type:text"`              // JSON-encoded options for select fields
	Required  bool      `json:"required" gorm:"default:false"`
	Order     int       `json:"order" gorm:"column:field_order;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Job *Job `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Application is a candidate's submission against a job posting
type Application struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	JobID          uint           `json:"job_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(255);not null"`
	Email          string         `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Phone          string         `json:"phone" gorm:"type:varchar(15)"`
	CoverLetter    string         `json:"cover_letter" gorm:"type:text"`
	ResumeID       uint           `json:"resume_id" gorm:"column:resume;index"`
	CurrentStageID uint           `json:"current_stage_id" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Job          *Job           `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Resume       *File          `json:"resume,omitempty" gorm:"foreignKey:ResumeID"`
	CurrentStage *PipelineStage `json:"current_stage,omitempty" gorm:"foreignKey:CurrentStageID"`
}

// ApplicationStageLog records a move of an application between pipeline stages
type ApplicationStageLog struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ApplicationID   uint      `json:"application_id" gorm:"index;not null"`
	PipelineStageID uint      `json:"pipeline_stage_id" gorm:"index;not null"`
	UserID          *uint     `json:"user_id,omitempty" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Application   *Application   `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
	PipelineStage *PipelineStage `json:"pipeline_stage,omitempty" gorm:"foreignKey:PipelineStageID"`
	User          *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ApplicationAnswer holds a candidate's answer to a job custom field
type ApplicationAnswer struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	ApplicationID    uint           `json:"application_id" gorm:"index;not null"`
	JobCustomFieldID uint           `json:"job_custom_field_id" gorm:"index;not null"`
	Answer           string         `json:"answer" gorm:"type:varchar(255)"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Application    *Application    `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
	JobCustomField *JobCustomField `json:"job_custom_field,omitempty" gorm:"foreignKey:JobCustomFieldID"`
}

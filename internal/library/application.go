package library

import (
	"jobboard-service/internal/lifecycle"
	"jobboard-service/internal/model"

	"gorm.io/gorm"
)

// ApplicationLibrary provides persistence access for candidate applications
type ApplicationLibrary struct {
	db        *gorm.DB
	Lifecycle *lifecycle.Lifecycle
}

// NewApplicationLibrary creates an application library over the given database
func NewApplicationLibrary(db *gorm.DB) *ApplicationLibrary {
	return &ApplicationLibrary{
		db:        db,
		Lifecycle: lifecycle.New(db, &model.Application{}),
	}
}

// All returns every application not currently trashed
func (l *ApplicationLibrary) All() ([]model.Application, error) {
	var applications []model.Application
	if err := l.db.Order("created_at desc").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// ByID finds an application by primary key
func (l *ApplicationLibrary) ByID(id uint) (*model.Application, error) {
	var application model.Application
	if err := l.db.First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ByJobID returns the applications submitted against a job
func (l *ApplicationLibrary) ByJobID(jobID uint) ([]model.Application, error) {
	var applications []model.Application
	if err := l.db.Where("job_id = ?", jobID).Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// EmailTaken reports whether an application with this email already exists.
// Trashed applications count; the unique index covers them.
func (l *ApplicationLibrary) EmailTaken(email string, excludeID uint) bool {
	var count int64
	l.db.Unscoped().Model(&model.Application{}).
		Where("email = ? AND id != ?", email, excludeID).
		Count(&count)
	return count > 0
}

// Create inserts a new application after checking the email. When the
// application enters with a pipeline stage the entry is logged in the
// same transaction, without an actor since submission is public.
func (l *ApplicationLibrary) Create(application *model.Application) error {
	if l.EmailTaken(application.Email, 0) {
		return ErrDuplicate
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}
		if application.CurrentStageID == 0 {
			return nil
		}
		return tx.Create(&model.ApplicationStageLog{
			ApplicationID:   application.ID,
			PipelineStageID: application.CurrentStageID,
		}).Error
	})
}

// Update saves changed fields on an existing application
func (l *ApplicationLibrary) Update(application *model.Application) error {
	return l.db.Save(application).Error
}

// MoveToStage points the application at a pipeline stage and appends a
// stage log row in the same transaction.
func (l *ApplicationLibrary) MoveToStage(applicationID, stageID, actorID uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Application{}).
			Where("id = ?", applicationID).
			Update("current_stage_id", stageID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&model.ApplicationStageLog{
			ApplicationID:   applicationID,
			PipelineStageID: stageID,
			UserID:          &actorID,
		}).Error
	})
}

// StageLogs returns the stage history for an application, oldest first
func (l *ApplicationLibrary) StageLogs(applicationID uint) ([]model.ApplicationStageLog, error) {
	var logs []model.ApplicationStageLog
	err := l.db.Where("application_id = ?", applicationID).
		Order("created_at asc, id asc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

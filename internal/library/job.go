package library

import (
	"jobboard-service/internal/model"

	"gorm.io/gorm"
)

// DefaultPipelineStages seeds every new job's candidate-review workflow
var DefaultPipelineStages = []string{"Applied", "Screening", "Interview", "Offer"}

// JobLibrary provides persistence access for job postings and their
// pipeline stages.
type JobLibrary struct {
	db *gorm.DB
}

// NewJobLibrary creates a job library over the given database
func NewJobLibrary(db *gorm.DB) *JobLibrary {
	return &JobLibrary{db: db}
}

// ByID finds a job by primary key
func (l *JobLibrary) ByID(id uint) (*model.Job, error) {
	var job model.Job
	if err := l.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ByBoardID returns the jobs posted on a board
func (l *JobLibrary) ByBoardID(boardID uint) ([]model.Job, error) {
	var jobs []model.Job
	if err := l.db.Where("board_id = ?", boardID).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Create inserts a job and seeds its default pipeline stages in one
// transaction.
func (l *JobLibrary) Create(job *model.Job) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}

		for i, name := range DefaultPipelineStages {
			stage := model.PipelineStage{
				JobID: job.ID,
				Name:  name,
				Order: i + 1,
			}
			if err := tx.Create(&stage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves changed fields on an existing job
func (l *JobLibrary) Update(job *model.Job) error {
	return l.db.Save(job).Error
}

// Delete removes a job and its pipeline stages permanently
func (l *JobLibrary) Delete(id uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&model.PipelineStage{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Job{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetPublished flips the published flag on a job
func (l *JobLibrary) SetPublished(id uint, published bool) error {
	result := l.db.Model(&model.Job{}).Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stages returns a job's pipeline stages in workflow order
func (l *JobLibrary) Stages(jobID uint) ([]model.PipelineStage, error) {
	var stages []model.PipelineStage
	err := l.db.Where("job_id = ?", jobID).
		Order("stage_order asc").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

// FirstStage returns the entry stage of a job's pipeline
func (l *JobLibrary) FirstStage(jobID uint) (*model.PipelineStage, error) {
	var stage model.PipelineStage
	err := l.db.Where("job_id = ?", jobID).
		Order("stage_order asc").
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// StageBelongsToJob reports whether a pipeline stage is part of a job's
// workflow, checked before moving an application onto it.
func (l *JobLibrary) StageBelongsToJob(stageID, jobID uint) bool {
	var count int64
	l.db.Model(&model.PipelineStage{}).
		Where("id = ? AND job_id = ?", stageID, jobID).
		Count(&count)
	return count > 0
}

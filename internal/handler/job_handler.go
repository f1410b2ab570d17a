package handler

import (
	"errors"
	"net/http"
	"time"

	"jobboard-service/internal/library"
	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/logger"
	"jobboard-service/pkg/validate"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateJobRequest defines the payload for posting a job
type CreateJobRequest struct {
	BoardID     uint   `json:"board_id" validate:"required"`
	CompanyID   uint   `json:"company_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=255"`
	Company     string `json:"company" validate:"omitempty,max=255"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Type        string `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Salary      string `json:"salary" validate:"omitempty,max=100"`
	Remote      bool   `json:"remote"`
}

// UpdateJobRequest carries partial job updates
type UpdateJobRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Company     *string `json:"company" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Type        *string `json:"type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Salary      *string `json:"salary" validate:"omitempty,max=100"`
	Remote      *bool   `json:"remote"`
}

// PublishJobRequest flips a job's published flag
type PublishJobRequest struct {
	Published bool `json:"published"`
}

// GetJob returns a job by ID
func GetJob(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	job, err := library.NewJobLibrary(database.GetDB()).ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
	}
	return c.JSON(http.StatusOK, job)
}

// GetJobsByBoardID returns the jobs posted on one board
func GetJobsByBoardID(c echo.Context) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	jobs, err := library.NewJobLibrary(database.GetDB()).ByBoardID(boardID)
	if err != nil {
		logger.FromContext(c).Error("Failed to list jobs", zap.Uint("board_id", boardID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch jobs"})
	}
	return c.JSON(http.StatusOK, jobs)
}

// CreateJob posts a job on a board the caller owns and seeds its
// default pipeline stages.
func CreateJob(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	db := database.GetDB()
	board, err := library.NewBoardLibrary(db).ByID(req.BoardID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}
	if board.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	job := model.Job{
		UserID:      userID,
		CompanyID:   req.CompanyID,
		BoardID:     req.BoardID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		Type:        req.Type,
		Salary:      req.Salary,
		Remote:      req.Remote,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := library.NewJobLibrary(db).Create(&job); err != nil {
		log.Error("Failed to create job", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create job"})
	}

	log.Info("Job created",
		zap.Uint("id", job.ID),
		zap.Uint("board_id", job.BoardID),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, job)
}

// jobOwnerOr403 loads a job and verifies the caller posted it
func jobOwnerOr403(c echo.Context, id uint) (*model.Job, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		return nil, false
	}

	job, err := library.NewJobLibrary(database.GetDB()).ByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
		return nil, false
	}

	if job.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
		return nil, false
	}

	return job, true
}

// UpdateJob updates a job's details
func UpdateJob(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	job, ok := jobOwnerOr403(c, id)
	if !ok {
		return nil
	}

	var req UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := library.NewJobLibrary(database.GetDB()).Update(job); err != nil {
		log.Error("Failed to update job", zap.Uint("job_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update job"})
	}

	return c.JSON(http.StatusOK, job)
}

// PublishJob toggles a job's published flag
func PublishJob(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	if _, ok := jobOwnerOr403(c, id); !ok {
		return nil
	}

	var req PublishJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := library.NewJobLibrary(database.GetDB()).SetPublished(id, req.Published); err != nil {
		log.Error("Failed to publish job", zap.Uint("job_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update job"})
	}

	log.Info("Job publish state changed", zap.Uint("job_id", id), zap.Bool("published", req.Published))
	return c.JSON(http.StatusOK, echo.Map{"message": "Job updated successfully", "published": req.Published})
}

// DeleteJob removes a job and its pipeline stages
func DeleteJob(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	if _, ok := jobOwnerOr403(c, id); !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := library.NewJobLibrary(database.GetDB()).Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
		}
		log.Error("Failed to delete job", zap.Uint("job_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete job"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Job deleted successfully"})
}

// GetJobStages lists a job's pipeline stages in workflow order
func GetJobStages(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	if _, err := library.NewJobLibrary(database.GetDB()).ByID(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
	}

	stages, err := library.NewJobLibrary(database.GetDB()).Stages(id)
	if err != nil {
		logger.FromContext(c).Error("Failed to fetch stages", zap.Uint("job_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch stages"})
	}
	return c.JSON(http.StatusOK, stages)
}

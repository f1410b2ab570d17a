package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"jobboard-service/internal/library"
	"jobboard-service/internal/lifecycle"
	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/logger"
	"jobboard-service/pkg/validate"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// resumeExtensions narrows the general upload allow-list to document
// formats for candidate resumes.
var resumeExtensions = []string{"pdf", "doc", "docx"}

// CreateApplicationRequest is the multipart form a candidate submits
type CreateApplicationRequest struct {
	JobID       uint   `json:"job_id" form:"job_id" validate:"required"`
	Name        string `json:"name" form:"name" validate:"required,max=255"`
	Email       string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" form:"phone" validate:"omitempty,max=15"`
	CoverLetter string `json:"cover_letter" form:"cover_letter" validate:"omitempty,max=5000"`
}

// UpdateApplicationRequest carries partial contact-detail updates
type UpdateApplicationRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Phone *string `json:"phone" validate:"omitempty,max=15"`
}

// MoveApplicationStageRequest names the pipeline stage to move to
type MoveApplicationStageRequest struct {
	StageID uint `json:"stage_id" validate:"required"`
}

// ListApplications returns all non-trashed applications
func ListApplications(c echo.Context) error {
	applications, err := library.NewApplicationLibrary(database.GetDB()).All()
	if err != nil {
		logger.FromContext(c).Error("Failed to list applications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch applications"})
	}
	return c.JSON(http.StatusOK, applications)
}

// GetApplication returns one application by ID
func GetApplication(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	application, err := library.NewApplicationLibrary(database.GetDB()).ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
	}
	return c.JSON(http.StatusOK, application)
}

// GetApplicationsByJobID returns the applications submitted to one job
func GetApplicationsByJobID(c echo.Context) error {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	applications, err := library.NewApplicationLibrary(database.GetDB()).ByJobID(jobID)
	if err != nil {
		logger.FromContext(c).Error("Failed to list applications", zap.Uint("job_id", jobID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch applications"})
	}
	return c.JSON(http.StatusOK, applications)
}

// CreateApplication accepts a public candidate submission. The resume is
// required and restricted to document formats. The new application enters
// the job's first pipeline stage.
func CreateApplication(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	jobLib := library.NewJobLibrary(db)
	job, err := jobLib.ByID(req.JobID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
	}

	applicationLib := library.NewApplicationLibrary(db)
	if applicationLib.EmailTaken(req.Email, 0) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"email": "The email has already been taken."},
		})
	}

	header, err := c.FormFile("resume")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"resume": "The resume field is required."},
		})
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !resumeAllowed(ext) {
		prometheus.UploadCounter.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"resume": "The resume must be a pdf, doc, or docx file."},
		})
	}

	fileLib := library.NewFileLibrary(db, fileStore)
	resume, err := uploadFormFile(fileLib, header)
	if err != nil {
		return uploadError(c, log, "resume", err)
	}

	application := model.Application{
		JobID:       job.ID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CoverLetter: req.CoverLetter,
		ResumeID:    resume.ID,
	}

	if first, err := jobLib.FirstStage(job.ID); err == nil {
		application.CurrentStageID = first.ID
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := applicationLib.Create(&application); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"errors": echo.Map{"email": "The email has already been taken."},
			})
		}
		log.Error("Failed to create application", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create application"})
	}

	prometheus.ApplicationOperationCounter.WithLabelValues("create").Inc()
	log.Info("Application submitted",
		zap.Uint("id", application.ID),
		zap.Uint("job_id", job.ID))
	return c.JSON(http.StatusCreated, application)
}

func resumeAllowed(ext string) bool {
	for _, allowed := range resumeExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// applicationOwnerOr403 loads an application including trashed rows and
// verifies the caller owns the job it belongs to.
func applicationOwnerOr403(c echo.Context, id uint) (*model.Application, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		return nil, false
	}

	db := database.GetDB()
	var application model.Application
	if err := db.Unscoped().First(&application, id).Error; err != nil {
		c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		return nil, false
	}

	var job model.Job
	if err := db.First(&job, application.JobID).Error; err != nil {
		c.JSON(http.StatusNotFound, echo.Map{"message": "Job not found"})
		return nil, false
	}

	if job.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
		return nil, false
	}

	return &application, true
}

// UpdateApplication updates contact details on an application
func UpdateApplication(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	application, ok := applicationOwnerOr403(c, id)
	if !ok {
		return nil
	}

	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	applicationLib := library.NewApplicationLibrary(database.GetDB())
	if req.Email != nil && *req.Email != application.Email && applicationLib.EmailTaken(*req.Email, id) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"email": "The email has already been taken."},
		})
	}

	if req.Name != nil {
		application.Name = *req.Name
	}
	if req.Email != nil {
		application.Email = *req.Email
	}
	if req.Phone != nil {
		application.Phone = *req.Phone
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := applicationLib.Update(application); err != nil {
		log.Error("Failed to update application", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update application"})
	}

	prometheus.ApplicationOperationCounter.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, application)
}

// MoveApplicationStage moves an application to another stage of its
// job's pipeline and records who did it.
func MoveApplicationStage(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	application, ok := applicationOwnerOr403(c, id)
	if !ok {
		return nil
	}
	userID, _ := currentUserID(c)

	var req MoveApplicationStageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	db := database.GetDB()
	if !library.NewJobLibrary(db).StageBelongsToJob(req.StageID, application.JobID) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"stage_id": "The stage does not belong to this job."},
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := library.NewApplicationLibrary(db).MoveToStage(id, req.StageID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		}
		log.Error("Failed to move application stage",
			zap.Uint("application_id", id),
			zap.Uint("stage_id", req.StageID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to move application"})
	}

	prometheus.ApplicationOperationCounter.WithLabelValues("stage_move").Inc()
	log.Info("Application moved to stage",
		zap.Uint("application_id", id),
		zap.Uint("stage_id", req.StageID),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Application moved successfully"})
}

// GetApplicationStageLogs returns the stage history of an application
func GetApplicationStageLogs(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	if _, ok := applicationOwnerOr403(c, id); !ok {
		return nil
	}

	logs, err := library.NewApplicationLibrary(database.GetDB()).StageLogs(id)
	if err != nil {
		logger.FromContext(c).Error("Failed to fetch stage logs", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch stage logs"})
	}
	return c.JSON(http.StatusOK, logs)
}

// TrashApplication soft-deletes an application
func TrashApplication(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	if _, ok := applicationOwnerOr403(c, id); !ok {
		return nil
	}

	applicationLib := library.NewApplicationLibrary(database.GetDB())
	if err := applicationLib.Lifecycle.SoftDelete(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		}
		log.Error("Failed to trash application", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete application"})
	}

	prometheus.RecordLifecycleOperation("application", "trash")
	return c.JSON(http.StatusOK, echo.Map{"message": "Application deleted successfully"})
}

// RestoreApplication clears an application's deletion marker
func RestoreApplication(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	if _, ok := applicationOwnerOr403(c, id); !ok {
		return nil
	}

	applicationLib := library.NewApplicationLibrary(database.GetDB())
	if err := applicationLib.Lifecycle.Restore(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		}
		log.Error("Failed to restore application", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to restore application"})
	}

	prometheus.RecordLifecycleOperation("application", "restore")
	return c.JSON(http.StatusOK, echo.Map{"message": "Application restored successfully"})
}

// PurgeApplication permanently removes an application row
func PurgeApplication(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	if _, ok := applicationOwnerOr403(c, id); !ok {
		return nil
	}

	applicationLib := library.NewApplicationLibrary(database.GetDB())
	if err := applicationLib.Lifecycle.HardDelete(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		}
		log.Error("Failed to purge application", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete application"})
	}

	prometheus.RecordLifecycleOperation("application", "purge")
	return c.JSON(http.StatusOK, echo.Map{"message": "Application permanently deleted"})
}

// GetApplicationTrashedStatus reports whether an application is trashed
func GetApplicationTrashedStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	applicationLib := library.NewApplicationLibrary(database.GetDB())
	trashed, err := applicationLib.Lifecycle.IsTrashed(id)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Application not found"})
		}
		logger.FromContext(c).Error("Failed to check application status", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check application"})
	}

	return c.JSON(http.StatusOK, echo.Map{"trashed": trashed})
}

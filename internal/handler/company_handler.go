package handler

import (
	"errors"
	"net/http"
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
)

// CreateCompanyRequest defines the payload for company creation
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	LogoID      *uint  `json:"logo_id"`
	CoverID     *uint  `json:"cover_id"`
}

// UpdateCompanyRequest defines the payload for partial company updates
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Website     *string `json:"website" validate:"omitempty,url,max=255"`
	LogoID      *uint   `json:"logo_id"`
	CoverID     *uint   `json:"cover_id"`
}

// GetCompany returns a company by ID
func GetCompany(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	company, err := library.NewCompanyLibrary(database.GetDB()).ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
	}
	return c.JSON(http.StatusOK, company)
}

// GetCompanyBySlug returns a company by its unique slug
func GetCompanyBySlug(c echo.Context) error {
	company, err := library.NewCompanyLibrary(database.GetDB()).BySlug(c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
	}
	return c.JSON(http.StatusOK, company)
}

// CreateCompany creates a company owned by the authenticated user
func CreateCompany(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	company := model.Company{
		OwnerID:     userID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Website:     req.Website,
		LogoID:      req.LogoID,
		CoverID:     req.CoverID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	companyLib := library.NewCompanyLibrary(database.GetDB())
	if err := companyLib.Create(&company); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"errors": echo.Map{"slug": "The slug has already been taken."},
			})
		}
		log.Error("Failed to create company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create company"})
	}

	log.Info("Company created",
		zap.Uint("id", company.ID),
		zap.String("slug", company.Slug),
		zap.Uint("owner_id", userID))
	return c.JSON(http.StatusCreated, company)
}

// UpdateCompany updates a company. Only the owner may do this; the slug
// stays untouched unless the request changes it explicitly.
func UpdateCompany(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	company, err := companyLib.ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
	}

	if company.OwnerID != userID {
		log.Warn("Unauthorized company update attempt",
			zap.Uint("company_id", id),
			zap.Uint("owner_id", company.OwnerID),
			zap.Uint("user_id", userID))
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	var req UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	if req.Slug != nil && *req.Slug != company.Slug && companyLib.SlugTaken(*req.Slug, id) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"slug": "The slug has already been taken."},
		})
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Slug != nil {
		company.Slug = *req.Slug
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.LogoID != nil {
		company.LogoID = req.LogoID
	}
	if req.CoverID != nil {
		company.CoverID = req.CoverID
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := companyLib.Update(company); err != nil {
		log.Error("Failed to update company", zap.Uint("company_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update company"})
	}

	return c.JSON(http.StatusOK, company)
}

// companyOwnerOr403 loads a company including trashed rows and verifies
// ownership before a lifecycle operation.
func companyOwnerOr403(c echo.Context, id uint) (*model.Company, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		return nil, false
	}

	var company model.Company
	if err := database.GetDB().Unscoped().First(&company, id).Error; err != nil {
		c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
		return nil, false
	}

	if company.OwnerID != userID {
		prometheus.RecordAuthError("wrong_owner")
		c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
		return nil, false
	}

	return &company, true
}

// TrashCompany soft-deletes a company
func TrashCompany(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	if _, ok := companyOwnerOr403(c, id); !ok {
		return nil
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	if err := companyLib.Lifecycle.SoftDelete(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
		}
		log.Error("Failed to trash company", zap.Uint("company_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete company"})
	}

	prometheus.RecordLifecycleOperation("company", "trash")
	return c.JSON(http.StatusOK, echo.Map{"message": "Company deleted successfully"})
}

// RestoreCompany clears a company's deletion marker
func RestoreCompany(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	if _, ok := companyOwnerOr403(c, id); !ok {
		return nil
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	if err := companyLib.Lifecycle.Restore(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
		}
		log.Error("Failed to restore company", zap.Uint("company_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to restore company"})
	}

	prometheus.RecordLifecycleOperation("company", "restore")
	return c.JSON(http.StatusOK, echo.Map{"message": "Company restored successfully"})
}

// PurgeCompany permanently removes a company row
func PurgeCompany(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	if _, ok := companyOwnerOr403(c, id); !ok {
		return nil
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	if err := companyLib.Lifecycle.HardDelete(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
		}
		log.Error("Failed to purge company", zap.Uint("company_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete company"})
	}

	prometheus.RecordLifecycleOperation("company", "purge")
	return c.JSON(http.StatusOK, echo.Map{"message": "Company permanently deleted"})
}

// GetCompanyTrashedStatus reports whether a company is soft-deleted
func GetCompanyTrashedStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	trashed, err := companyLib.Lifecycle.IsTrashed(id)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company not found"})
		}
		logger.FromContext(c).Error("Failed to check company status", zap.Uint("company_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check company"})
	}

	return c.JSON(http.StatusOK, echo.Map{"trashed": trashed})
}

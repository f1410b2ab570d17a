package handler

import (
	"errors"
	"net/http"

	"jobboard-service/internal/library"
	"jobboard-service/internal/model"
	"jobboard-service/internal/onboarding"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/logger"
	"jobboard-service/pkg/validate"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OnboardingCompanyRequest defines the payload for the company stage
type OnboardingCompanyRequest struct {
	CompanyName        string `json:"company_name" form:"company_name" validate:"required,max=255"`
	CompanySlug        string `json:"company_slug" form:"company_slug" validate:"required,max=255"`
	CompanyWebsite     string `json:"company_website" form:"company_website" validate:"required,url,max=255"`
	CompanyDescription string `json:"company_description" form:"company_description" validate:"max=1000"`
}

// UpdateStageRequest defines the payload for setting an explicit stage
type UpdateStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// UpdateStatusRequest defines the payload for setting the onboarding flag
type UpdateStatusRequest struct {
	IsOnboarding *bool `json:"is_onboarding"`
}

// onboardingUser resolves the authenticated user for a stage-mutating
// endpoint. When the user has already finished onboarding the request
// short-circuits with the informational 200 response; that is a deliberate
// no-op, not a failure.
func onboardingUser(c echo.Context) (*model.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		return nil, false
	}

	if !user.IsOnboarding {
		c.JSON(http.StatusOK, echo.Map{"message": "User is already onboarded"})
		return nil, false
	}

	return user, true
}

// GetCurrentStage returns the user's current onboarding stage
func GetCurrentStage(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"onboarding_stage": user.OnboardingStage,
	})
}

// GetOnboardingStatus returns whether the user is still onboarding
func GetOnboardingStatus(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"is_onboarding": user.IsOnboarding,
	})
}

// UpdateOnboardingStage sets the user's stage to an explicit value
func UpdateOnboardingStage(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req UpdateStageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	stage := onboarding.Stage(req.Stage)
	if !stage.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid onboarding stage"})
	}

	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStage(user.ID, stage); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(stage))
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Onboarding stage updated successfully",
		"onboarding_stage": string(stage),
	})
}

// UpdateOnboardingStatus sets the user's onboarding flag
func UpdateOnboardingStatus(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	isOnboarding := true
	if req.IsOnboarding != nil {
		isOnboarding = *req.IsOnboarding
	}

	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStatus(user.ID, isOnboarding); err != nil {
		log.Error("Failed to update onboarding status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding status"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Onboarding status updated successfully",
		"is_onboarding": isOnboarding,
	})
}

// OnboardingIndex is the landing endpoint for a named stage. The user must
// be at exactly the requested stage; mismatches fail rather than silently
// correcting.
func OnboardingIndex(c echo.Context) error {
	stage := onboarding.Stage(c.Param("stage"))
	if !stage.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid onboarding stage"})
	}

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	if err := onboarding.Require(onboarding.Stage(user.OnboardingStage), stage); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User is not at the requested onboarding stage"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"onboarding_stage": user.OnboardingStage,
		"is_onboarding":    user.IsOnboarding,
		"user":             user,
	})
}

// OnboardingWelcome handles the "welcome" stage after the user presses
// the get-started button and advances them to "profile".
func OnboardingWelcome(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	nextStage := onboarding.StageProfile
	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStage(user.ID, nextStage); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(nextStage))
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Welcome to the onboarding process!",
		"onboarding_stage": string(nextStage),
		"is_onboarding":    true,
		"user":             user,
	})
}

// OnboardingProfile handles the "profile" stage: a required profile
// picture upload plus an optional cover picture. A failed upload leaves
// the stage untouched.
func OnboardingProfile(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	if err := onboarding.Require(onboarding.Stage(user.OnboardingStage), onboarding.StageProfile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User is not at the profile onboarding stage"})
	}

	profileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"profile_picture": "The profile_picture field is required."},
		})
	}

	fileLib := library.NewFileLibrary(database.GetDB(), fileStore)
	userLib := library.NewUserLibrary(database.GetDB())

	profileFile, err := uploadFormFile(fileLib, profileHeader)
	if err != nil {
		return uploadError(c, log, "profile_picture", err)
	}

	if err := userLib.SetProfilePicture(user.ID, profileFile.ID); err != nil {
		log.Error("Failed to update profile picture", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update profile picture"})
	}

	// The cover picture is optional
	if coverHeader, err := c.FormFile("cover_picture"); err == nil {
		coverFile, err := uploadFormFile(fileLib, coverHeader)
		if err != nil {
			return uploadError(c, log, "cover_picture", err)
		}
		if err := userLib.SetCoverPicture(user.ID, coverFile.ID); err != nil {
			log.Error("Failed to update cover picture", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update cover picture"})
		}
	}

	nextStage := onboarding.StageCompany
	if err := userLib.SetOnboardingStage(user.ID, nextStage); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(nextStage))
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Profile updated successfully",
		"onboarding_stage": string(nextStage),
		"is_onboarding":    true,
		"user":             user,
	})
}

// OnboardingCompany handles the "company" stage: creates the user's
// company and advances them to "complete".
func OnboardingCompany(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	if err := onboarding.Require(onboarding.Stage(user.OnboardingStage), onboarding.StageCompany); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User is not at the company onboarding stage"})
	}

	var req OnboardingCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	company := model.Company{
		OwnerID:     user.ID,
		Name:        req.CompanyName,
		Slug:        req.CompanySlug,
		Website:     req.CompanyWebsite,
		Description: req.CompanyDescription,
	}

	// Optional company logo upload
	fileLib := library.NewFileLibrary(database.GetDB(), fileStore)
	if logoHeader, err := c.FormFile("company_logo"); err == nil {
		logoFile, err := uploadFormFile(fileLib, logoHeader)
		if err != nil {
			return uploadError(c, log, "company_logo", err)
		}
		company.LogoID = &logoFile.ID
	}

	companyLib := library.NewCompanyLibrary(database.GetDB())
	if err := companyLib.Create(&company); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"errors": echo.Map{"company_slug": "The company_slug has already been taken."},
			})
		}
		log.Error("Failed to create company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create company"})
	}

	nextStage := onboarding.StageComplete
	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStage(user.ID, nextStage); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(nextStage))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Company created successfully",
		"company": company,
	})
}

// OnboardingComplete finishes the flow: only legal from the "complete"
// stage, and clears the still-onboarding flag.
func OnboardingComplete(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	if err := onboarding.Require(onboarding.Stage(user.OnboardingStage), onboarding.StageComplete); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User is not at the complete onboarding stage"})
	}

	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStatus(user.ID, false); err != nil {
		log.Error("Failed to update onboarding status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding status"})
	}

	prometheus.OnboardingUsersGauge.Dec()
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Onboarding process completed successfully",
		"is_onboarding": false,
		"user":          user,
	})
}

// GetNextStage returns the stage after the user's current stage
func GetNextStage(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	next, err := onboarding.Stage(user.OnboardingStage).Next()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No next stage available"})
	}

	return c.JSON(http.StatusOK, echo.Map{"next_stage": string(next)})
}

// GetPreviousStage returns the stage before the user's current stage
func GetPreviousStage(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	previous, err := onboarding.Stage(user.OnboardingStage).Previous()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No previous stage available"})
	}

	return c.JSON(http.StatusOK, echo.Map{"previous_stage": string(previous)})
}

// MoveToNextStage advances the user one stage forward
func MoveToNextStage(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	next, err := onboarding.Stage(user.OnboardingStage).Next()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No next stage available"})
	}

	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStage(user.ID, next); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(next))
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Moved to next onboarding stage successfully",
		"next_stage": string(next),
	})
}

// MoveToPreviousStage moves the user one stage back
func MoveToPreviousStage(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := onboardingUser(c)
	if !ok {
		return nil
	}

	previous, err := onboarding.Stage(user.OnboardingStage).Previous()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No previous stage available"})
	}

	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.SetOnboardingStage(user.ID, previous); err != nil {
		log.Error("Failed to update onboarding stage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update onboarding stage"})
	}

	prometheus.RecordOnboardingTransition(string(previous))
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Moved to previous onboarding stage successfully",
		"previous_stage": string(previous),
	})
}

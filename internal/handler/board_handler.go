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

// CreateBoardRequest defines the payload for board creation
type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	CompanyID   uint   `json:"company_id" validate:"required"`
	Description string `json:"description" validate:"max=1000"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	LogoID      *uint  `json:"logo_id"`
	CoverID     *uint  `json:"cover_id"`
	ThemeColor  string `json:"theme_color" validate:"omitempty,max=7"`
	IsPublic    *bool  `json:"is_public"`
}

// UpdateBoardRequest defines the payload for partial board updates
type UpdateBoardRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	CompanyID   *uint   `json:"company_id"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Slug        *string `json:"slug" validate:"omitempty,max=255"`
	LogoID      *uint   `json:"logo_id"`
	CoverID     *uint   `json:"cover_id"`
	ThemeColor  *string `json:"theme_color" validate:"omitempty,max=7"`
	IsPublic    *bool   `json:"is_public"`
}

// ListBoards returns every board
func ListBoards(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("list").Inc()

	defer prometheus.TrackDBOperation("query")(time.Now())
	boards, err := library.NewBoardLibrary(database.GetDB()).All()
	if err != nil {
		log.Error("Failed to list boards", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve boards"})
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoardsByUserID returns the boards owned by a user
func GetBoardsByUserID(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	boards, err := library.NewBoardLibrary(database.GetDB()).ByUserID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve boards"})
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoardsByCompanyID returns the boards belonging to a company
func GetBoardsByCompanyID(c echo.Context) error {
	companyID, err := parseID(c, "companyId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company ID"})
	}

	boards, err := library.NewBoardLibrary(database.GetDB()).ByCompanyID(companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve boards"})
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoard returns a board by ID
func GetBoard(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	board, err := library.NewBoardLibrary(database.GetDB()).ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}
	return c.JSON(http.StatusOK, board)
}

// GetBoardBySlug returns a board by its unique slug
func GetBoardBySlug(c echo.Context) error {
	board, err := library.NewBoardLibrary(database.GetDB()).BySlug(c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}
	return c.JSON(http.StatusOK, board)
}

// CreateBoard creates a board owned by the authenticated user
func CreateBoard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("create").Inc()

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	board := model.Board{
		UserID:      userID,
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
		LogoID:      req.LogoID,
		CoverID:     req.CoverID,
		ThemeColor:  req.ThemeColor,
	}
	if req.IsPublic != nil {
		board.IsPublic = *req.IsPublic
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	boardLib := library.NewBoardLibrary(database.GetDB())
	if err := boardLib.Create(&board); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"errors": echo.Map{"slug": "The slug has already been taken."},
			})
		}
		log.Error("Failed to create board", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create board"})
	}

	log.Info("Board created",
		zap.Uint("id", board.ID),
		zap.String("name", board.Name),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, board)
}

// UpdateBoard updates a board. Only the board's owner may do this.
func UpdateBoard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("update").Inc()

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	boardLib := library.NewBoardLibrary(database.GetDB())
	board, err := boardLib.ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}

	if board.UserID != userID {
		log.Warn("Unauthorized board update attempt",
			zap.Uint("board_id", id),
			zap.Uint("owner_id", board.UserID),
			zap.Uint("user_id", userID))
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	var req UpdateBoardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := validate.Struct(&req); err != nil {
		return validate.BadRequest(c, err)
	}

	if req.Slug != nil && *req.Slug != board.Slug && boardLib.SlugTaken(*req.Slug, id) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"slug": "The slug has already been taken."},
		})
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.CompanyID != nil {
		board.CompanyID = *req.CompanyID
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Slug != nil {
		board.Slug = *req.Slug
	}
	if req.LogoID != nil {
		board.LogoID = req.LogoID
	}
	if req.CoverID != nil {
		board.CoverID = req.CoverID
	}
	if req.ThemeColor != nil {
		board.ThemeColor = *req.ThemeColor
	}
	if req.IsPublic != nil {
		board.IsPublic = *req.IsPublic
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := boardLib.Update(board); err != nil {
		log.Error("Failed to update board", zap.Uint("board_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update board"})
	}

	return c.JSON(http.StatusOK, board)
}

// DeleteBoard soft-deletes a board. Only the board's owner may do this.
func DeleteBoard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("delete").Inc()

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	boardLib := library.NewBoardLibrary(database.GetDB())
	board, err := boardLib.ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}

	if board.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := boardLib.Lifecycle.SoftDelete(id); err != nil {
		log.Error("Failed to delete board", zap.Uint("board_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete board"})
	}

	prometheus.RecordLifecycleOperation("board", "trash")
	log.Info("Board deleted", zap.Uint("board_id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Board deleted successfully"})
}

// RestoreBoard clears a board's deletion marker. Only the owner may do
// this; the lookup has to include trashed rows.
func RestoreBoard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("restore").Inc()

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	// Trashed boards are invisible to the default scope
	var board model.Board
	if err := database.GetDB().Unscoped().First(&board, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}

	if board.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	boardLib := library.NewBoardLibrary(database.GetDB())
	if err := boardLib.Lifecycle.Restore(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
		}
		log.Error("Failed to restore board", zap.Uint("board_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to restore board"})
	}

	prometheus.RecordLifecycleOperation("board", "restore")
	return c.JSON(http.StatusOK, echo.Map{"message": "Board restored successfully"})
}

// PurgeBoard permanently removes a board row, trashed or not. Only the
// owner may do this.
func PurgeBoard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BoardOperationCounter.WithLabelValues("purge").Inc()

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var board model.Board
	if err := database.GetDB().Unscoped().First(&board, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
	}

	if board.UserID != userID {
		prometheus.RecordAuthError("wrong_owner")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized"})
	}

	boardLib := library.NewBoardLibrary(database.GetDB())
	if err := boardLib.Lifecycle.HardDelete(id); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
		}
		log.Error("Failed to purge board", zap.Uint("board_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete board"})
	}

	prometheus.RecordLifecycleOperation("board", "purge")
	return c.JSON(http.StatusOK, echo.Map{"message": "Board permanently deleted"})
}

// GetBoardTrashedStatus reports whether a board is soft-deleted
func GetBoardTrashedStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid board ID"})
	}

	boardLib := library.NewBoardLibrary(database.GetDB())
	trashed, err := boardLib.Lifecycle.IsTrashed(id)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Board not found"})
		}
		logger.FromContext(c).Error("Failed to check board status", zap.Uint("board_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check board"})
	}

	return c.JSON(http.StatusOK, echo.Map{"trashed": trashed})
}

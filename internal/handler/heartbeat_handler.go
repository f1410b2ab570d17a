package handler

import (
	"net/http"

	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListHeartbeats returns all recorded heartbeats, newest first
func ListHeartbeats(c echo.Context) error {
	var heartbeats []model.Heartbeat
	if err := database.GetDB().Order("created_at desc").Find(&heartbeats).Error; err != nil {
		logger.FromContext(c).Error("Failed to list heartbeats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch heartbeats"})
	}
	return c.JSON(http.StatusOK, heartbeats)
}

// CreateHeartbeat records a client check-in. Works with or without a
// token; a valid one attaches the user and marks it authenticated.
func CreateHeartbeat(c echo.Context) error {
	heartbeat := model.Heartbeat{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	if userID, ok := currentUserID(c); ok {
		heartbeat.UserID = &userID
		heartbeat.IsAuthenticated = true
	}

	if err := database.GetDB().Create(&heartbeat).Error; err != nil {
		logger.FromContext(c).Error("Failed to create heartbeat", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create heartbeat"})
	}

	return c.JSON(http.StatusCreated, heartbeat)
}

// GetHeartbeat returns one heartbeat by ID
func GetHeartbeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid heartbeat ID"})
	}

	var heartbeat model.Heartbeat
	if err := database.GetDB().First(&heartbeat, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Heartbeat not found"})
	}
	return c.JSON(http.StatusOK, heartbeat)
}

// UpdateHeartbeat refreshes a heartbeat's network details from the
// current request.
func UpdateHeartbeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid heartbeat ID"})
	}

	db := database.GetDB()
	var heartbeat model.Heartbeat
	if err := db.First(&heartbeat, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Heartbeat not found"})
	}

	heartbeat.IPAddress = c.RealIP()
	heartbeat.UserAgent = c.Request().UserAgent()

	if err := db.Save(&heartbeat).Error; err != nil {
		logger.FromContext(c).Error("Failed to update heartbeat", zap.Uint("heartbeat_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update heartbeat"})
	}

	return c.JSON(http.StatusOK, heartbeat)
}

// DeleteHeartbeat removes a heartbeat permanently
func DeleteHeartbeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid heartbeat ID"})
	}

	result := database.GetDB().Delete(&model.Heartbeat{}, id)
	if result.Error != nil {
		logger.FromContext(c).Error("Failed to delete heartbeat", zap.Uint("heartbeat_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete heartbeat"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Heartbeat not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Heartbeat deleted successfully"})
}

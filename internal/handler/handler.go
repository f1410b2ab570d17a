package handler

import (
	"jobboard-service/internal/library"
	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/storage"

	"github.com/labstack/echo/v4"
)

// fileStore holds the upload content store, wired by main at startup
var fileStore *storage.Store

// SetFileStore wires the upload content store into the handlers
func SetFileStore(s *storage.Store) {
	fileStore = s
}

// currentUserID returns the authenticated user's id from the context set
// by the auth middleware.
func currentUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

// currentUser loads the authenticated user's record
func currentUser(c echo.Context) (*model.User, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	user, err := library.NewUserLibrary(database.GetDB()).GetByID(userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

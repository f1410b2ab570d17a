// Package library holds the thin per-entity data-access layer. Handlers
// validate input and delegate here; nothing in this package touches HTTP.
package library

import (
	"errors"

	"jobboard-service/internal/model"
	"jobboard-service/internal/onboarding"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique column (email, username, slug)
// would collide with an existing row.
var ErrDuplicate = errors.New("record already exists")

// UserLibrary provides persistence access for users
type UserLibrary struct {
	db *gorm.DB
}

// NewUserLibrary creates a user library over the given database
func NewUserLibrary(db *gorm.DB) *UserLibrary {
	return &UserLibrary{db: db}
}

// GetByID finds a user by primary key
func (l *UserLibrary) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := l.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail finds a user by email address
func (l *UserLibrary) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := l.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername finds a user by username
func (l *UserLibrary) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := l.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user after checking the unique columns
func (l *UserLibrary) Create(user *model.User) error {
	var count int64
	l.db.Model(&model.User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&count)
	if count > 0 {
		return ErrDuplicate
	}
	return l.db.Create(user).Error
}

// SetOnboardingStage moves the user's stage pointer. The read-modify-write
// is last-writer-wins; one user acting from one session is the expected
// access pattern.
func (l *UserLibrary) SetOnboardingStage(userID uint, stage onboarding.Stage) error {
	result := l.db.Model(&model.User{}).Where("id = ?", userID).
		Update("onboarding_stage", string(stage))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetOnboardingStatus flips the still-onboarding flag
func (l *UserLibrary) SetOnboardingStatus(userID uint, isOnboarding bool) error {
	result := l.db.Model(&model.User{}).Where("id = ?", userID).
		Update("is_onboarding", isOnboarding)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetProfilePicture attaches an uploaded file as the user's profile picture
func (l *UserLibrary) SetProfilePicture(userID, fileID uint) error {
	result := l.db.Model(&model.User{}).Where("id = ?", userID).
		Update("profile_picture_id", fileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetCoverPicture attaches an uploaded file as the user's cover picture
func (l *UserLibrary) SetCoverPicture(userID, fileID uint) error {
	result := l.db.Model(&model.User{}).Where("id = ?", userID).
		Update("cover_picture_id", fileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package library

import (
	"jobboard-service/internal/lifecycle"
	"jobboard-service/internal/model"

	"gorm.io/gorm"
)

// BoardLibrary provides persistence access for boards. The soft-delete
// lifecycle is composed in, not inherited from the model.
type BoardLibrary struct {
	db        *gorm.DB
	Lifecycle *lifecycle.Lifecycle
}

// NewBoardLibrary creates a board library over the given database
func NewBoardLibrary(db *gorm.DB) *BoardLibrary {
	return &BoardLibrary{
		db:        db,
		Lifecycle: lifecycle.New(db, &model.Board{}),
	}
}

// All returns every board not currently trashed
func (l *BoardLibrary) All() ([]model.Board, error) {
	var boards []model.Board
	if err := l.db.Order("created_at desc").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ByUserID returns the boards owned by a user
func (l *BoardLibrary) ByUserID(userID uint) ([]model.Board, error) {
	var boards []model.Board
	if err := l.db.Where("user_id = ?", userID).Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ByCompanyID returns the boards belonging to a company
func (l *BoardLibrary) ByCompanyID(companyID uint) ([]model.Board, error) {
	var boards []model.Board
	if err := l.db.Where("company_id = ?", companyID).Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ByID finds a board by primary key
func (l *BoardLibrary) ByID(id uint) (*model.Board, error) {
	var board model.Board
	if err := l.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// BySlug finds a board by its unique slug
func (l *BoardLibrary) BySlug(slug string) (*model.Board, error) {
	var board model.Board
	if err := l.db.Where("slug = ?", slug).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// SlugTaken reports whether another board already uses the slug. The check
// includes trashed boards since the unique index covers them too.
func (l *BoardLibrary) SlugTaken(slug string, excludeID uint) bool {
	var count int64
	l.db.Unscoped().Model(&model.Board{}).
		Where("slug = ? AND id != ?", slug, excludeID).
		Count(&count)
	return count > 0
}

// Create inserts a new board after checking the slug
func (l *BoardLibrary) Create(board *model.Board) error {
	if board.Slug != "" && l.SlugTaken(board.Slug, 0) {
		return ErrDuplicate
	}
	return l.db.Create(board).Error
}

// Update saves changed fields on an existing board
func (l *BoardLibrary) Update(board *model.Board) error {
	return l.db.Save(board).Error
}

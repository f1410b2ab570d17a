package library

import (
	"jobboard-service/internal/lifecycle"
	"jobboard-service/internal/model"

	"gorm.io/gorm"
)

// CompanyLibrary provides persistence access for companies
type CompanyLibrary struct {
	db        *gorm.DB
	Lifecycle *lifecycle.Lifecycle
}

// NewCompanyLibrary creates a company library over the given database
func NewCompanyLibrary(db *gorm.DB) *CompanyLibrary {
	return &CompanyLibrary{
		db:        db,
		Lifecycle: lifecycle.New(db, &model.Company{}),
	}
}

// ByID finds a company by primary key
func (l *CompanyLibrary) ByID(id uint) (*model.Company, error) {
	var company model.Company
	if err := l.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// BySlug finds a company by its unique slug
func (l *CompanyLibrary) BySlug(slug string) (*model.Company, error) {
	var company model.Company
	if err := l.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ByOwnerID returns the companies owned by a user
func (l *CompanyLibrary) ByOwnerID(ownerID uint) ([]model.Company, error) {
	var companies []model.Company
	if err := l.db.Where("owner_id = ?", ownerID).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// SlugTaken reports whether another company already uses the slug
func (l *CompanyLibrary) SlugTaken(slug string, excludeID uint) bool {
	var count int64
	l.db.Unscoped().Model(&model.Company{}).
		Where("slug = ? AND id != ?", slug, excludeID).
		Count(&count)
	return count > 0
}

// Create inserts a new company after checking the slug
func (l *CompanyLibrary) Create(company *model.Company) error {
	if l.SlugTaken(company.Slug, 0) {
		return ErrDuplicate
	}
	return l.db.Create(company).Error
}

// Update saves changed fields on an existing company
func (l *CompanyLibrary) Update(company *model.Company) error {
	return l.db.Save(company).Error
}

package library

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"jobboard-service/internal/model"
	"jobboard-service/pkg/storage"

	"gorm.io/gorm"
)

// Upload rejections are validation failures, not server errors
var (
	ErrUnsupportedType      = errors.New("unsupported file type")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

// SupportedFileTypes is the fixed MIME allow-list for uploads
var SupportedFileTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/msword",
}

// SupportedFileExtensions is the fixed extension allow-list for uploads
var SupportedFileExtensions = []string{
	"jpg",
	"jpeg",
	"png",
	"pdf",
	"doc",
	"docx",
}

// FileLibrary persists uploaded binaries through the content store and
// records them as File rows for owners to reference by id.
type FileLibrary struct {
	db    *gorm.DB
	store *storage.Store
}

// NewFileLibrary creates a file library over the given database and store
func NewFileLibrary(db *gorm.DB, store *storage.Store) *FileLibrary {
	return &FileLibrary{db: db, store: store}
}

// GetByID finds a file record by primary key
func (l *FileLibrary) GetByID(id uint) (*model.File, error) {
	var file model.File
	if err := l.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// All returns every file record
func (l *FileLibrary) All() ([]model.File, error) {
	var files []model.File
	if err := l.db.Order("created_at desc").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Upload validates the upload against the allow-lists, persists the bytes
// and creates the File row. The original client file name is kept on the
// record; the stored name is generated.
func (l *FileLibrary) Upload(name, mimeType string, src io.Reader) (*model.File, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	if !contains(SupportedFileTypes, mimeType) {
		return nil, ErrUnsupportedType
	}
	if !contains(SupportedFileExtensions, ext) {
		return nil, ErrUnsupportedExtension
	}

	path, size, err := l.store.Save(src, ext)
	if err != nil {
		return nil, err
	}

	file := model.File{
		Name:      name,
		Path:      path,
		Type:      mimeType,
		Size:      size,
		Extension: ext,
	}
	if err := l.db.Create(&file).Error; err != nil {
		l.store.Remove(path)
		return nil, err
	}

	return &file, nil
}

// Delete removes the stored bytes and then the file record
func (l *FileLibrary) Delete(id uint) error {
	file, err := l.GetByID(id)
	if err != nil {
		return err
	}

	if err := l.store.Remove(file.Path); err != nil {
		return err
	}

	return l.db.Delete(&model.File{}, id).Error
}

// FullPath returns the on-disk location of a stored file for downloads
func (l *FileLibrary) FullPath(file *model.File) string {
	return l.store.FullPath(file.Path)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

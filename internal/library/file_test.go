package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard-service/internal/model"
	"jobboard-service/pkg/config"
	"jobboard-service/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func testFileLibrary(t *testing.T) (*FileLibrary, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.New(&config.StorageConfig{Dir: dir, MaxUploadBytes: 1 << 20})
	require.NoError(t, err)

	db := testDB(t, &model.File{})
	return NewFileLibrary(db, store), dir
}

func TestUploadStoresFile(t *testing.T) {
	lib, dir := testFileLibrary(t)

	file, err := lib.Upload("resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.Type)
	assert.Equal(t, "pdf", file.Extension)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), file.Size)
	assert.NotZero(t, file.ID)

	// The bytes landed under a generated name, not the client's
	assert.NotEqual(t, "resume.pdf", file.Path)
	data, err := os.ReadFile(filepath.Join(dir, file.Path))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	lib, dir := testFileLibrary(t)

	_, err := lib.Upload("notes.pdf", "text/plain", strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// Nothing was written
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	lib, _ := testFileLibrary(t)

	_, err := lib.Upload("script.exe", "application/pdf", strings.NewReader("MZ"))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	// Extension matching ignores case
	file, err := lib.Upload("photo.JPG", "image/jpeg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "jpg", file.Extension)
}

func TestDeleteRemovesBytesAndRow(t *testing.T) {
	lib, dir := testFileLibrary(t)

	file, err := lib.Upload("logo.png", "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)

	require.NoError(t, lib.Delete(file.ID))

	_, err = os.Stat(filepath.Join(dir, file.Path))
	assert.True(t, os.IsNotExist(err))

	_, err = lib.GetByID(file.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

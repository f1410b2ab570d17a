package handler

import (
	"net/http"
	"testing"

	"jobboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFileAccepted(t *testing.T) {
	db := setupTest(t)

	form := newMultipartForm().file("file", "resume.pdf", "application/pdf", "%PDF-1.4 fake")
	c, rec := form.context(t, http.MethodPost, "/files/upload")
	require.NoError(t, UploadFile(c))
	assertStatus(t, rec, http.StatusCreated)

	body := decodeBody(t, rec)
	assert.Equal(t, "resume.pdf", body["name"])
	assert.Equal(t, "pdf", body["extension"])
	assert.Equal(t, "application/pdf", body["type"])

	var count int64
	require.NoError(t, db.Model(&model.File{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUploadFileRejectsDisallowedType(t *testing.T) {
	db := setupTest(t)

	form := newMultipartForm().file("file", "notes.txt", "text/plain", "hello")
	c, rec := form.context(t, http.MethodPost, "/files/upload")
	require.NoError(t, UploadFile(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	body := decodeBody(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "file")

	// Nothing was recorded
	var count int64
	require.NoError(t, db.Model(&model.File{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadFileRejectsDisallowedExtension(t *testing.T) {
	setupTest(t)

	// MIME passes the allow-list but the extension does not
	form := newMultipartForm().file("file", "resume.exe", "application/pdf", "MZ")
	c, rec := form.context(t, http.MethodPost, "/files/upload")
	require.NoError(t, UploadFile(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestGetFileMetadata(t *testing.T) {
	setupTest(t)

	form := newMultipartForm().file("file", "logo.png", "image/png", "pngdata")
	c, rec := form.context(t, http.MethodPost, "/files/upload")
	require.NoError(t, UploadFile(c))
	assertStatus(t, rec, http.StatusCreated)

	c, rec = jsonContext(t, http.MethodGet, "/files/1/extension", nil)
	setParam(c, "id", "1")
	require.NoError(t, GetFileExtension(c))
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "png", decodeBody(t, rec)["extension"])

	c, rec = jsonContext(t, http.MethodGet, "/files/1/size", nil)
	setParam(c, "id", "1")
	require.NoError(t, GetFileSize(c))
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, float64(len("pngdata")), decodeBody(t, rec)["size"])
}

func TestDeleteFile(t *testing.T) {
	db := setupTest(t)

	form := newMultipartForm().file("file", "logo.png", "image/png", "pngdata")
	c, rec := form.context(t, http.MethodPost, "/files/upload")
	require.NoError(t, UploadFile(c))
	assertStatus(t, rec, http.StatusCreated)

	c, rec = jsonContext(t, http.MethodDelete, "/files/1", nil)
	setParam(c, "id", "1")
	require.NoError(t, DeleteFile(c))
	assertStatus(t, rec, http.StatusOK)

	var count int64
	require.NoError(t, db.Model(&model.File{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteFileMissing(t *testing.T) {
	setupTest(t)

	c, rec := jsonContext(t, http.MethodDelete, "/files/42", nil)
	setParam(c, "id", "42")
	require.NoError(t, DeleteFile(c))
	assertStatus(t, rec, http.StatusNotFound)
}

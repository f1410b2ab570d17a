package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"jobboard-service/internal/library"
	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/logger"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// uploadFormFile stores one multipart part through the file library
func uploadFormFile(lib *library.FileLibrary, header *multipart.FileHeader) (*model.File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType := header.Header.Get("Content-Type")
	file, err := lib.Upload(header.Filename, mimeType, src)
	if err != nil {
		return nil, err
	}

	prometheus.UploadCounter.WithLabelValues("stored").Inc()
	return file, nil
}

// uploadError maps an upload failure onto the right response: allow-list
// rejections are validation failures (422), everything else is a storage
// error (500).
func uploadError(c echo.Context, log *zap.Logger, field string, err error) error {
	if errors.Is(err, library.ErrUnsupportedType) || errors.Is(err, library.ErrUnsupportedExtension) {
		prometheus.UploadCounter.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{field: err.Error()},
		})
	}

	prometheus.UploadCounter.WithLabelValues("failed").Inc()
	log.Error("File upload failed", zap.String("field", field), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File upload failed"})
}

// parseID reads a numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ListFiles returns every stored file record
func ListFiles(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	files, err := library.NewFileLibrary(database.GetDB(), fileStore).All()
	if err != nil {
		log.Error("Failed to list files", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve files"})
	}
	return c.JSON(http.StatusOK, files)
}

// GetFile returns a file record by ID
func GetFile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file ID"})
	}

	file, err := library.NewFileLibrary(database.GetDB(), fileStore).GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
	}
	return c.JSON(http.StatusOK, file)
}

// fileAttribute serves the single-attribute endpoints the public board
// pages use (type, name, path, size, extension).
func fileAttribute(c echo.Context, pick func(*model.File) echo.Map) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file ID"})
	}

	file, err := library.NewFileLibrary(database.GetDB(), fileStore).GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
	}
	return c.JSON(http.StatusOK, pick(file))
}

// GetFileType returns a file's MIME type
func GetFileType(c echo.Context) error {
	return fileAttribute(c, func(f *model.File) echo.Map { return echo.Map{"type": f.Type} })
}

// GetFileName returns a file's original name
func GetFileName(c echo.Context) error {
	return fileAttribute(c, func(f *model.File) echo.Map { return echo.Map{"name": f.Name} })
}

// GetFilePath returns a file's stored path
func GetFilePath(c echo.Context) error {
	return fileAttribute(c, func(f *model.File) echo.Map { return echo.Map{"path": f.Path} })
}

// GetFileSize returns a file's size in bytes
func GetFileSize(c echo.Context) error {
	return fileAttribute(c, func(f *model.File) echo.Map { return echo.Map{"size": f.Size} })
}

// GetFileExtension returns a file's extension
func GetFileExtension(c echo.Context) error {
	return fileAttribute(c, func(f *model.File) echo.Map { return echo.Map{"extension": f.Extension} })
}

// UploadFile stores a multipart "file" part and returns the new record
func UploadFile(c echo.Context) error {
	log := logger.FromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": echo.Map{"file": "The file field is required."},
		})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	file, err := uploadFormFile(library.NewFileLibrary(database.GetDB(), fileStore), header)
	if err != nil {
		return uploadError(c, log, "file", err)
	}

	log.Info("File uploaded",
		zap.Uint("id", file.ID),
		zap.String("name", file.Name),
		zap.Int64("size", file.Size))
	return c.JSON(http.StatusCreated, file)
}

// DownloadFile streams the stored bytes back under the original name
func DownloadFile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file ID"})
	}

	fileLib := library.NewFileLibrary(database.GetDB(), fileStore)
	file, err := fileLib.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.File(fileLib.FullPath(file))
}

// DeleteFile removes the stored bytes and the record
func DeleteFile(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := library.NewFileLibrary(database.GetDB(), fileStore).Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
		}
		log.Error("Failed to delete file", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File deletion failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "File deleted successfully"})
}

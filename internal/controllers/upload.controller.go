package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"campusconnect/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type UploadController struct {
	store storage.Storage
}

func NewUploadController(store storage.Storage) *UploadController {
	return &UploadController{store: store}
}

// UploadFile accepts a multipart file, enforces the size and type limits,
// and stores it via the configured storage backend.
func (uc *UploadController) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No file uploaded",
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "File exceeds the 5MB size limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !allowedMimeTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid file type. Only JPEG, PNG, PDF, DOC, and DOCX are allowed.",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	key := "campus-connect/" + uuid.New().String() + ext
	url, err := uc.store.Save(c.Request.Context(), key, file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "File upload failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

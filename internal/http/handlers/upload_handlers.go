package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
)

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandlers handles profile photo uploads
type UploadHandlers struct {
	storage domain.FileStorage
}

// NewUploadHandlers creates new upload handlers
func NewUploadHandlers(storage domain.FileStorage) *UploadHandlers {
	return &UploadHandlers{storage: storage}
}

// UploadPhoto handles POST /files/photos
func (h *UploadHandlers) UploadPhoto(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "File storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "photo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedPhotoExts[ext] || !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only image files (jpg, jpeg, png, gif, webp) are allowed"})
		return
	}

	prefix := c.PostForm("prefix")
	if prefix == "" {
		prefix = "photo"
	}
	objectName := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), ext)

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Request.Context(), objectName, file, fileHeader.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store uploaded file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

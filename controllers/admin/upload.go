package adminController

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadRequest struct {
	FileName   string `json:"fileName" binding:"required"`
	FileBase64 string `json:"fileBase64" binding:"required"`
}

// UploadDir resolves where product images land on disk. The directory is
// served statically under /uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// POST /admin/upload — decodes a base64 image payload, stores it under a
// collision-resistant generated name, and returns the public URL.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fileName and fileBase64 are required"})
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.FileBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 payload"})
			return
		}

		ext := strings.ToLower(filepath.Ext(req.FileName))
		if ext == "" {
			ext = ".jpg"
		}
		filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

		saveDir := filepath.Join(UploadDir(), "products")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
			return
		}
		if err := os.WriteFile(filepath.Join(saveDir, filename), data, 0644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Image uploaded successfully",
			"path":    filepath.Join("products", filename),
			"url":     fmt.Sprintf("/uploads/products/%s", filename),
		})
	}
}

package utils

import (
	"easy-shop/models"
	"fmt"
	"path/filepath"
	"strings"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func ValidateImage(filename string, size, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return &models.ValidationError{Field: "image", Message: "Invalid file type. Only jpg, jpeg, png, gif, webp allowed"}
	}
	if size > maxSize {
		return &models.ValidationError{Field: "image", Message: fmt.Sprintf("File too large (max %dMB)", maxSize/(1024*1024))}
	}
	return nil
}

package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms/models"

	"github.com/google/uuid"
)

// SaveUploadedFile writes an uploaded file under destDir with a generated
// public ID as its name and returns the asset ingestion record (unsaved).
func SaveUploadedFile(file *multipart.FileHeader, destDir string, uploadedBy uint) (*models.MediaAsset, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	ext := filepath.Ext(file.Filename)
	publicID := uuid.NewString()
	filePath := filepath.Join(destDir, publicID+ext)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return nil, err
	}

	asset := &models.MediaAsset{
		PublicID:     publicID,
		URL:          GetFileURL(publicID + ext),
		Format:       strings.TrimPrefix(ext, "."),
		SizeBytes:    written,
		ResourceKind: resourceKindFromExt(ext),
		UploadedBy:   uploadedBy,
	}

	return asset, nil
}

func resourceKindFromExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp4", "mov", "webm", "mkv", "avi":
		return "video"
	case "jpg", "jpeg", "png", "gif", "webp":
		return "image"
	}
	return "raw"
}

// GetFileURL maps a stored file name to its public URL
func GetFileURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return "/uploads/" + fileName
}

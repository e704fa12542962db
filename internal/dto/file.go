package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// FileInfo returns stored-file metadata with a retrieval URL.
type FileInfo struct {
	FileID           int64     `json:"fileId"`
	OriginalFileName string    `json:"originalFileName"`
	FileName         string    `json:"fileName"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize"`
	DownloadURL      string    `json:"downloadUrl"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// FileShareLink is a tokenized download URL with its expiry.
type FileShareLink struct {
	FileID    int64     `json:"fileId"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewFileInfo maps a file model onto the info shape.
func NewFileInfo(f *models.FileUpload, downloadURL string) FileInfo {
	return FileInfo{
		FileID:           f.ID,
		OriginalFileName: f.OriginalFileName,
		FileName:         f.FileName,
		FileType:         f.FileType,
		FileSize:         f.FileSize,
		DownloadURL:      downloadURL,
		UploadedAt:       f.CreatedAt,
	}
}

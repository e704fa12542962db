package models

import "time"

// FileUpload stores metadata for a stored file. FileName is the uuid-based
// stored name; OriginalFileName is what the client sent.
type FileUpload struct {
	ID               int64     `db:"file_id" json:"fileId"`
	UserID           int64     `db:"user_id" json:"userId"`
	OriginalFileName string    `db:"original_file_name" json:"originalFileName"`
	FileName         string    `db:"file_name" json:"fileName"`
	FileType         string    `db:"file_type" json:"fileType"`
	FileSize         int64     `db:"file_size" json:"fileSize"`
	CreatedAt        time.Time `db:"created_at" json:"uploadedAt"`
}

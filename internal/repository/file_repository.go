package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// FileRepository provides database access for stored file metadata.
type FileRepository struct {
	db *sqlx.DB
}

// NewFileRepository creates a new instance of FileRepository.
func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts file metadata and fills in the generated identifier.
func (r *FileRepository) Create(ctx context.Context, file *models.FileUpload) error {
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO file_uploads (user_id, original_file_name, file_name, file_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING file_id`
	if err := r.db.QueryRowxContext(ctx, query,
		file.UserID, file.OriginalFileName, file.FileName, file.FileType, file.FileSize, file.CreatedAt,
	).Scan(&file.ID); err != nil {
		return fmt.Errorf("create file record: %w", err)
	}
	return nil
}

// FindByID returns file metadata by identifier.
func (r *FileRepository) FindByID(ctx context.Context, id int64) (*models.FileUpload, error) {
	const query = `SELECT file_id, user_id, original_file_name, file_name, file_type, file_size, created_at FROM file_uploads WHERE file_id = $1 LIMIT 1`
	var file models.FileUpload
	if err := r.db.GetContext(ctx, &file, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find file by id: %w", err)
	}
	return &file, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/config"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/storage"
)

type fileRepository interface {
	Create(ctx context.Context, file *models.FileUpload) error
	FindByID(ctx context.Context, id int64) (*models.FileUpload, error)
}

// FileService stores uploaded files on disk and their metadata in the
// database. Stored names are uuid-based so original names never collide.
type FileService struct {
	repo    fileRepository
	storage *storage.LocalStorage
	signer  *storage.SignedURLSigner
	config  config.UploadsConfig
	logger  *zap.Logger
}

// NewFileService constructs a FileService instance.
func NewFileService(repo fileRepository, store *storage.LocalStorage, signer *storage.SignedURLSigner, cfg config.UploadsConfig, logger *zap.Logger) *FileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileService{repo: repo, storage: store, signer: signer, config: cfg, logger: logger}
}

// Upload validates size and MIME type, persists the file and its metadata.
func (s *FileService) Upload(ctx context.Context, userID int64, header *multipart.FileHeader) (*dto.FileInfo, error) {
	if header == nil || header.Size == 0 {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Tệp tải lên trống")
	}
	if s.config.MaxFileSizeBytes > 0 && header.Size > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrBadRequest,
			fmt.Sprintf("Tệp vượt quá kích thước tối đa %d byte", s.config.MaxFileSizeBytes))
	}

	contentType := header.Header.Get("Content-Type")
	if !s.allowedType(contentType) {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Loại tệp %s không được hỗ trợ", contentType))
	}

	src, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể đọc tệp tải lên")
	}
	defer src.Close() //nolint:errcheck

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	if _, err := s.storage.SaveStream(storedName, src); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể lưu tệp")
	}

	file := &models.FileUpload{
		UserID:           userID,
		OriginalFileName: header.Filename,
		FileName:         storedName,
		FileType:         contentType,
		FileSize:         header.Size,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(storedName); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("file", storedName), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể lưu thông tin tệp")
	}

	s.logger.Info("file uploaded", zap.Int64("file_id", file.ID), zap.Int64("user_id", userID), zap.Int64("size", file.FileSize))

	info := dto.NewFileInfo(file, s.downloadURL(file))
	return &info, nil
}

// Info returns stored metadata for a file.
func (s *FileService) Info(ctx context.Context, fileID int64) (*dto.FileInfo, error) {
	file, err := s.load(ctx, fileID)
	if err != nil {
		return nil, err
	}
	info := dto.NewFileInfo(file, s.downloadURL(file))
	return &info, nil
}

// Open returns the metadata and an open handle for streaming a download.
func (s *FileService) Open(ctx context.Context, fileID int64) (*models.FileUpload, string, error) {
	file, err := s.load(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	return file, s.storage.Path(file.FileName), nil
}

// ShareLink returns a tokenized download URL that works without authentication
// until the token expires.
func (s *FileService) ShareLink(ctx context.Context, fileID int64) (*dto.FileShareLink, error) {
	file, err := s.load(ctx, fileID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(strconv.FormatInt(file.ID, 10), file.FileName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo liên kết chia sẻ")
	}

	base := strings.TrimRight(s.config.BaseURL, "/")
	return &dto.FileShareLink{
		FileID:    file.ID,
		URL:       fmt.Sprintf("%s/download?token=%s", base, token),
		ExpiresAt: expiresAt,
	}, nil
}

// OpenShared resolves a share token to the metadata and on-disk path it references.
func (s *FileService) OpenShared(ctx context.Context, token string) (*models.FileUpload, string, error) {
	rawID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "Liên kết tải xuống không hợp lệ hoặc đã hết hạn")
	}

	fileID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "Liên kết tải xuống không hợp lệ hoặc đã hết hạn")
	}

	file, err := s.load(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	// The token pins the stored name it was issued for.
	if file.FileName != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "Liên kết tải xuống không hợp lệ hoặc đã hết hạn")
	}
	return file, s.storage.Path(file.FileName), nil
}

func (s *FileService) load(ctx context.Context, fileID int64) (*models.FileUpload, error) {
	file, err := s.repo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy tệp")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải thông tin tệp")
	}
	return file, nil
}

func (s *FileService) allowedType(contentType string) bool {
	if len(s.config.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range s.config.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func (s *FileService) downloadURL(file *models.FileUpload) string {
	base := strings.TrimRight(s.config.BaseURL, "/")
	return fmt.Sprintf("%s/%d/download", base, file.ID)
}

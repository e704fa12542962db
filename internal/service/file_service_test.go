package service

import (
	"bytes"
	"context"
	"database/sql"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/config"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/storage"
)

type mockFileRepo struct {
	files  map[int64]*models.FileUpload
	nextID int64
}

func (m *mockFileRepo) Create(_ context.Context, file *models.FileUpload) error {
	m.nextID++
	file.ID = m.nextID
	file.CreatedAt = time.Now().UTC()
	if m.files == nil {
		m.files = make(map[int64]*models.FileUpload)
	}
	m.files[file.ID] = file
	return nil
}

func (m *mockFileRepo) FindByID(_ context.Context, id int64) (*models.FileUpload, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, sql.ErrNoRows
}

func newFileFixture(t *testing.T) (*FileService, *mockFileRepo, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	repo := &mockFileRepo{}
	cfg := config.UploadsConfig{
		StorageDir:       dir,
		BaseURL:          "http://localhost:8080/api/v1/files",
		MaxFileSizeBytes: 1024,
		AllowedMIMEs:     []string{"image/png", "text/plain"},
	}
	return NewFileService(repo, store, signer, cfg, zap.NewNop()), repo, dir
}

func multipartHeader(t *testing.T, field, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func TestFileServiceUpload(t *testing.T) {
	svc, repo, dir := newFileFixture(t)

	header := multipartHeader(t, "file", "bao-cao.txt", "text/plain", []byte("nội dung báo cáo"))
	info, err := svc.Upload(context.Background(), 7, header)
	require.NoError(t, err)
	assert.Equal(t, "bao-cao.txt", info.OriginalFileName)
	assert.True(t, strings.HasSuffix(info.FileName, ".txt"))
	assert.NotEqual(t, "bao-cao.txt", info.FileName)
	assert.Contains(t, info.DownloadURL, "/download")

	stored := repo.files[info.FileID]
	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.UserID)

	_, err = os.Stat(filepath.Join(dir, stored.FileName))
	assert.NoError(t, err)
}

func TestFileServiceUploadRejectsOversized(t *testing.T) {
	svc, _, _ := newFileFixture(t)

	header := multipartHeader(t, "file", "lon.txt", "text/plain", bytes.Repeat([]byte("a"), 2048))
	_, err := svc.Upload(context.Background(), 7, header)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "kích thước tối đa")
}

func TestFileServiceUploadRejectsUnsupportedType(t *testing.T) {
	svc, _, _ := newFileFixture(t)

	header := multipartHeader(t, "file", "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	_, err := svc.Upload(context.Background(), 7, header)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "không được hỗ trợ")
}

func TestFileServiceShareLinkRoundTrip(t *testing.T) {
	svc, _, _ := newFileFixture(t)

	header := multipartHeader(t, "file", "anh.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	info, err := svc.Upload(context.Background(), 7, header)
	require.NoError(t, err)

	link, err := svc.ShareLink(context.Background(), info.FileID)
	require.NoError(t, err)
	assert.True(t, link.ExpiresAt.After(time.Now()))

	idx := strings.Index(link.URL, "token=")
	require.GreaterOrEqual(t, idx, 0)
	token := link.URL[idx+len("token="):]

	file, path, err := svc.OpenShared(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, info.FileID, file.ID)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileServiceOpenSharedRejectsBadToken(t *testing.T) {
	svc, _, _ := newFileFixture(t)

	_, _, err := svc.OpenShared(context.Background(), "not.a.valid.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestFileServiceInfoNotFound(t *testing.T) {
	svc, _, _ := newFileFixture(t)

	_, err := svc.Info(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

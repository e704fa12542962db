package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// FileHandler wires file uploads and downloads to HTTP endpoints.
type FileHandler struct {
	service *service.FileService
}

// NewFileHandler creates a new handler.
func NewFileHandler(svc *service.FileService) *FileHandler {
	return &FileHandler{service: svc}
}

// Upload godoc
// @Summary Upload file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "Thiếu tệp tải lên"))
		return
	}

	res, err := h.service.Upload(c.Request.Context(), claims.UserID, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpUploadFile, res)
}

// Info godoc
// @Summary Get file metadata
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /files/{id} [get]
func (h *FileHandler) Info(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Info(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpFileInfo, res)
}

// ShareLink godoc
// @Summary Create shareable download link
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /files/{id}/share-link [get]
func (h *FileHandler) ShareLink(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.ShareLink(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpFileShareLink, res)
}

// DownloadShared godoc
// @Summary Download file via share token
// @Tags Files
// @Produce octet-stream
// @Param token query string true "Share token"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /files/download [get]
func (h *FileHandler) DownloadShared(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrBadRequest, "Thiếu token tải xuống"))
		return
	}

	file, path, err := h.service.OpenShared(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, file.OriginalFileName)
}

// Download godoc
// @Summary Download file
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	file, path, err := h.service.Open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, file.OriginalFileName)
}

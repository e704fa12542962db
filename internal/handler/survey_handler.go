package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// SurveyHandler wires survey lifecycle and sharing to HTTP endpoints.
type SurveyHandler struct {
	service     *service.SurveyService
	permissions *service.PermissionService
}

// NewSurveyHandler creates a new handler.
func NewSurveyHandler(svc *service.SurveyService, permissions *service.PermissionService) *SurveyHandler {
	return &SurveyHandler{service: svc, permissions: permissions}
}

// Create godoc
// @Summary Create survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SurveyCreateRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /surveys [post]
func (h *SurveyHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SurveyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu khảo sát không hợp lệ"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpCreateSurvey, res)
}

// List godoc
// @Summary List accessible surveys
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param search query string false "Search in title"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /surveys [get]
func (h *SurveyHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.SurveyFilter{
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.SurveyStatus(raw)
		filter.Status = &status
	}

	surveys, pagination, err := h.service.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, response.OpListSurveys, surveys, pagination)
}

// Get godoc
// @Summary Get survey
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /surveys/{id} [get]
func (h *SurveyHandler) Get(c *gin.Context) {
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

	res, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpGetSurvey, res)
}

// Update godoc
// @Summary Update survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param payload body dto.SurveyUpdateRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /surveys/{id} [put]
func (h *SurveyHandler) Update(c *gin.Context) {
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

	var req dto.SurveyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu cập nhật không hợp lệ"))
		return
	}

	res, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpUpdateSurvey, res)
}

// Delete godoc
// @Summary Delete survey
// @Tags Surveys
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 204
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetPermissions godoc
// @Summary List sharing grants
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/permissions [get]
func (h *SurveyHandler) GetPermissions(c *gin.Context) {
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

	res, err := h.permissions.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpGetPermissions, res)
}

// UpdatePermissions godoc
// @Summary Replace sharing grants
// @Description Replaces the complete grant list; an empty list revokes all
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param payload body dto.SurveyPermissionUpdateRequest true "Grant list"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/permissions [put]
func (h *SurveyHandler) UpdatePermissions(c *gin.Context) {
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

	var req dto.SurveyPermissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu phân quyền không hợp lệ"))
		return
	}

	res, err := h.permissions.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpUpdatePermissions, res)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// OptionHandler wires answer-option management to HTTP endpoints.
type OptionHandler struct {
	service *service.OptionService
}

// NewOptionHandler creates a new handler.
func NewOptionHandler(svc *service.OptionService) *OptionHandler {
	return &OptionHandler{service: svc}
}

// Create godoc
// @Summary Add option
// @Tags Options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param payload body dto.OptionCreateRequest true "Option payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /questions/{id}/options [post]
func (h *OptionHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	questionID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.OptionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu tùy chọn không hợp lệ"))
		return
	}
	req.QuestionID = questionID

	res, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpCreateOption, res)
}

// ListByQuestion godoc
// @Summary List question options
// @Tags Options
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Envelope
// @Router /questions/{id}/options [get]
func (h *OptionHandler) ListByQuestion(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	questionID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.ListByQuestion(c.Request.Context(), claims.UserID, questionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpListOptions, res)
}

// Update godoc
// @Summary Rename option
// @Tags Options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Option ID"
// @Param payload body dto.OptionUpdateRequest true "Option payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /options/{id} [put]
func (h *OptionHandler) Update(c *gin.Context) {
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

	var req dto.OptionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu tùy chọn không hợp lệ"))
		return
	}

	res, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpUpdateOption, res)
}

// Delete godoc
// @Summary Delete option
// @Tags Options
// @Security BearerAuth
// @Param id path int true "Option ID"
// @Success 204
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /options/{id} [delete]
func (h *OptionHandler) Delete(c *gin.Context) {
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

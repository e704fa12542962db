package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// QuestionHandler wires question management to HTTP endpoints.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new handler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// Create godoc
// @Summary Add question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param payload body dto.QuestionCreateRequest true "Question payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	surveyID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu câu hỏi không hợp lệ"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), claims.UserID, surveyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpCreateQuestion, res)
}

// ListBySurvey godoc
// @Summary List survey questions
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Router /surveys/{id}/questions [get]
func (h *QuestionHandler) ListBySurvey(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	surveyID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.ListBySurvey(c.Request.Context(), claims.UserID, surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpListQuestions, res)
}

// Get godoc
// @Summary Get question detail
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /questions/{id} [get]
func (h *QuestionHandler) Get(c *gin.Context) {
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

	response.OK(c, response.OpGetQuestion, res)
}

// Update godoc
// @Summary Update question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param payload body dto.QuestionUpdateRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
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

	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu cập nhật không hợp lệ"))
		return
	}

	res, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpUpdateQuestion, res)
}

// Delete godoc
// @Summary Delete question
// @Tags Questions
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
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

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// ResponseHandler wires survey response submission to HTTP endpoints.
type ResponseHandler struct {
	service *service.ResponseService
}

// NewResponseHandler creates a new handler.
func NewResponseHandler(svc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{service: svc}
}

// Submit godoc
// @Summary Submit survey response
// @Description Stores a response for a published survey. Authentication is optional; anonymous submissions are accepted.
// @Tags Responses
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param payload body dto.ResponseSubmitRequest true "Response payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/responses [post]
func (h *ResponseHandler) Submit(c *gin.Context) {
	surveyID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ResponseSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu phản hồi không hợp lệ"))
		return
	}

	// Claims are attached only when the respondent sent a valid token.
	var userID *int64
	if claims := claimsFromContext(c); claims != nil {
		userID = &claims.UserID
	}

	res, err := h.service.Submit(c.Request.Context(), userID, surveyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpSubmitResponse, res)
}

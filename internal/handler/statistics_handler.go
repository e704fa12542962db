package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// StatisticsHandler exposes survey result aggregation and exports.
type StatisticsHandler struct {
	service *service.StatisticsService
}

// NewStatisticsHandler creates a new handler.
func NewStatisticsHandler(svc *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: svc}
}

// Overview godoc
// @Summary Survey statistics overview
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/statistics [get]
func (h *StatisticsHandler) Overview(c *gin.Context) {
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

	res, err := h.service.Overview(c.Request.Context(), claims.UserID, surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpSurveyOverview, res)
}

// Export godoc
// @Summary Export survey statistics
// @Tags Statistics
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorEnvelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Router /surveys/{id}/statistics/export [get]
func (h *StatisticsHandler) Export(c *gin.Context) {
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

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))

	payload, filename, err := h.service.Export(c.Request.Context(), claims.UserID, surveyID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == service.ExportPDF {
		contentType = "application/pdf"
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// DashboardHandler serves the aggregated workspace summary.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpDashboard, res)
}

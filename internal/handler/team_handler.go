package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// TeamHandler wires team management to HTTP endpoints.
type TeamHandler struct {
	service *service.TeamService
}

// NewTeamHandler creates a new handler.
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{service: svc}
}

// Create godoc
// @Summary Create team
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TeamCreateRequest true "Team payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.TeamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu team không hợp lệ"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpCreateTeam, res)
}

// List godoc
// @Summary List my teams
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpListTeams, res)
}

// AddMember godoc
// @Summary Add team member
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param payload body dto.TeamMemberAddRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Failure 409 {object} dto.ErrorEnvelope
// @Router /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	teamID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TeamMemberAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu thành viên không hợp lệ"))
		return
	}

	if err := h.service.AddMember(c.Request.Context(), claims.UserID, teamID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpAddTeamMember, nil)
}

// RemoveMember godoc
// @Summary Remove team member
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} dto.ErrorEnvelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /teams/{id}/members/{userId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	teamID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), claims.UserID, teamID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpRemoveTeamMember, nil)
}

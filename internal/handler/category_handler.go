package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/response"
)

// CategoryHandler wires category management to HTTP endpoints.
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler creates a new handler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// Create godoc
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu danh mục không hợp lệ"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.OpCreateCategory, res)
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpListCategories, res)
}

// Update godoc
// @Summary Rename category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param payload body dto.CategoryRequest true "Category payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
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

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dữ liệu danh mục không hợp lệ"))
		return
	}

	res, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.OpUpdateCategory, res)
}

// Delete godoc
// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 403 {object} dto.ErrorEnvelope
// @Failure 404 {object} dto.ErrorEnvelope
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
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

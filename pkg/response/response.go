package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

// Envelope wraps every successful response. Message comes from the
// per-operation table in messages.go so DTOs stay free of presentation
// concerns.
type Envelope struct {
	Status     int                `json:"status"`
	Message    string             `json:"message,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// JSON sends a success response, resolving the fixed message for the
// operation key.
func JSON(c *gin.Context, status int, operation string, data interface{}, pagination *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{
		Status:     status,
		Message:    Message(operation),
		Data:       data,
		Pagination: pagination,
	})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, operation string, data interface{}) {
	JSON(c, http.StatusOK, operation, data, nil)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, operation string, data interface{}) {
	JSON(c, http.StatusCreated, operation, data, nil)
}

// Error sends the uniform error envelope. Status mirrors the transport
// status code, the short code comes from the typed error, and no internal
// detail leaks past the boundary.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, dto.ErrorEnvelope{
		Message:   appErr.Message,
		Error:     appErr.Code,
		Status:    appErr.Status,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

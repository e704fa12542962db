package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/middleware"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrBadRequest, "Tham số "+name+" không hợp lệ")
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

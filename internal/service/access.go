package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

// resolvePermission returns the level a user holds on a survey, treating
// the owner as OWNER without consulting stored grants.
func resolvePermission(ctx context.Context, finder effectivePermissionFinder, survey *models.Survey, userID int64) (models.SurveyPermissionRole, error) {
	if survey.UserID == userID {
		return models.PermissionOwner, nil
	}
	grant, err := finder.FindEffective(ctx, survey.ID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền truy cập khảo sát này")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra quyền")
	}
	return grant.Permission, nil
}

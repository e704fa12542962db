package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

type permissionRepository interface {
	ListBySurvey(ctx context.Context, surveyID int64) ([]repository.PermissionGrant, error)
	FindEffective(ctx context.Context, surveyID, userID int64) (*models.SurveyPermission, error)
	ReplaceAll(ctx context.Context, surveyID int64, grants []models.SurveyPermission) error
}

type permissionUserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type permissionSurveyFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Survey, error)
}

type teamMembershipChecker interface {
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
}

type notifier interface {
	Notify(ctx context.Context, n *models.Notification)
}

// PermissionService manages survey sharing grants. Updates replace the
// complete grant list; unusable entries are skipped with a warning rather
// than failing the whole request.
type PermissionService struct {
	repo      permissionRepository
	surveys   permissionSurveyFinder
	users     permissionUserFinder
	teams     teamMembershipChecker
	notify    notifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPermissionService constructs a PermissionService instance.
func NewPermissionService(repo permissionRepository, surveys permissionSurveyFinder, users permissionUserFinder, teams teamMembershipChecker, notify notifier, validate *validator.Validate, logger *zap.Logger) *PermissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &PermissionService{repo: repo, surveys: surveys, users: users, teams: teams, notify: notify, validator: validate, logger: logger}
}

// Get returns the current grant list of a survey. The caller must hold
// manage permission.
func (s *PermissionService) Get(ctx context.Context, callerID, surveyID int64) (*dto.SurveyPermissionResponse, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManage(ctx, survey, callerID); err != nil {
		return nil, err
	}

	grants, err := s.repo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh sách quyền")
	}

	return &dto.SurveyPermissionResponse{
		SurveyID: surveyID,
		Users:    sharedUsers(grants),
		Warnings: []string{},
	}, nil
}

// Update replaces the complete grant list of a survey. An empty list
// revokes every grant. Entries that cannot take effect are skipped and
// reported as warnings, except narrowing an existing unrestricted grant to
// a team, which fails the request.
func (s *PermissionService) Update(ctx context.Context, callerID, surveyID int64, req dto.SurveyPermissionUpdateRequest) (*dto.SurveyPermissionResponse, error) {
	if err := validation.Check(s.validator, req, dto.PermissionUpdateMessages); err != nil {
		return nil, err
	}

	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManage(ctx, survey, callerID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh sách quyền")
	}
	previous := make(map[int64]repository.PermissionGrant, len(existing))
	for _, g := range existing {
		previous[g.UserID] = g
	}

	warnings := []string{}
	grants := make([]models.SurveyPermission, 0, len(req.TeamAccess))
	seen := make(map[int64]int)

	for i, entry := range req.TeamAccess {
		user, warning, err := s.resolveGrantee(ctx, entry, i)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			warnings = append(warnings, warning)
			continue
		}

		if user.ID == survey.UserID {
			warnings = append(warnings, fmt.Sprintf("Bỏ qua mục %d: không thể cấp quyền cho chủ sở hữu", i+1))
			continue
		}

		if entry.RestrictedTeamID != nil {
			if prev, ok := previous[user.ID]; ok && prev.RestrictedTeamID == nil {
				return nil, appErrors.Clone(appErrors.ErrBadRequest,
					fmt.Sprintf("Không thể chuyển quyền của %s từ chia sẻ trực tiếp sang giới hạn theo team", user.Email))
			}
			member, err := s.teams.IsMember(ctx, *entry.RestrictedTeamID, user.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra thành viên team")
			}
			if !member {
				warnings = append(warnings, fmt.Sprintf("Bỏ qua mục %d: %s không thuộc team được giới hạn", i+1, user.Email))
				continue
			}
		}

		grant := models.SurveyPermission{
			SurveyID:         surveyID,
			UserID:           user.ID,
			RestrictedTeamID: entry.RestrictedTeamID,
			Permission:       entry.Permission,
			GrantedBy:        callerID,
		}

		// a later entry for the same user overrides the earlier one
		if idx, ok := seen[user.ID]; ok {
			grants[idx] = grant
			continue
		}
		seen[user.ID] = len(grants)
		grants = append(grants, grant)
	}

	if err := s.repo.ReplaceAll(ctx, surveyID, grants); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể cập nhật quyền")
	}

	s.notifyGrantees(ctx, survey, grants, previous)

	updated, err := s.repo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh sách quyền")
	}

	return &dto.SurveyPermissionResponse{
		SurveyID: surveyID,
		Users:    sharedUsers(updated),
		Warnings: warnings,
	}, nil
}

func (s *PermissionService) resolveGrantee(ctx context.Context, entry dto.TeamAccess, index int) (*models.User, string, error) {
	if entry.UserID == nil && entry.Email == nil {
		return nil, fmt.Sprintf("Bỏ qua mục %d: thiếu userId hoặc email", index+1), nil
	}

	var (
		user *models.User
		err  error
	)
	if entry.UserID != nil {
		user, err = s.users.FindByID(ctx, *entry.UserID)
	} else {
		user, err = s.users.FindByEmail(ctx, *entry.Email)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Sprintf("Bỏ qua mục %d: không tìm thấy người dùng", index+1), nil
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải người dùng")
	}
	return user, "", nil
}

func (s *PermissionService) requireManage(ctx context.Context, survey *models.Survey, callerID int64) error {
	if survey.UserID == callerID {
		return nil
	}
	grant, err := s.repo.FindEffective(ctx, survey.ID, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền quản lý chia sẻ khảo sát này")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra quyền")
	}
	if !grant.Permission.CanManagePermissions() {
		return appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền quản lý chia sẻ khảo sát này")
	}
	return nil
}

func (s *PermissionService) notifyGrantees(ctx context.Context, survey *models.Survey, grants []models.SurveyPermission, previous map[int64]repository.PermissionGrant) {
	if s.notify == nil {
		return
	}
	entityType := models.EntitySurvey
	kept := make(map[int64]bool, len(grants))
	for _, g := range grants {
		kept[g.UserID] = true
		prev, existed := previous[g.UserID]
		if existed && prev.Permission == g.Permission {
			continue
		}
		notifType := models.NotifySurveyShared
		title := "Khảo sát được chia sẻ"
		message := fmt.Sprintf("Bạn được cấp quyền %s cho khảo sát %q", g.Permission.Description(), survey.Title)
		if existed {
			notifType = models.NotifySurveyPermissionChange
			title = "Quyền chia sẻ thay đổi"
			message = fmt.Sprintf("Quyền của bạn trên khảo sát %q đã đổi thành %s", survey.Title, g.Permission.Description())
		}
		s.notify.Notify(ctx, &models.Notification{
			UserID:            g.UserID,
			Type:              notifType,
			Title:             title,
			Message:           message,
			RelatedEntityType: &entityType,
			RelatedEntityID:   &survey.ID,
		})
	}

	// Grantees dropped by the replace lose access and are told so.
	for userID := range previous {
		if kept[userID] {
			continue
		}
		s.notify.Notify(ctx, &models.Notification{
			UserID:            userID,
			Type:              models.NotifySurveyPermissionChange,
			Title:             "Quyền chia sẻ thay đổi",
			Message:           fmt.Sprintf("Quyền truy cập của bạn vào khảo sát %q đã bị thu hồi", survey.Title),
			RelatedEntityType: &entityType,
			RelatedEntityID:   &survey.ID,
		})
	}
}

func (s *PermissionService) loadSurvey(ctx context.Context, surveyID int64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}
	return survey, nil
}

func sharedUsers(grants []repository.PermissionGrant) []dto.SharedUser {
	users := make([]dto.SharedUser, 0, len(grants))
	for _, g := range grants {
		users = append(users, dto.SharedUser{
			UserID:             g.UserID,
			Email:              g.Email,
			FullName:           g.FullName,
			Permission:         g.Permission,
			GrantedBy:          g.GrantedBy,
			GrantedByName:      g.GrantedByName,
			UpdatedAt:          g.UpdatedAt,
			RestrictedTeamID:   g.RestrictedTeamID,
			RestrictedTeamName: g.RestrictedTeamName,
		})
	}
	return users
}

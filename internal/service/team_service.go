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

type teamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id int64) (*models.Team, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.TeamRow, error)
	AddMember(ctx context.Context, member *models.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID int64) (bool, error)
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
}

// TeamService manages teams and memberships.
type TeamService struct {
	repo      teamRepository
	users     permissionUserFinder
	notify    notifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamService constructs a TeamService instance.
func NewTeamService(repo teamRepository, users permissionUserFinder, notify notifier, validate *validator.Validate, logger *zap.Logger) *TeamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &TeamService{repo: repo, users: users, notify: notify, validator: validate, logger: logger}
}

// Create adds a team owned by the calling user, who becomes its first
// member.
func (s *TeamService) Create(ctx context.Context, userID int64, req dto.TeamCreateRequest) (*dto.TeamResponse, error) {
	if err := validation.Check(s.validator, req, dto.TeamCreateMessages); err != nil {
		return nil, err
	}

	team := &models.Team{Name: req.Name, OwnerID: userID}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo team")
	}

	s.sendNotification(ctx, userID, models.NotifyTeamCreated, "Team mới",
		fmt.Sprintf("Team %q đã được tạo", team.Name), team.ID)

	return &dto.TeamResponse{
		TeamID:      team.ID,
		Name:        team.Name,
		OwnerID:     team.OwnerID,
		MemberCount: 1,
		CreatedAt:   team.CreatedAt,
	}, nil
}

// List returns the teams the user belongs to.
func (s *TeamService) List(ctx context.Context, userID int64) ([]dto.TeamResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh sách team")
	}

	responses := make([]dto.TeamResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.TeamResponse{
			TeamID:      row.ID,
			Name:        row.Name,
			OwnerID:     row.OwnerID,
			MemberCount: row.MemberCount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return responses, nil
}

// AddMember enrolls a user, identified by userId or email, into a team.
// Only the team owner may add members.
func (s *TeamService) AddMember(ctx context.Context, callerID, teamID int64, req dto.TeamMemberAddRequest) error {
	if err := validation.Check(s.validator, req, dto.TeamMemberAddMessages); err != nil {
		return err
	}
	if req.UserID == nil && req.Email == nil {
		return appErrors.Clone(appErrors.ErrValidation, "Cần cung cấp userId hoặc email")
	}

	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy team")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải team")
	}
	if team.OwnerID != callerID {
		return appErrors.Clone(appErrors.ErrForbidden, "Chỉ chủ team mới được thêm thành viên")
	}

	var user *models.User
	if req.UserID != nil {
		user, err = s.users.FindByID(ctx, *req.UserID)
	} else {
		user, err = s.users.FindByEmail(ctx, *req.Email)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy người dùng")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải người dùng")
	}

	member, err := s.repo.IsMember(ctx, teamID, user.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra thành viên")
	}
	if member {
		return appErrors.Clone(appErrors.ErrConflict, "Người dùng đã là thành viên của team")
	}

	if err := s.repo.AddMember(ctx, &models.TeamMember{TeamID: teamID, UserID: user.ID, Role: "member"}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể thêm thành viên")
	}

	s.sendNotification(ctx, user.ID, models.NotifyTeamMemberAdded, "Thêm vào team",
		fmt.Sprintf("Bạn đã được thêm vào team %q", team.Name), teamID)
	return nil
}

// RemoveMember takes a user out of a team. Only the team owner may remove
// members, and the owner membership itself cannot be removed.
func (s *TeamService) RemoveMember(ctx context.Context, callerID, teamID, userID int64) error {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy team")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải team")
	}
	if team.OwnerID != callerID {
		return appErrors.Clone(appErrors.ErrForbidden, "Chỉ chủ team mới được xóa thành viên")
	}
	if userID == team.OwnerID {
		return appErrors.Clone(appErrors.ErrBadRequest, "Không thể xóa chủ team khỏi team")
	}

	removed, err := s.repo.RemoveMember(ctx, teamID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xóa thành viên")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "Người dùng không phải thành viên của team")
	}

	s.sendNotification(ctx, userID, models.NotifyTeamMemberRemoved, "Rời khỏi team",
		fmt.Sprintf("Bạn đã bị xóa khỏi team %q", team.Name), teamID)
	return nil
}

func (s *TeamService) sendNotification(ctx context.Context, userID int64, notifType models.NotificationType, title, message string, teamID int64) {
	if s.notify == nil {
		return
	}
	entityType := models.EntityTeam
	s.notify.Notify(ctx, &models.Notification{
		UserID:            userID,
		Type:              notifType,
		Title:             title,
		Message:           message,
		RelatedEntityType: &entityType,
		RelatedEntityID:   &teamID,
	})
}
